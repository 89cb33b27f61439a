// Package catalog defines the read-side contract against the upstream
// accessories/parts catalog. The dialog engine only ever consumes this
// interface; the Static fixture implementation backs tests, the local REPL,
// and demo deployments that run without the upstream API.
package catalog

import "context"

// TypeInfo is an accessory category for a vehicle model.
type TypeInfo struct {
	ID   int64
	Name string
}

// SubtypeInfo is a subcategory within an accessory category.
type SubtypeInfo struct {
	ID   int64
	Name string
}

// Accessory is a catalog accessory item.
type Accessory struct {
	ID          int64
	Name        string
	Code        string
	Description string
	Price       float64
	Type        string
	Subtype     string
}

// PartType is a spare-parts category. Parts have no subcategory level.
type PartType struct {
	ID   int64
	Name string
	Code string
}

// Part is a catalog part item. Part prices vary by dealer and are not
// carried by the catalog.
type Part struct {
	ID          int64
	Name        string
	Code        string
	Description string
}

// Offer is a running promotion.
type Offer struct {
	Title       string
	Description string
	Discount    string
	ValidUntil  string
	Terms       string
}

// Service is the catalog lookup contract. Implementations may return an
// empty slice with a nil error to mean "no data", which is distinct from a
// transport error.
type Service interface {
	// TypesForModel returns the accessory categories available for a model.
	TypesForModel(ctx context.Context, model string) ([]TypeInfo, error)
	// SubtypesForType returns the subcategories of a category. An empty
	// result means the category has no subcategory level.
	SubtypesForType(ctx context.Context, model string, typeID int64) ([]SubtypeInfo, error)
	// ItemsFiltered returns accessories for a model filtered by category
	// and, when subtypeID is non-nil, by subcategory.
	ItemsFiltered(ctx context.Context, model string, typeID int64, subtypeID *int64) ([]Accessory, error)
	// PartTypes returns all spare-parts categories.
	PartTypes(ctx context.Context) ([]PartType, error)
	// PartsForType returns the parts in a category.
	PartsForType(ctx context.Context, typeID int64) ([]Part, error)
	// Offers returns currently running promotions.
	Offers(ctx context.Context) ([]Offer, error)
}
