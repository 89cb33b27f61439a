// Package locations defines the dealer/distributor directory contract used
// by the location-selection flow.
package locations

import (
	"context"
	"fmt"
)

// ContactType distinguishes the two kinds of contact point an enquiry can
// be routed through.
type ContactType string

const (
	ContactDealer      ContactType = "dealer"
	ContactDistributor ContactType = "distributor"
)

// StateInfo is a state with coverage for the given contact type.
type StateInfo struct {
	ID   int64
	Name string
}

// CityInfo is a city with dealer presence inside a state.
type CityInfo struct {
	ID   int64
	Name string
}

// Dealer is a dealership record.
type Dealer struct {
	ID      int64
	Name    string
	Address string
	City    string
	Phone   string
}

// ContactBlock renders the short detail block shown under dealer buttons.
func (d Dealer) ContactBlock() string {
	return fmt.Sprintf("%s, %s\nPhone: %s", d.Address, d.City, d.Phone)
}

// Distributor is a parts distributor record.
type Distributor struct {
	ID      int64
	Name    string
	Address string
	City    string
	Phone   string
}

// ContactBlock renders the short detail block shown under distributor buttons.
func (d Distributor) ContactBlock() string {
	return fmt.Sprintf("%s, %s\nPhone: %s", d.Address, d.City, d.Phone)
}

// Service is the directory lookup contract. Dealer and distributor coverage
// may span disjoint state sets, hence StatesFor takes the contact type.
type Service interface {
	StatesFor(ctx context.Context, ct ContactType) ([]StateInfo, error)
	CitiesFor(ctx context.Context, stateID int64) ([]CityInfo, error)
	DealersFor(ctx context.Context, cityID int64) ([]Dealer, error)
	DistributorsFor(ctx context.Context, stateID int64) ([]Distributor, error)
}
