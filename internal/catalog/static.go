package catalog

import (
	"context"
	"strings"
)

// Static is an in-memory Service backed by fixture data. It stands in for
// the upstream catalog API in tests, the local REPL, and demo serve mode.
type Static struct {
	types    map[string][]TypeInfo // keyed by lowercased model name
	subtypes map[int64][]SubtypeInfo
	items    []Accessory // carries model via the byModel index
	byModel  map[string][]int
	parts    map[int64][]Part
	partTyps []PartType
	offers   []Offer
}

// NewStatic returns a Static catalog populated with the demo fixture set.
func NewStatic() *Static {
	s := &Static{
		types:    make(map[string][]TypeInfo),
		subtypes: make(map[int64][]SubtypeInfo),
		byModel:  make(map[string][]int),
		parts:    make(map[int64][]Part),
	}
	s.seed()
	return s
}

// TypesForModel implements Service.
func (s *Static) TypesForModel(_ context.Context, model string) ([]TypeInfo, error) {
	types := s.types[strings.ToLower(model)]
	out := make([]TypeInfo, len(types))
	copy(out, types)
	return out, nil
}

// SubtypesForType implements Service.
func (s *Static) SubtypesForType(_ context.Context, _ string, typeID int64) ([]SubtypeInfo, error) {
	subs := s.subtypes[typeID]
	out := make([]SubtypeInfo, len(subs))
	copy(out, subs)
	return out, nil
}

// ItemsFiltered implements Service.
func (s *Static) ItemsFiltered(_ context.Context, model string, typeID int64, subtypeID *int64) ([]Accessory, error) {
	var out []Accessory
	for _, idx := range s.byModel[strings.ToLower(model)] {
		a := s.items[idx]
		if s.typeIDFor(a.Type) != typeID {
			continue
		}
		if subtypeID != nil && s.subtypeIDFor(typeID, a.Subtype) != *subtypeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// PartTypes implements Service.
func (s *Static) PartTypes(_ context.Context) ([]PartType, error) {
	out := make([]PartType, len(s.partTyps))
	copy(out, s.partTyps)
	return out, nil
}

// PartsForType implements Service.
func (s *Static) PartsForType(_ context.Context, typeID int64) ([]Part, error) {
	parts := s.parts[typeID]
	out := make([]Part, len(parts))
	copy(out, parts)
	return out, nil
}

// Offers implements Service.
func (s *Static) Offers(_ context.Context) ([]Offer, error) {
	out := make([]Offer, len(s.offers))
	copy(out, s.offers)
	return out, nil
}

func (s *Static) typeIDFor(name string) int64 {
	for _, types := range s.types {
		for _, t := range types {
			if t.Name == name {
				return t.ID
			}
		}
	}
	return 0
}

func (s *Static) subtypeIDFor(typeID int64, name string) int64 {
	for _, st := range s.subtypes[typeID] {
		if st.Name == name {
			return st.ID
		}
	}
	return 0
}

// Fixture IDs are stable so tests can reference them directly.
const (
	TypeInterior    int64 = 101
	TypeExterior    int64 = 102
	TypeElectronics int64 = 103

	SubtypeFloorMats  int64 = 201
	SubtypeSeatCovers int64 = 202

	PartTypeEngine     int64 = 301
	PartTypeBrakes     int64 = 302
	PartTypeElectrical int64 = 303
	PartTypeSuspension int64 = 304
)

func (s *Static) seed() {
	interior := TypeInfo{ID: TypeInterior, Name: "Interior"}
	exterior := TypeInfo{ID: TypeExterior, Name: "Exterior"}
	electronics := TypeInfo{ID: TypeElectronics, Name: "Electronics"}

	// Horizon carries all three categories; Summit has no Electronics.
	// Crest has no accessories at all, which exercises the empty-category
	// error path.
	s.types["horizon"] = []TypeInfo{interior, exterior, electronics}
	s.types["summit"] = []TypeInfo{interior, exterior}
	s.types["ridge"] = []TypeInfo{interior, exterior, electronics}

	// Interior has subcategories; Exterior and Electronics do not, which
	// exercises the skip-empty-level rule.
	s.subtypes[TypeInterior] = []SubtypeInfo{
		{ID: SubtypeFloorMats, Name: "Floor Mats"},
		{ID: SubtypeSeatCovers, Name: "Seat Covers"},
	}

	add := func(model string, a Accessory) {
		s.items = append(s.items, a)
		key := strings.ToLower(model)
		s.byModel[key] = append(s.byModel[key], len(s.items)-1)
	}

	add("Horizon", Accessory{ID: 1001, Name: "All-Weather Floor Mats", Code: "AC-FM-1001", Description: "Moulded rubber mats with raised edges.", Price: 2499, Type: "Interior", Subtype: "Floor Mats"})
	add("Horizon", Accessory{ID: 1002, Name: "Carpet Floor Mats", Code: "AC-FM-1002", Description: "Tufted carpet mats with anti-slip backing.", Price: 1899, Type: "Interior", Subtype: "Floor Mats"})
	add("Horizon", Accessory{ID: 1003, Name: "Leatherette Seat Covers", Code: "AC-SC-1003", Description: "Perforated leatherette covers, full set.", Price: 8999, Type: "Interior", Subtype: "Seat Covers"})
	add("Horizon", Accessory{ID: 1004, Name: "Body Side Moulding", Code: "AC-EX-1004", Description: "Chrome-finish door protection strips.", Price: 3299, Type: "Exterior"})
	add("Horizon", Accessory{ID: 1005, Name: "Door Visors", Code: "AC-EX-1005", Description: "Smoke-tinted injection-moulded visors.", Price: 1599, Type: "Exterior"})
	add("Horizon", Accessory{ID: 1006, Name: "Wireless Charging Pad", Code: "AC-EL-1006", Description: "Console-mounted 15W wireless charger.", Price: 4499, Type: "Electronics"})
	add("Horizon", Accessory{ID: 1007, Name: "Dash Camera", Code: "AC-EL-1007", Description: "Full-HD forward camera with parking mode.", Price: 7999, Type: "Electronics"})

	add("Summit", Accessory{ID: 1101, Name: "Premium Carpet Mats", Code: "AC-FM-1101", Description: "Deep-pile carpet mats, charcoal.", Price: 2199, Type: "Interior", Subtype: "Floor Mats"})
	add("Summit", Accessory{ID: 1102, Name: "Fabric Seat Covers", Code: "AC-SC-1102", Description: "Breathable jacquard fabric covers.", Price: 5999, Type: "Interior", Subtype: "Seat Covers"})
	add("Summit", Accessory{ID: 1103, Name: "Rear Spoiler", Code: "AC-EX-1103", Description: "Paint-matched tailgate spoiler.", Price: 6499, Type: "Exterior"})

	add("Ridge", Accessory{ID: 1201, Name: "Roof Rails", Code: "AC-EX-1201", Description: "Anodised aluminium roof rails, pair.", Price: 5499, Type: "Exterior"})
	add("Ridge", Accessory{ID: 1202, Name: "Ambient Lighting Kit", Code: "AC-EL-1202", Description: "64-colour footwell lighting kit.", Price: 3799, Type: "Electronics"})

	s.partTyps = []PartType{
		{ID: PartTypeEngine, Name: "Engine", Code: "PT-ENG"},
		{ID: PartTypeBrakes, Name: "Brakes", Code: "PT-BRK"},
		{ID: PartTypeElectrical, Name: "Electrical", Code: "PT-ELE"},
		{ID: PartTypeSuspension, Name: "Suspension", Code: "PT-SUS"},
	}
	s.parts[PartTypeEngine] = []Part{
		{ID: 2001, Name: "Oil Filter", Code: "PN-2001", Description: "Spin-on oil filter, petrol variants."},
		{ID: 2002, Name: "Air Filter Element", Code: "PN-2002", Description: "Panel air filter element."},
		{ID: 2003, Name: "Spark Plug Set", Code: "PN-2003", Description: "Iridium spark plugs, set of four."},
		{ID: 2004, Name: "Timing Belt Kit", Code: "PN-2004", Description: "Belt, tensioner and idler pulley kit."},
	}
	s.parts[PartTypeBrakes] = []Part{
		{ID: 2101, Name: "Front Brake Pads", Code: "PN-2101", Description: "Ceramic front pad set."},
		{ID: 2102, Name: "Rear Brake Shoes", Code: "PN-2102", Description: "Rear drum brake shoe set."},
	}
	s.parts[PartTypeElectrical] = []Part{
		{ID: 2201, Name: "Headlamp Assembly", Code: "PN-2201", Description: "Left headlamp assembly with DRL."},
		{ID: 2202, Name: "Wiper Motor", Code: "PN-2202", Description: "Front windshield wiper motor."},
	}
	// Suspension intentionally has no parts to exercise the empty listing.

	s.offers = []Offer{
		{
			Title:       "Monsoon Care Bundle",
			Description: "All-weather mats and door visors together.",
			Discount:    "15% off the bundle",
			ValidUntil:  "30 September",
			Terms:       "Valid at participating dealers only.",
		},
		{
			Title:       "Free Fitment Week",
			Description: "No installation charges on electronics accessories.",
			Discount:    "Fitment charges waived",
			ValidUntil:  "15 October",
			Terms:       "One vehicle per customer.",
		},
	}
}
