package locations

import "context"

// Static is an in-memory Service backed by fixture data, used by tests, the
// local REPL, and demo serve mode.
type Static struct {
	dealerStates      []StateInfo
	distributorStates []StateInfo
	cities            map[int64][]CityInfo
	dealers           map[int64][]Dealer
	distributors      map[int64][]Distributor
}

// NewStatic returns a Static directory populated with the demo fixture set.
func NewStatic() *Static {
	s := &Static{
		cities:       make(map[int64][]CityInfo),
		dealers:      make(map[int64][]Dealer),
		distributors: make(map[int64][]Distributor),
	}
	s.seed()
	return s
}

// StatesFor implements Service.
func (s *Static) StatesFor(_ context.Context, ct ContactType) ([]StateInfo, error) {
	src := s.dealerStates
	if ct == ContactDistributor {
		src = s.distributorStates
	}
	out := make([]StateInfo, len(src))
	copy(out, src)
	return out, nil
}

// CitiesFor implements Service.
func (s *Static) CitiesFor(_ context.Context, stateID int64) ([]CityInfo, error) {
	cities := s.cities[stateID]
	out := make([]CityInfo, len(cities))
	copy(out, cities)
	return out, nil
}

// DealersFor implements Service.
func (s *Static) DealersFor(_ context.Context, cityID int64) ([]Dealer, error) {
	dealers := s.dealers[cityID]
	out := make([]Dealer, len(dealers))
	copy(out, dealers)
	return out, nil
}

// DistributorsFor implements Service.
func (s *Static) DistributorsFor(_ context.Context, stateID int64) ([]Distributor, error) {
	dists := s.distributors[stateID]
	out := make([]Distributor, len(dists))
	copy(out, dists)
	return out, nil
}

// Fixture IDs are stable so tests can reference them directly.
const (
	StateKarnataka   int64 = 11
	StateMaharashtra int64 = 12
	StateTamilNadu   int64 = 13
	StateDelhi       int64 = 14
	StateTelangana   int64 = 15
	StateKerala      int64 = 16
	StateGujarat     int64 = 17

	CityBengaluru int64 = 111
	CityMysuru    int64 = 112
	CityMumbai    int64 = 121
	CityPune      int64 = 122
	CityNagpur    int64 = 123
	CityChennai   int64 = 131
)

func (s *Static) seed() {
	// Seven dealer states so state selection paginates at five per page.
	s.dealerStates = []StateInfo{
		{ID: StateKarnataka, Name: "Karnataka"},
		{ID: StateMaharashtra, Name: "Maharashtra"},
		{ID: StateTamilNadu, Name: "Tamil Nadu"},
		{ID: StateDelhi, Name: "Delhi"},
		{ID: StateTelangana, Name: "Telangana"},
		{ID: StateKerala, Name: "Kerala"},
		{ID: StateGujarat, Name: "Gujarat"},
	}
	// Distributor coverage is a different, smaller set.
	s.distributorStates = []StateInfo{
		{ID: StateKarnataka, Name: "Karnataka"},
		{ID: StateMaharashtra, Name: "Maharashtra"},
		{ID: StateGujarat, Name: "Gujarat"},
	}

	s.cities[StateKarnataka] = []CityInfo{
		{ID: CityBengaluru, Name: "Bengaluru"},
		{ID: CityMysuru, Name: "Mysuru"},
	}
	s.cities[StateMaharashtra] = []CityInfo{
		{ID: CityMumbai, Name: "Mumbai"},
		{ID: CityPune, Name: "Pune"},
		{ID: CityNagpur, Name: "Nagpur"},
		{ID: 124, Name: "Nashik"},
		{ID: 125, Name: "Aurangabad"},
	}
	s.cities[StateTamilNadu] = []CityInfo{
		{ID: CityChennai, Name: "Chennai"},
	}
	// Delhi deliberately has no cities to exercise the empty-city path.

	s.dealers[CityBengaluru] = []Dealer{
		{ID: 5001, Name: "Arise Motors", Address: "12 Residency Road", City: "Bengaluru", Phone: "080-41112233"},
		{ID: 5002, Name: "Trident Autoworks", Address: "88 Outer Ring Road", City: "Bengaluru", Phone: "080-42223344"},
		{ID: 5003, Name: "Cauvery Cars", Address: "4 Mysore Road", City: "Bengaluru", Phone: "080-43334455"},
		{ID: 5004, Name: "Advaith Vehicles", Address: "201 Whitefield Main", City: "Bengaluru", Phone: "080-44445566"},
	}
	s.dealers[CityMysuru] = []Dealer{
		{ID: 5101, Name: "Palace Wheels", Address: "3 Sayyaji Rao Road", City: "Mysuru", Phone: "0821-2511223"},
	}
	s.dealers[CityMumbai] = []Dealer{
		{ID: 5201, Name: "Marine Drive Motors", Address: "7 Netaji Subhash Road", City: "Mumbai", Phone: "022-22823344"},
		{ID: 5202, Name: "Shreenath Auto Point", Address: "55 LBS Marg", City: "Mumbai", Phone: "022-25664455"},
	}
	s.dealers[CityPune] = []Dealer{
		{ID: 5301, Name: "Deccan Autos", Address: "19 FC Road", City: "Pune", Phone: "020-25531122"},
	}
	// Chennai deliberately has no dealers to exercise the empty-dealer path.

	s.distributors[StateKarnataka] = []Distributor{
		{ID: 7001, Name: "Southline Parts Co", Address: "Plot 14, Peenya Industrial Area", City: "Bengaluru", Phone: "080-28391122"},
		{ID: 7002, Name: "Deccan Spares", Address: "6 Rajajinagar Main", City: "Bengaluru", Phone: "080-23452233"},
		{ID: 7003, Name: "Mysore Auto Agencies", Address: "41 Bannimantap", City: "Mysuru", Phone: "0821-2493344"},
		{ID: 7004, Name: "Coastal Components", Address: "9 Kadri Road", City: "Mangaluru", Phone: "0824-2214455"},
	}
	s.distributors[StateMaharashtra] = []Distributor{
		{ID: 7101, Name: "Western Parts Network", Address: "Unit 3, MIDC Andheri", City: "Mumbai", Phone: "022-28304455"},
	}
	// Gujarat deliberately has no distributors to exercise the empty path.
}
