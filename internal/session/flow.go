package session

import "github.com/motorline/partsbot/internal/locations"

// FlowStep is a step of the nested location-selection flow. Step ordering:
// TYPE_SELECTION < STATE_SELECTION < CITY_SELECTION (dealer) |
// DISTRIBUTOR_SELECTION < DEALER_SELECTION. SEARCH_MODE is a lateral
// excursion from DEALER_SELECTION and always returns to it.
type FlowStep string

const (
	StepTypeSelection        FlowStep = "TYPE_SELECTION"
	StepStateSelection       FlowStep = "STATE_SELECTION"
	StepCitySelection        FlowStep = "CITY_SELECTION"
	StepDealerSelection      FlowStep = "DEALER_SELECTION"
	StepDistributorSelection FlowStep = "DISTRIBUTOR_SELECTION"
	StepSearchMode           FlowStep = "SEARCH_MODE"
)

// LocationFlow is the nested contact-point selection state inside an
// enquiry. It remembers the last-viewed page per step so backward
// navigation restores the page the user left.
type LocationFlow struct {
	ContactType locations.ContactType
	Step        FlowStep
	Page        int
	InSearch    bool
	SearchTerm  string

	StateID   string
	StateName string
	CityID    string
	CityName  string

	EntityID      string
	EntityName    string
	EntityDetails string

	pages map[FlowStep]int
}

// NewLocationFlow starts the flow at contact-type selection.
func NewLocationFlow() *LocationFlow {
	return &LocationFlow{
		Step:  StepTypeSelection,
		pages: make(map[FlowStep]int),
	}
}

// SetStep records the current step's page, moves to step, and restores that
// step's remembered page. Forward transitions that should start from the
// first page reset Page explicitly after calling SetStep.
func (f *LocationFlow) SetStep(step FlowStep) {
	if f.Step != "" {
		f.pages[f.Step] = f.Page
	}
	f.Step = step
	f.Page = f.pages[step]
}

// NextPage advances one page. The pagination engine clamps overruns.
func (f *LocationFlow) NextPage() { f.Page++ }

// PrevPage moves one page back, never below zero.
func (f *LocationFlow) PrevPage() {
	if f.Page > 0 {
		f.Page--
	}
}

// Back moves to the step immediately before the current one, clearing the
// abandoned step's stored selection and restoring the destination step's
// remembered page. Back from SEARCH_MODE returns to DEALER_SELECTION. Back
// from STATE_SELECTION lands on TYPE_SELECTION; the caller treats that as an
// exit from the nested flow.
func (f *LocationFlow) Back() {
	switch f.Step {
	case StepCitySelection:
		f.Step = StepStateSelection
		f.CityID, f.CityName = "", ""
	case StepDealerSelection:
		f.Step = StepCitySelection
		f.EntityID, f.EntityName, f.EntityDetails = "", "", ""
	case StepSearchMode:
		f.Step = StepDealerSelection
		f.InSearch = false
		f.SearchTerm = ""
	case StepDistributorSelection:
		f.Step = StepStateSelection
		f.EntityID, f.EntityName, f.EntityDetails = "", "", ""
	case StepStateSelection:
		f.Step = StepTypeSelection
		f.StateID, f.StateName = "", ""
	}
	f.Page = f.pages[f.Step]
}

// Reset restarts the flow from contact-type selection, dropping every
// selection and all page memory.
func (f *LocationFlow) Reset() {
	*f = LocationFlow{
		Step:  StepTypeSelection,
		pages: make(map[FlowStep]int),
	}
}
