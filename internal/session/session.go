// Package session holds the per-conversation state: the top-level
// continuation state, catalog selections, displayed-list caches, and the
// enquiry wizard state including its nested location-selection flow.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/motorline/partsbot/internal/enquiry"
)

// State is the top-level continuation state: which handler consumes the next
// free-form input outside of enquiry mode. The zero value is idle.
type State string

const (
	StateIdle             State = ""
	StateAwaitingVehicle  State = "awaiting_vehicle"
	StateAwaitingType     State = "awaiting_type"
	StateAwaitingSubtype  State = "awaiting_subtype"
	StateAwaitingPartType State = "awaiting_part_type"
	StateAwaitingLocation State = "awaiting_location"
)

// EnquiryStage is the stage of the enquiry wizard.
type EnquiryStage string

const (
	StageInit              EnquiryStage = "INIT"
	StageDealerDistributor EnquiryStage = "DEALER_DISTRIBUTOR"
	StageContactDetails    EnquiryStage = "CONTACT_DETAILS"
	StageQuery             EnquiryStage = "QUERY"
	StageReview            EnquiryStage = "REVIEW"
	StageSubmitted         EnquiryStage = "SUBMITTED"
)

// ModelInfo is the selected vehicle model.
type ModelInfo struct {
	ID   int64
	Name string
}

// TypeInfo is a cached accessory category, keyed by display name so a later
// label reply resolves to its id.
type TypeInfo struct {
	ID   int64
	Name string
}

// SubtypeInfo is a cached accessory subcategory.
type SubtypeInfo struct {
	ID   int64
	Name string
}

// AccessoryInfo is a displayed accessory, cached so a later numeric reply
// resolves positionally.
type AccessoryInfo struct {
	ID          int64
	Name        string
	Description string
	Price       float64
}

// PartTypeInfo is a cached parts category.
type PartTypeInfo struct {
	ID   int64
	Name string
}

// PartInfo is a displayed part.
type PartInfo struct {
	ID          int64
	Name        string
	Code        string
	Description string
}

// Enquiry is the active enquiry wizard state. Its presence is the sole
// signal that the session is in enquiry mode; a stage can never exist
// without a form.
type Enquiry struct {
	Stage EnquiryStage
	Form  *enquiry.Form
	// Location is non-nil only while the wizard is resolving a contact
	// point through the nested location-selection flow.
	Location *LocationFlow
	// AwaitingDupConfirm is set after the duplicate guard trips, so the
	// next input is read as the user's go/no-go answer rather than a fresh
	// round of contact details.
	AwaitingDupConfirm bool
}

// Session is the durable conversational state for one session id. All
// fields are guarded by the store's per-session lock; handlers access them
// only between Acquire and its release.
type Session struct {
	ID string

	Current       State
	AccessoryFlow bool

	SelectedModel    *ModelInfo
	SelectedType     *TypeInfo
	SelectedSubtype  *SubtypeInfo
	SelectedPartType *PartTypeInfo
	SelectedItem     *AccessoryInfo
	SelectedPart     *PartInfo

	// Lookup caches from display label to descriptor, repopulated each time
	// the corresponding list is shown.
	TypesByName     map[string]TypeInfo
	SubtypesByName  map[string]SubtypeInfo
	PartTypesByName map[string]PartTypeInfo

	// Result caches for positional (1-based) selection.
	ShownAccessories   []AccessoryInfo
	ShownParts         []PartInfo
	ShowingAccessories bool
	ShowingParts       bool

	Enquiry *Enquiry

	mu       sync.Mutex
	lastSeen atomic.Int64 // unix seconds, maintained by the store
}

// New creates an idle session.
func New(id string) *Session {
	return &Session{
		ID:              id,
		TypesByName:     make(map[string]TypeInfo),
		SubtypesByName:  make(map[string]SubtypeInfo),
		PartTypesByName: make(map[string]PartTypeInfo),
	}
}

// InEnquiry reports whether the session is in enquiry mode.
func (s *Session) InEnquiry() bool {
	return s.Enquiry != nil
}

// StartEnquiry enters enquiry mode with a fresh form at INIT, clearing any
// top-level continuation state so browse and enquiry are never concurrently
// active.
func (s *Session) StartEnquiry(form *enquiry.Form) {
	s.Current = StateIdle
	s.Enquiry = &Enquiry{Stage: StageInit, Form: form}
}

// ClearEnquiry leaves enquiry mode, dropping the form and any nested
// location flow.
func (s *Session) ClearEnquiry() {
	s.Enquiry = nil
}

// ClearShownLists drops the displayed-list caches.
func (s *Session) ClearShownLists() {
	s.ShownAccessories = nil
	s.ShownParts = nil
	s.ShowingAccessories = false
	s.ShowingParts = false
}

// Reset returns the session to idle: selections, list caches and any active
// enquiry are all dropped. Used by "start over".
func (s *Session) Reset() {
	s.Current = StateIdle
	s.AccessoryFlow = false
	s.SelectedModel = nil
	s.SelectedType = nil
	s.SelectedSubtype = nil
	s.SelectedPartType = nil
	s.SelectedItem = nil
	s.SelectedPart = nil
	s.TypesByName = make(map[string]TypeInfo)
	s.SubtypesByName = make(map[string]SubtypeInfo)
	s.PartTypesByName = make(map[string]PartTypeInfo)
	s.ClearShownLists()
	s.Enquiry = nil
}
