package dialog

// Button is a selectable affordance rendered by the presentation layer.
type Button struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// Response is the structured reply for one conversation turn. Every path
// through the dispatcher returns a well-formed Response, including failures.
type Response struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Question  string `json:"question,omitempty"`

	// Options are plain selectable labels; Buttons carry ids distinct from
	// their labels. NavButtons page a listing and ActionButtons sit beneath
	// it (search, back, start over).
	Options       []string `json:"options,omitempty"`
	Buttons       []Button `json:"buttons,omitempty"`
	NavButtons    []Button `json:"navigation_buttons,omitempty"`
	ActionButtons []Button `json:"action_buttons,omitempty"`

	// AllowText marks turns that expect free text rather than a button.
	AllowText bool `json:"allow_text_input,omitempty"`
	// End marks the turn as conversation-ending.
	End bool `json:"conversation_end"`
	// Screen names the current screen for the presentation layer.
	Screen string `json:"screen"`

	// Lookup names the catalog/directory call that produced this response,
	// recorded in the conversation log but not sent to clients.
	Lookup string `json:"-"`
}

// Screen tags. The core never branches on these; they exist for the
// presentation layer and the conversation log.
const (
	ScreenMainMenu         = "main_menu"
	ScreenVehicleSelection = "vehicle_selection"
	ScreenTypeSelection    = "type_selection"
	ScreenSubtypeSelection = "subtype_selection"
	ScreenAccessories      = "accessories_result"
	ScreenPartTypes        = "part_types"
	ScreenParts            = "parts_result"
	ScreenLocationLookup   = "location_selection"
	ScreenDealersResult    = "dealers_result"
	ScreenDistributors     = "distributors_result"
	ScreenOffers           = "offers"
	ScreenProductSupport   = "product_support"
	ScreenFreeform         = "freeform"
	ScreenError            = "error"

	ScreenEnquiryConfirm   = "enquiry_confirm"
	ScreenContactType      = "contact_type_selection"
	ScreenStateSelection   = "state_selection"
	ScreenCitySelection    = "city_selection"
	ScreenDealerSelection  = "dealer_selection"
	ScreenDealerSearch     = "dealer_search"
	ScreenDistributorPick  = "distributor_selection"
	ScreenContactDetails   = "contact_details"
	ScreenDuplicateConfirm = "duplicate_confirm"
	ScreenQuery            = "query"
	ScreenReview           = "review"
	ScreenSubmitted        = "submitted"
	ScreenEnquiryStatus    = "enquiry_status"
	ScreenFarewell         = "farewell"
)
