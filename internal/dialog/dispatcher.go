// Package dialog implements the conversation flow engine: the top-level
// dispatcher, the catalog browse flow, and the enquiry wizard with its
// nested location-selection flow. Handlers read and mutate a Session under
// the store's per-session lock and return a structured Response; external
// lookups and persistence go through the injected collaborator interfaces.
package dialog

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/motorline/partsbot/internal/catalog"
	"github.com/motorline/partsbot/internal/enquiry"
	"github.com/motorline/partsbot/internal/locations"
	"github.com/motorline/partsbot/internal/session"
)

// EnquiryStore is the persistence contract for enquiries.
type EnquiryStore interface {
	Exists(email, mobile, itemID, itemType string, since time.Time) (bool, error)
	Save(form *enquiry.Form, sessionID string) error
	FindByReference(ref string) (*enquiry.Form, error)
}

// Recorder appends conversation turns. Recording failures must be swallowed
// by the implementation.
type Recorder interface {
	Record(sessionID, userText, botText, lookup string)
}

// Responder answers free-form questions that match no structured flow.
type Responder interface {
	Answer(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Vehicle is a sellable vehicle model the catalog covers.
type Vehicle struct {
	ID   int64
	Name string
}

// Dispatcher is the conversation entry point.
type Dispatcher struct {
	sessions  *session.Store
	catalog   catalog.Service
	locations locations.Service
	enquiries EnquiryStore
	recorder  Recorder  // optional
	fallback  Responder // optional
	vehicles  []Vehicle
	sysPrompt string
}

// Opts holds parameters for creating a Dispatcher.
type Opts struct {
	Sessions  *session.Store
	Catalog   catalog.Service
	Locations locations.Service
	Enquiries EnquiryStore
	Recorder  Recorder  // optional conversation log
	Fallback  Responder // optional free-form fallback
	Vehicles  []Vehicle
}

// New creates a Dispatcher.
func New(opts Opts) (*Dispatcher, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("dialog: dispatcher: session store is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("dialog: dispatcher: catalog service is required")
	}
	if opts.Locations == nil {
		return nil, fmt.Errorf("dialog: dispatcher: locations service is required")
	}
	if opts.Enquiries == nil {
		return nil, fmt.Errorf("dialog: dispatcher: enquiry store is required")
	}
	if len(opts.Vehicles) == 0 {
		return nil, fmt.Errorf("dialog: dispatcher: at least one vehicle model is required")
	}
	d := &Dispatcher{
		sessions:  opts.Sessions,
		catalog:   opts.Catalog,
		locations: opts.Locations,
		enquiries: opts.Enquiries,
		recorder:  opts.Recorder,
		fallback:  opts.Fallback,
		vehicles:  opts.Vehicles,
	}
	d.sysPrompt = buildSystemPrompt(opts.Vehicles)
	return d, nil
}

// refPattern matches a reference number anywhere in the input.
var refPattern = regexp.MustCompile(`ENQ-\d{8}-[A-Z0-9]{5}`)

// Handle processes one conversation turn for the given session, holding the
// session's lock for the whole turn. It never panics: an internal fault is
// logged and converted into a generic failure response.
func (d *Dispatcher) Handle(ctx context.Context, sessionID, raw string) Response {
	sess, release := d.sessions.Acquire(sessionID)
	defer release()

	resp := d.safeDispatch(ctx, sess, raw)
	resp.SessionID = sess.ID
	if d.recorder != nil {
		d.recorder.Record(sess.ID, raw, resp.Message, resp.Lookup)
	}
	return resp
}

func (d *Dispatcher) safeDispatch(ctx context.Context, sess *session.Session, raw string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dialog: session %s: panic handling %q: %v", sess.ID, raw, r)
			resp = d.errorResponse("Something went wrong while processing your message. Please try again.")
		}
	}()
	return d.dispatch(ctx, sess, raw)
}

// dispatch applies the resolution order: active enquiry, positional list
// pick, enquiry-intent keyword, pending continuation state, reference
// lookup, conversation start, menu selection, then the free-form fallback.
func (d *Dispatcher) dispatch(ctx context.Context, sess *session.Session, raw string) Response {
	input := strings.TrimSpace(raw)
	lower := strings.ToLower(input)

	if sess.InEnquiry() {
		return d.handleEnquiry(ctx, sess, input)
	}

	if n, ok := parseIndex(input); ok && (sess.ShowingAccessories || sess.ShowingParts) {
		return d.handleListPick(ctx, sess, n)
	}

	if hasEnquiryIntent(lower) {
		if sess.SelectedItem != nil || sess.SelectedPart != nil {
			return d.handleEnquiry(ctx, sess, input)
		}
		return d.errorResponse("Please select an accessory or part first before making an enquiry.")
	}

	if sess.Current != session.StateIdle {
		state := sess.Current
		sess.Current = session.StateIdle
		switch state {
		case session.StateAwaitingVehicle:
			return d.handleVehicleSelection(ctx, sess, input)
		case session.StateAwaitingType:
			return d.handleTypeSelection(ctx, sess, input)
		case session.StateAwaitingSubtype:
			return d.handleSubtypeSelection(ctx, sess, input)
		case session.StateAwaitingPartType:
			return d.handlePartTypeSelection(ctx, sess, input)
		case session.StateAwaitingLocation:
			return d.handleLocationLookup(ctx, sess, input)
		}
	}

	if ref := refPattern.FindString(strings.ToUpper(input)); ref != "" {
		return d.handleTrackEnquiry(sess, ref)
	}

	// Navigation aliases run before the greeting keywords: "start over"
	// contains "start" but must reset the session, not just greet.
	if isNavigation(lower) {
		return d.handleNavigation(ctx, sess, lower)
	}

	if isConversationStart(lower) {
		return d.mainMenu(sess)
	}

	if resp, ok := d.handleMenuSelection(ctx, sess, input, lower); ok {
		return resp
	}

	return d.handleDirectQuestion(ctx, sess, input)
}

// handleListPick resolves a bare integer against the currently displayed
// accessory/part list and enters the enquiry wizard with that item.
func (d *Dispatcher) handleListPick(ctx context.Context, sess *session.Session, n int) Response {
	if sess.ShowingAccessories {
		if n < 1 || n > len(sess.ShownAccessories) {
			return Response{
				Message:  fmt.Sprintf("That number isn't on the list. Pick a number between 1 and %d, or choose one of the options.", len(sess.ShownAccessories)),
				Question: "What would you like to do next?",
				Options:  resultNavOptions,
				Screen:   ScreenAccessories,
			}
		}
		item := sess.ShownAccessories[n-1]
		sess.SelectedItem = &item
		sess.SelectedPart = nil
		sess.ShowingAccessories = false
		return d.handleEnquiry(ctx, sess, "enquire")
	}

	if n < 1 || n > len(sess.ShownParts) {
		return Response{
			Message:  fmt.Sprintf("That number isn't on the list. Pick a number between 1 and %d, or choose one of the options.", len(sess.ShownParts)),
			Question: "What would you like to do next?",
			Options:  resultNavOptions,
			Screen:   ScreenParts,
		}
	}
	part := sess.ShownParts[n-1]
	sess.SelectedPart = &part
	sess.SelectedItem = nil
	sess.ShowingParts = false
	return d.handleEnquiry(ctx, sess, "enquire")
}

// handleMenuSelection dispatches recognized menu labels and bare menu
// positions. The second return is false when the input names no menu entry.
func (d *Dispatcher) handleMenuSelection(ctx context.Context, sess *session.Session, input, lower string) (Response, bool) {
	switch {
	case strings.Contains(lower, "browse accessories"), strings.Contains(lower, "view accessor"):
		return d.showVehicleSelection(sess), true
	case strings.Contains(lower, "browse parts"):
		return d.showPartTypes(ctx, sess), true
	case strings.Contains(lower, "find distributors"):
		return d.showAllDistributors(ctx, sess), true
	case strings.Contains(lower, "find dealers"), strings.Contains(lower, "find nearest dealer"):
		return d.showLocationPrompt(ctx, sess), true
	case strings.Contains(lower, "check current offers"), strings.Contains(lower, "check offers"), strings.Contains(lower, "view offers"):
		return d.showOffers(ctx, sess), true
	case strings.Contains(lower, "product support"):
		return d.showProductSupport(sess), true
	}

	if n, ok := parseIndex(input); ok {
		switch n {
		case 1:
			return d.showVehicleSelection(sess), true
		case 2:
			return d.showPartTypes(ctx, sess), true
		case 3:
			return d.showLocationPrompt(ctx, sess), true
		case 4:
			return d.showOffers(ctx, sess), true
		case 5:
			return d.showProductSupport(sess), true
		default:
			return d.invalidSelection(sess), true
		}
	}
	return Response{}, false
}

func (d *Dispatcher) handleNavigation(ctx context.Context, sess *session.Session, lower string) Response {
	switch {
	case strings.Contains(lower, "browse another category"):
		if sess.AccessoryFlow && sess.SelectedModel != nil {
			return d.showTypesForModel(ctx, sess, *sess.SelectedModel)
		}
		if !sess.AccessoryFlow && len(sess.PartTypesByName) > 0 {
			return d.showPartTypes(ctx, sess)
		}
		return d.mainMenu(sess)
	case strings.Contains(lower, "start over"):
		sess.Reset()
		return d.mainMenu(sess)
	default: // "back to ...", "main menu"
		return d.mainMenu(sess)
	}
}

// handleTrackEnquiry looks up a submitted enquiry by reference number.
func (d *Dispatcher) handleTrackEnquiry(sess *session.Session, ref string) Response {
	form, err := d.enquiries.FindByReference(ref)
	if err != nil {
		log.Printf("dialog: session %s: track %s: %v", sess.ID, ref, err)
		return d.errorResponse("Sorry, I couldn't look up that enquiry right now. Please try again.")
	}
	if form == nil {
		return Response{
			Message:  fmt.Sprintf("No enquiry found for reference %s. Please check the number and try again.", ref),
			Question: "What would you like to do next?",
			Options:  menuOptions,
			Screen:   ScreenEnquiryStatus,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Enquiry %s\n\n", form.ReferenceNumber)
	fmt.Fprintf(&b, "Item: %s (%s)\n", form.ItemName, form.ItemType)
	if form.ModelName != "" {
		fmt.Fprintf(&b, "Model: %s\n", form.ModelName)
	}
	fmt.Fprintf(&b, "Contact point: %s (%s)\n", form.ContactName, form.ContactType)
	fmt.Fprintf(&b, "Status: %s\n", form.Status)
	fmt.Fprintf(&b, "Submitted: %s\n", form.CreatedAt.Format("2 Jan 2006 15:04"))
	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  menuOptions,
		Screen:   ScreenEnquiryStatus,
	}
}

// handleDirectQuestion forwards unmatched input to the free-form fallback.
func (d *Dispatcher) handleDirectQuestion(ctx context.Context, sess *session.Session, input string) Response {
	if d.fallback == nil {
		return d.invalidSelection(sess)
	}
	answer, err := d.fallback.Answer(ctx, d.sysPrompt, input)
	if err != nil {
		log.Printf("dialog: session %s: fallback: %v", sess.ID, err)
		return d.errorResponse("Sorry, I couldn't process that right now. Please try again.")
	}
	return Response{Message: answer, End: true, Screen: ScreenFreeform}
}

// --- shared responses ---

var menuOptions = []string{
	"Browse Accessories",
	"Browse Parts",
	"Find Dealers & Distributors",
	"Check Current Offers",
	"Get Product Support",
}

// resultNavOptions follow an accessory/part listing.
var resultNavOptions = []string{
	"Browse Another Category",
	"Find Dealers & Distributors",
	"Check Current Offers",
	"Start over",
}

func (d *Dispatcher) mainMenu(sess *session.Session) Response {
	return Response{
		Message:  "Hello! I'm the Motorline parts assistant. I can help you explore genuine accessories and parts for your vehicle and find the best prices.",
		Question: "What would you like to explore?",
		Options:  menuOptions,
		Screen:   ScreenMainMenu,
	}
}

func (d *Dispatcher) invalidSelection(sess *session.Session) Response {
	return Response{
		Message:  "I didn't understand that selection. Let me show you the available options:",
		Question: "What would you like to explore?",
		Options:  menuOptions,
		Screen:   ScreenMainMenu,
	}
}

func (d *Dispatcher) errorResponse(msg string) Response {
	return Response{Message: msg, End: true, Screen: ScreenError}
}

func (d *Dispatcher) sessionExpired() Response {
	return d.errorResponse("Session expired. Please start over.")
}

// --- input classification ---

func parseIndex(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return n, true
}

func hasEnquiryIntent(lower string) bool {
	for _, kw := range []string{"enquire", "enquiry", "inquiry", "buy", "purchase", "contact dealer"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isConversationStart(lower string) bool {
	for _, kw := range []string{"start", "begin", "help", "hello", "what can you do"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// "hi" matches as a word, not a substring, so "this" doesn't greet.
	for _, w := range strings.Fields(lower) {
		if w == "hi" {
			return true
		}
	}
	return false
}

func isNavigation(lower string) bool {
	return strings.Contains(lower, "browse another category") ||
		strings.Contains(lower, "start over") ||
		strings.Contains(lower, "back to") ||
		strings.Contains(lower, "main menu")
}
