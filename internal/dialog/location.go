package dialog

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/motorline/partsbot/internal/locations"
	"github.com/motorline/partsbot/internal/paginate"
	"github.com/motorline/partsbot/internal/session"
)

// startLocationFlow opens the nested contact-point selection at the
// dealer/distributor choice.
func (d *Dispatcher) startLocationFlow(sess *session.Session) Response {
	sess.Enquiry.Location = session.NewLocationFlow()
	return d.contactTypePrompt(sess)
}

func (d *Dispatcher) contactTypePrompt(sess *session.Session) Response {
	noun := "accessory"
	if sess.Enquiry.Form.ItemType == "part" {
		noun = "part"
	}
	return Response{
		Message:  fmt.Sprintf("How would you like to receive your %s?", noun),
		Question: "Choose a contact point:",
		Buttons: []Button{
			{ID: "dealer", Label: "Nearest Dealer", Description: "Pick up from an authorized dealership in your city"},
			{ID: "distributor", Label: "Parts Distributor", Description: "Bulk and trade orders through a state distributor"},
		},
		ActionButtons: []Button{
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenContactType,
	}
}

// handleLocationFlow routes input to the current step of the nested flow.
// "back" from the first two steps exits the flow to the INIT confirmation.
func (d *Dispatcher) handleLocationFlow(ctx context.Context, sess *session.Session, input string) Response {
	flow := sess.Enquiry.Location
	lower := strings.ToLower(strings.TrimSpace(input))

	if lower == "back" {
		if flow.Step == session.StepTypeSelection || flow.Step == session.StepStateSelection {
			sess.Enquiry.Location = nil
			sess.Enquiry.Stage = session.StageInit
			return d.showEnquiryConfirmation(sess)
		}
		flow.Back()
		return d.renderFlowStep(ctx, sess)
	}
	if lower == "start_over" || lower == "change contact type" {
		flow.Reset()
		return d.contactTypePrompt(sess)
	}

	switch flow.Step {
	case session.StepTypeSelection:
		return d.handleContactTypeSelection(ctx, sess, lower)
	case session.StepStateSelection:
		return d.handleStateStep(ctx, sess, input, lower)
	case session.StepCitySelection:
		return d.handleCityStep(ctx, sess, input, lower)
	case session.StepDealerSelection:
		return d.handleDealerStep(ctx, sess, input, lower)
	case session.StepSearchMode:
		return d.handleDealerSearch(ctx, sess, input, lower)
	case session.StepDistributorSelection:
		return d.handleDistributorStep(ctx, sess, input, lower)
	default:
		log.Printf("dialog: session %s: unknown flow step %q", sess.ID, flow.Step)
		flow.Reset()
		return d.contactTypePrompt(sess)
	}
}

func (d *Dispatcher) handleContactTypeSelection(ctx context.Context, sess *session.Session, lower string) Response {
	flow := sess.Enquiry.Location
	switch {
	case strings.Contains(lower, "dealer"):
		flow.ContactType = locations.ContactDealer
	case strings.Contains(lower, "distributor"):
		flow.ContactType = locations.ContactDistributor
	default:
		return d.contactTypePrompt(sess)
	}
	flow.SetStep(session.StepStateSelection)
	flow.Page = 0
	return d.displayStates(ctx, sess)
}

// displayStates renders the state page for the chosen contact type.
func (d *Dispatcher) displayStates(ctx context.Context, sess *session.Session) Response {
	flow := sess.Enquiry.Location

	states, err := d.locations.StatesFor(ctx, flow.ContactType)
	if err != nil {
		log.Printf("dialog: session %s: states for %s: %v", sess.ID, flow.ContactType, err)
		return d.flowLookupFailed("Sorry, I couldn't load the state list.")
	}
	if len(states) == 0 {
		return Response{
			Message:  fmt.Sprintf("No %ss are covered yet. Please choose a different contact type.", flow.ContactType),
			Question: "What would you like to do?",
			ActionButtons: []Button{
				{ID: "start_over", Label: "Change Contact Type"},
				{ID: "back", Label: "Back"},
			},
			Screen: ScreenStateSelection,
		}
	}

	page := paginate.Paginate(states, flow.Page, paginate.PerStates)
	flow.Page = page.Index

	buttons := make([]Button, 0, len(page.Items))
	for _, st := range page.Items {
		buttons = append(buttons, Button{ID: strconv.FormatInt(st.ID, 10), Label: st.Name})
	}

	return Response{
		Message:       fmt.Sprintf("Which state are you in? (page %d of %d)", page.Index+1, page.TotalPages),
		Question:      "Select your state:",
		Buttons:       buttons,
		NavButtons:    pageNav(page.HasPrev, page.HasNext, page.Index, page.TotalPages),
		ActionButtons: []Button{{ID: "start_over", Label: "Change Contact Type"}, {ID: "back", Label: "Back"}},
		Screen:        ScreenStateSelection,
		Lookup:        "StatesFor",
	}
}

func (d *Dispatcher) handleStateStep(ctx context.Context, sess *session.Session, input, lower string) Response {
	flow := sess.Enquiry.Location

	switch lower {
	case "next":
		flow.NextPage()
		return d.displayStates(ctx, sess)
	case "previous":
		flow.PrevPage()
		return d.displayStates(ctx, sess)
	}

	states, err := d.locations.StatesFor(ctx, flow.ContactType)
	if err != nil {
		log.Printf("dialog: session %s: states for %s: %v", sess.ID, flow.ContactType, err)
		return d.flowLookupFailed("Sorry, I couldn't load the state list.")
	}

	picked, ok := matchState(states, input)
	if !ok {
		return d.displayStates(ctx, sess)
	}

	flow.StateID = strconv.FormatInt(picked.ID, 10)
	flow.StateName = picked.Name
	form := sess.Enquiry.Form
	form.StateID = flow.StateID
	form.StateName = flow.StateName

	if flow.ContactType == locations.ContactDistributor {
		flow.SetStep(session.StepDistributorSelection)
		flow.Page = 0
		return d.displayDistributors(ctx, sess)
	}
	flow.SetStep(session.StepCitySelection)
	flow.Page = 0
	return d.displayCities(ctx, sess)
}

// displayCities renders the city page inside the selected state.
func (d *Dispatcher) displayCities(ctx context.Context, sess *session.Session) Response {
	flow := sess.Enquiry.Location

	stateID, _ := strconv.ParseInt(flow.StateID, 10, 64)
	cities, err := d.locations.CitiesFor(ctx, stateID)
	if err != nil {
		log.Printf("dialog: session %s: cities for %s: %v", sess.ID, flow.StateID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the city list.")
	}
	if len(cities) == 0 {
		return Response{
			Message:       fmt.Sprintf("No cities found in %s. Please select a different state.", flow.StateName),
			Question:      "What would you like to do?",
			ActionButtons: []Button{{ID: "back", Label: "Back to states"}},
			Screen:        ScreenCitySelection,
			Lookup:        "CitiesFor",
		}
	}

	page := paginate.Paginate(cities, flow.Page, paginate.PerCities)
	flow.Page = page.Index

	buttons := make([]Button, 0, len(page.Items))
	for _, c := range page.Items {
		buttons = append(buttons, Button{ID: strconv.FormatInt(c.ID, 10), Label: c.Name})
	}

	return Response{
		Message:       fmt.Sprintf("Which city in %s? (page %d of %d)", flow.StateName, page.Index+1, page.TotalPages),
		Question:      "Select your city:",
		Buttons:       buttons,
		NavButtons:    pageNav(page.HasPrev, page.HasNext, page.Index, page.TotalPages),
		ActionButtons: []Button{{ID: "back", Label: "Back to states"}, {ID: "start_over", Label: "Change Contact Type"}},
		Screen:        ScreenCitySelection,
		Lookup:        "CitiesFor",
	}
}

func (d *Dispatcher) handleCityStep(ctx context.Context, sess *session.Session, input, lower string) Response {
	flow := sess.Enquiry.Location

	switch lower {
	case "next":
		flow.NextPage()
		return d.displayCities(ctx, sess)
	case "previous":
		flow.PrevPage()
		return d.displayCities(ctx, sess)
	}

	stateID, _ := strconv.ParseInt(flow.StateID, 10, 64)
	cities, err := d.locations.CitiesFor(ctx, stateID)
	if err != nil {
		log.Printf("dialog: session %s: cities for %s: %v", sess.ID, flow.StateID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the city list.")
	}

	var picked *locations.CityInfo
	for i := range cities {
		if strconv.FormatInt(cities[i].ID, 10) == strings.TrimSpace(input) || strings.EqualFold(cities[i].Name, strings.TrimSpace(input)) {
			picked = &cities[i]
			break
		}
	}
	if picked == nil {
		return d.displayCities(ctx, sess)
	}

	flow.CityID = strconv.FormatInt(picked.ID, 10)
	flow.CityName = picked.Name
	form := sess.Enquiry.Form
	form.CityID = flow.CityID
	form.CityName = flow.CityName

	flow.SetStep(session.StepDealerSelection)
	flow.Page = 0
	return d.displayDealers(ctx, sess)
}

// displayDealers renders the dealer page for the selected city, with the
// detail block under each entry. Numbering is absolute across pages.
func (d *Dispatcher) displayDealers(ctx context.Context, sess *session.Session) Response {
	flow := sess.Enquiry.Location

	cityID, _ := strconv.ParseInt(flow.CityID, 10, 64)
	dealers, err := d.locations.DealersFor(ctx, cityID)
	if err != nil {
		log.Printf("dialog: session %s: dealers for %s: %v", sess.ID, flow.CityID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the dealer list.")
	}
	if len(dealers) == 0 {
		return Response{
			Message:       fmt.Sprintf("No dealers found in %s. Please select a different city.", flow.CityName),
			Question:      "What would you like to do?",
			ActionButtons: []Button{{ID: "back", Label: "Back to cities"}},
			Screen:        ScreenDealerSelection,
			Lookup:        "DealersFor",
		}
	}

	page := paginate.Paginate(dealers, flow.Page, paginate.PerDealers)
	flow.Page = page.Index
	start := page.Index * paginate.PerDealers

	var b strings.Builder
	fmt.Fprintf(&b, "Authorized dealers in %s (page %d of %d):\n\n", flow.CityName, page.Index+1, page.TotalPages)
	buttons := make([]Button, 0, len(page.Items))
	for i, dealer := range page.Items {
		fmt.Fprintf(&b, "%d. %s\n%s\n\n", start+i+1, dealer.Name, dealer.ContactBlock())
		buttons = append(buttons, Button{
			ID:          strconv.FormatInt(dealer.ID, 10),
			Label:       dealer.Name,
			Description: dealer.ContactBlock(),
		})
	}

	return Response{
		Message:    b.String(),
		Question:   "Select a dealer:",
		Buttons:    buttons,
		NavButtons: pageNav(page.HasPrev, page.HasNext, page.Index, page.TotalPages),
		ActionButtons: []Button{
			{ID: "search", Label: "Search by name"},
			{ID: "back", Label: "Back to cities"},
			{ID: "start_over", Label: "Change Contact Type"},
		},
		Screen: ScreenDealerSelection,
		Lookup: "DealersFor",
	}
}

func (d *Dispatcher) handleDealerStep(ctx context.Context, sess *session.Session, input, lower string) Response {
	flow := sess.Enquiry.Location

	switch lower {
	case "next":
		flow.NextPage()
		return d.displayDealers(ctx, sess)
	case "previous":
		flow.PrevPage()
		return d.displayDealers(ctx, sess)
	case "search", "search by name":
		flow.InSearch = true
		flow.SetStep(session.StepSearchMode)
		return Response{
			Message:   "Type part of the dealer's name and I'll find matches in " + flow.CityName + ".",
			Question:  "Dealer name:",
			AllowText: true,
			ActionButtons: []Button{
				{ID: "cancel", Label: "Back to the list"},
			},
			Screen: ScreenDealerSearch,
		}
	case "view_all", "view all":
		return d.displayDealers(ctx, sess)
	}

	cityID, _ := strconv.ParseInt(flow.CityID, 10, 64)
	dealers, err := d.locations.DealersFor(ctx, cityID)
	if err != nil {
		log.Printf("dialog: session %s: dealers for %s: %v", sess.ID, flow.CityID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the dealer list.")
	}

	for _, dealer := range dealers {
		if strconv.FormatInt(dealer.ID, 10) == strings.TrimSpace(input) || strings.EqualFold(dealer.Name, strings.TrimSpace(input)) {
			return d.selectContactPoint(sess, strconv.FormatInt(dealer.ID, 10), dealer.Name, dealer.ContactBlock(), locations.ContactDealer)
		}
	}
	return d.displayDealers(ctx, sess)
}

// handleDealerSearch consumes the free-text search term and shows matches.
// Results re-enter DEALER_SELECTION, unpaginated.
func (d *Dispatcher) handleDealerSearch(ctx context.Context, sess *session.Session, input, lower string) Response {
	flow := sess.Enquiry.Location

	if lower == "cancel" || lower == "back to the list" {
		flow.InSearch = false
		flow.SetStep(session.StepDealerSelection)
		return d.displayDealers(ctx, sess)
	}

	cityID, _ := strconv.ParseInt(flow.CityID, 10, 64)
	dealers, err := d.locations.DealersFor(ctx, cityID)
	if err != nil {
		log.Printf("dialog: session %s: dealers for %s: %v", sess.ID, flow.CityID, err)
		return d.flowLookupFailed("Sorry, I couldn't search the dealer list.")
	}

	term := strings.TrimSpace(input)
	flow.SearchTerm = term
	var matches []locations.Dealer
	for _, dealer := range dealers {
		if strings.Contains(strings.ToLower(dealer.Name), strings.ToLower(term)) {
			matches = append(matches, dealer)
		}
		if len(matches) == 5 {
			break
		}
	}

	if len(matches) == 0 {
		return Response{
			Message:   fmt.Sprintf("No dealers in %s match %q. Try a different name.", flow.CityName, term),
			Question:  "Dealer name:",
			AllowText: true,
			ActionButtons: []Button{
				{ID: "cancel", Label: "Back to the list"},
			},
			Screen: ScreenDealerSearch,
		}
	}

	buttons := make([]Button, 0, len(matches))
	for _, dealer := range matches {
		buttons = append(buttons, Button{
			ID:          strconv.FormatInt(dealer.ID, 10),
			Label:       dealer.Name,
			Description: dealer.ContactBlock(),
		})
	}

	flow.InSearch = false
	flow.SetStep(session.StepDealerSelection)
	return Response{
		Message:  fmt.Sprintf("Found %d dealers matching %q:", len(matches), term),
		Question: "Select a dealer:",
		Buttons:  buttons,
		ActionButtons: []Button{
			{ID: "search", Label: "Search again"},
			{ID: "view_all", Label: "View all dealers"},
			{ID: "back", Label: "Back to cities"},
		},
		Screen: ScreenDealerSelection,
		Lookup: "DealersFor",
	}
}

// displayDistributors renders the distributor page for the selected state.
// Distributors are state-level, there is no city step and no search.
func (d *Dispatcher) displayDistributors(ctx context.Context, sess *session.Session) Response {
	flow := sess.Enquiry.Location

	stateID, _ := strconv.ParseInt(flow.StateID, 10, 64)
	dists, err := d.locations.DistributorsFor(ctx, stateID)
	if err != nil {
		log.Printf("dialog: session %s: distributors for %s: %v", sess.ID, flow.StateID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the distributor list.")
	}
	if len(dists) == 0 {
		return Response{
			Message:       fmt.Sprintf("No distributors found in %s. Please select a different state.", flow.StateName),
			Question:      "What would you like to do?",
			ActionButtons: []Button{{ID: "back", Label: "Back to states"}},
			Screen:        ScreenDistributorPick,
			Lookup:        "DistributorsFor",
		}
	}

	page := paginate.Paginate(dists, flow.Page, paginate.PerDistributors)
	flow.Page = page.Index
	start := page.Index * paginate.PerDistributors

	var b strings.Builder
	fmt.Fprintf(&b, "Parts distributors in %s (page %d of %d):\n\n", flow.StateName, page.Index+1, page.TotalPages)
	buttons := make([]Button, 0, len(page.Items))
	for i, dist := range page.Items {
		fmt.Fprintf(&b, "%d. %s\n%s\n\n", start+i+1, dist.Name, dist.ContactBlock())
		buttons = append(buttons, Button{
			ID:          strconv.FormatInt(dist.ID, 10),
			Label:       dist.Name,
			Description: dist.ContactBlock(),
		})
	}

	return Response{
		Message:    b.String(),
		Question:   "Select a distributor:",
		Buttons:    buttons,
		NavButtons: pageNav(page.HasPrev, page.HasNext, page.Index, page.TotalPages),
		ActionButtons: []Button{
			{ID: "back", Label: "Back to states"},
			{ID: "start_over", Label: "Change Contact Type"},
		},
		Screen: ScreenDistributorPick,
		Lookup: "DistributorsFor",
	}
}

func (d *Dispatcher) handleDistributorStep(ctx context.Context, sess *session.Session, input, lower string) Response {
	flow := sess.Enquiry.Location

	switch lower {
	case "next":
		flow.NextPage()
		return d.displayDistributors(ctx, sess)
	case "previous":
		flow.PrevPage()
		return d.displayDistributors(ctx, sess)
	}

	stateID, _ := strconv.ParseInt(flow.StateID, 10, 64)
	dists, err := d.locations.DistributorsFor(ctx, stateID)
	if err != nil {
		log.Printf("dialog: session %s: distributors for %s: %v", sess.ID, flow.StateID, err)
		return d.flowLookupFailed("Sorry, I couldn't load the distributor list.")
	}

	for _, dist := range dists {
		if strconv.FormatInt(dist.ID, 10) == strings.TrimSpace(input) || strings.EqualFold(dist.Name, strings.TrimSpace(input)) {
			return d.selectContactPoint(sess, strconv.FormatInt(dist.ID, 10), dist.Name, dist.ContactBlock(), locations.ContactDistributor)
		}
	}
	return d.displayDistributors(ctx, sess)
}

// selectContactPoint records the chosen dealer/distributor on the form,
// closes the nested flow and moves the wizard to contact details.
func (d *Dispatcher) selectContactPoint(sess *session.Session, id, name, details string, ct locations.ContactType) Response {
	form := sess.Enquiry.Form
	form.ContactType = string(ct)
	form.ContactID = id
	form.ContactName = name
	form.ContactDetails = details

	sess.Enquiry.Location = nil
	sess.Enquiry.Stage = session.StageContactDetails

	var b strings.Builder
	fmt.Fprintf(&b, "Great choice! Your enquiry will go to:\n\n%s\n%s\n\n", name, details)
	b.WriteString("Now, please share your contact details so they can reach you.\n\n")
	b.WriteString("Send your name, email and mobile number separated by commas.\n")
	b.WriteString("For example: Priya Sharma, priya@example.com, 9876543210")

	return Response{
		Message:   b.String(),
		Question:  "Your contact details:",
		AllowText: true,
		ActionButtons: []Button{
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenContactDetails,
	}
}

// renderFlowStep re-renders the screen for the flow's current step, used
// after a backward transition.
func (d *Dispatcher) renderFlowStep(ctx context.Context, sess *session.Session) Response {
	switch sess.Enquiry.Location.Step {
	case session.StepTypeSelection:
		return d.contactTypePrompt(sess)
	case session.StepStateSelection:
		return d.displayStates(ctx, sess)
	case session.StepCitySelection:
		return d.displayCities(ctx, sess)
	case session.StepDealerSelection:
		return d.displayDealers(ctx, sess)
	case session.StepDistributorSelection:
		return d.displayDistributors(ctx, sess)
	default:
		return d.contactTypePrompt(sess)
	}
}

// pageNav builds the previous / page indicator / next button row.
func pageNav(hasPrev, hasNext bool, index, total int) []Button {
	if total <= 1 {
		return nil
	}
	return []Button{
		{ID: "previous", Label: "Previous", Disabled: !hasPrev},
		{ID: "page", Label: fmt.Sprintf("%d / %d", index+1, total), Disabled: true},
		{ID: "next", Label: "Next", Disabled: !hasNext},
	}
}

// flowLookupFailed keeps the wizard alive on a directory lookup failure so
// the next input retries the same step.
func (d *Dispatcher) flowLookupFailed(msg string) Response {
	return Response{
		Message:  msg + " Please try again.",
		Question: "Send any message to retry, or cancel:",
		ActionButtons: []Button{
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenError,
	}
}

func matchState(states []locations.StateInfo, input string) (locations.StateInfo, bool) {
	needle := strings.TrimSpace(input)
	for _, st := range states {
		if strconv.FormatInt(st.ID, 10) == needle || strings.EqualFold(st.Name, needle) {
			return st, true
		}
	}
	return locations.StateInfo{}, false
}
