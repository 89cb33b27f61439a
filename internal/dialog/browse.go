package dialog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/motorline/partsbot/internal/locations"
	"github.com/motorline/partsbot/internal/session"
)

// showVehicleSelection starts the accessory browse flow.
func (d *Dispatcher) showVehicleSelection(sess *session.Session) Response {
	options := make([]string, len(d.vehicles))
	for i, v := range d.vehicles {
		options[i] = v.Name
	}
	sess.Current = session.StateAwaitingVehicle
	return Response{
		Message:  "Great! Let's find the perfect accessories for your vehicle. Which model do you own?",
		Question: "Select your vehicle model:",
		Options:  options,
		Screen:   ScreenVehicleSelection,
	}
}

// handleVehicleSelection consumes the awaiting_vehicle continuation.
func (d *Dispatcher) handleVehicleSelection(ctx context.Context, sess *session.Session, input string) Response {
	model, ok := d.vehicleByName(input)
	if !ok {
		sess.Current = session.StateAwaitingVehicle
		options := make([]string, len(d.vehicles))
		for i, v := range d.vehicles {
			options[i] = v.Name
		}
		return Response{
			Message:  fmt.Sprintf("I don't recognize the model %q.", strings.TrimSpace(input)),
			Question: "Select your vehicle model:",
			Options:  options,
			Screen:   ScreenVehicleSelection,
		}
	}

	sess.SelectedModel = &session.ModelInfo{ID: model.ID, Name: model.Name}
	sess.AccessoryFlow = true
	return d.showTypesForModel(ctx, sess, *sess.SelectedModel)
}

// showTypesForModel lists accessory categories for a model and arms the
// awaiting_type continuation. Also serves "Browse Another Category".
func (d *Dispatcher) showTypesForModel(ctx context.Context, sess *session.Session, model session.ModelInfo) Response {
	types, err := d.catalog.TypesForModel(ctx, model.Name)
	if err != nil {
		log.Printf("dialog: session %s: types for %s: %v", sess.ID, model.Name, err)
		sess.Current = session.StateAwaitingVehicle
		return d.errorResponse("Sorry, I couldn't load the accessory categories. Please try again.")
	}
	if len(types) == 0 {
		sess.Current = session.StateAwaitingVehicle
		return d.errorResponse(fmt.Sprintf("No accessories found for %s.", model.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Accessories for %s\n\nSelect a category to explore:\n\n", model.Name)
	options := make([]string, 0, len(types))
	sess.TypesByName = make(map[string]session.TypeInfo)
	for _, t := range types {
		fmt.Fprintf(&b, "- %s\n", t.Name)
		options = append(options, t.Name)
		sess.TypesByName[strings.ToLower(t.Name)] = session.TypeInfo{ID: t.ID, Name: t.Name}
	}

	sess.Current = session.StateAwaitingType
	return Response{
		Message:  b.String(),
		Question: "Select accessory category:",
		Options:  options,
		Screen:   ScreenTypeSelection,
		Lookup:   "TypesForModel",
	}
}

// handleTypeSelection consumes the awaiting_type continuation. A category
// with no subcategories skips straight to the item listing.
func (d *Dispatcher) handleTypeSelection(ctx context.Context, sess *session.Session, input string) Response {
	typeInfo, ok := sess.TypesByName[strings.ToLower(strings.TrimSpace(input))]
	if sess.SelectedModel == nil || !ok {
		return d.sessionExpired()
	}
	model := *sess.SelectedModel
	sess.SelectedType = &typeInfo

	subs, err := d.catalog.SubtypesForType(ctx, model.Name, typeInfo.ID)
	if err != nil {
		log.Printf("dialog: session %s: subtypes for %s/%d: %v", sess.ID, model.Name, typeInfo.ID, err)
		sess.Current = session.StateAwaitingType
		return d.errorResponse("Sorry, I couldn't load the subcategories. Please try again.")
	}
	if len(subs) == 0 {
		// No subcategory level: show the items for the category directly.
		return d.showAccessories(ctx, sess, model, typeInfo.ID, nil, typeInfo.Name, session.StateAwaitingType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s - Subcategories\n\nSelect a subcategory:\n\n", typeInfo.Name)
	options := make([]string, 0, len(subs))
	sess.SubtypesByName = make(map[string]session.SubtypeInfo)
	for _, st := range subs {
		fmt.Fprintf(&b, "- %s\n", st.Name)
		options = append(options, st.Name)
		sess.SubtypesByName[strings.ToLower(st.Name)] = session.SubtypeInfo{ID: st.ID, Name: st.Name}
	}

	sess.Current = session.StateAwaitingSubtype
	return Response{
		Message:  b.String(),
		Question: "Select subcategory:",
		Options:  options,
		Screen:   ScreenSubtypeSelection,
		Lookup:   "SubtypesForType",
	}
}

// handleSubtypeSelection consumes the awaiting_subtype continuation.
func (d *Dispatcher) handleSubtypeSelection(ctx context.Context, sess *session.Session, input string) Response {
	subInfo, ok := sess.SubtypesByName[strings.ToLower(strings.TrimSpace(input))]
	if sess.SelectedModel == nil || sess.SelectedType == nil || !ok {
		return d.sessionExpired()
	}
	sess.SelectedSubtype = &subInfo
	return d.showAccessories(ctx, sess, *sess.SelectedModel, sess.SelectedType.ID, &subInfo.ID, subInfo.Name, session.StateAwaitingSubtype)
}

// showAccessories fetches and renders the accessory listing. retryState is
// re-armed on a fetch failure so the user retries the same step.
func (d *Dispatcher) showAccessories(ctx context.Context, sess *session.Session, model session.ModelInfo, typeID int64, subtypeID *int64, category string, retryState session.State) Response {
	items, err := d.catalog.ItemsFiltered(ctx, model.Name, typeID, subtypeID)
	if err != nil {
		log.Printf("dialog: session %s: items for %s/%d: %v", sess.ID, model.Name, typeID, err)
		sess.Current = retryState
		return d.errorResponse("Sorry, I couldn't load the accessories. Please try again.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Accessories for %s\n\n", category, model.Name)

	if len(items) == 0 {
		b.WriteString("No accessories found in this category.")
		sess.ClearShownLists()
	} else {
		fmt.Fprintf(&b, "Found %d accessories:\n\n", len(items))
		sess.ShownAccessories = make([]session.AccessoryInfo, 0, len(items))
		for i, a := range items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, a.Name)
			fmt.Fprintf(&b, "   MRP: %.0f\n", a.Price)
			if a.Description != "" {
				fmt.Fprintf(&b, "   %s\n", a.Description)
			}
			fmt.Fprintf(&b, "   Part code: %s\n\n", a.Code)
			sess.ShownAccessories = append(sess.ShownAccessories, session.AccessoryInfo{
				ID:          a.ID,
				Name:        a.Name,
				Description: a.Description,
				Price:       a.Price,
			})
		}
		sess.ShowingAccessories = true
		sess.ShowingParts = false
		b.WriteString("To enquire about any accessory, type its number (e.g. '1' for the first item).")
	}

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  resultNavOptions,
		Screen:   ScreenAccessories,
		Lookup:   "ItemsFiltered",
	}
}

// showPartTypes starts the parts browse flow.
func (d *Dispatcher) showPartTypes(ctx context.Context, sess *session.Session) Response {
	partTypes, err := d.catalog.PartTypes(ctx)
	if err != nil {
		log.Printf("dialog: session %s: part types: %v", sess.ID, err)
		return d.errorResponse("Sorry, I couldn't load the parts categories. Please try again.")
	}
	if len(partTypes) == 0 {
		return d.errorResponse("Unable to fetch parts categories.")
	}

	var b strings.Builder
	b.WriteString("Genuine Parts Categories\n\nSelect a category to view available parts:\n\n")
	options := make([]string, 0, len(partTypes))
	sess.PartTypesByName = make(map[string]session.PartTypeInfo)
	for _, pt := range partTypes {
		fmt.Fprintf(&b, "- %s\n", pt.Name)
		options = append(options, pt.Name)
		sess.PartTypesByName[strings.ToLower(pt.Name)] = session.PartTypeInfo{ID: pt.ID, Name: pt.Name}
	}

	sess.AccessoryFlow = false
	sess.Current = session.StateAwaitingPartType
	return Response{
		Message:  b.String(),
		Question: "Select parts category:",
		Options:  options,
		Screen:   ScreenPartTypes,
		Lookup:   "PartTypes",
	}
}

// handlePartTypeSelection consumes the awaiting_part_type continuation.
func (d *Dispatcher) handlePartTypeSelection(ctx context.Context, sess *session.Session, input string) Response {
	typeInfo, ok := sess.PartTypesByName[strings.ToLower(strings.TrimSpace(input))]
	if !ok {
		sess.Current = session.StateAwaitingPartType
		return Response{
			Message:  "Invalid selection. Please choose one of the parts categories.",
			Question: "Select parts category:",
			Options:  partTypeOptions(sess),
			Screen:   ScreenPartTypes,
		}
	}
	sess.SelectedPartType = &typeInfo

	parts, err := d.catalog.PartsForType(ctx, typeInfo.ID)
	if err != nil {
		log.Printf("dialog: session %s: parts for %d: %v", sess.ID, typeInfo.ID, err)
		sess.Current = session.StateAwaitingPartType
		return d.errorResponse("Sorry, I couldn't load the parts. Please try again.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Parts\n\n", typeInfo.Name)

	if len(parts) == 0 {
		b.WriteString("No parts available in this category.")
		sess.ClearShownLists()
	} else {
		fmt.Fprintf(&b, "Found %d parts:\n\n", len(parts))
		sess.ShownParts = make([]session.PartInfo, 0, len(parts))
		for i, p := range parts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
			if p.Description != "" {
				fmt.Fprintf(&b, "   %s\n", p.Description)
			}
			fmt.Fprintf(&b, "   Part code: %s\n\n", p.Code)
			sess.ShownParts = append(sess.ShownParts, session.PartInfo{
				ID:          p.ID,
				Name:        p.Name,
				Code:        p.Code,
				Description: p.Description,
			})
		}
		sess.ShowingParts = true
		sess.ShowingAccessories = false
		b.WriteString("Note: part prices vary by dealer. Contact your nearest dealer for pricing.\n\n")
		b.WriteString("To enquire about any part, type its number (e.g. '1' for the first item).")
	}

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  resultNavOptions,
		Screen:   ScreenParts,
		Lookup:   "PartsForType",
	}
}

func partTypeOptions(sess *session.Session) []string {
	options := make([]string, 0, len(sess.PartTypesByName))
	for _, pt := range sess.PartTypesByName {
		options = append(options, pt.Name)
	}
	return options
}

// showOffers renders current promotions.
func (d *Dispatcher) showOffers(ctx context.Context, sess *session.Session) Response {
	offers, err := d.catalog.Offers(ctx)
	if err != nil {
		log.Printf("dialog: session %s: offers: %v", sess.ID, err)
		return d.errorResponse("Sorry, I couldn't retrieve the current offers. Please try again.")
	}

	var b strings.Builder
	b.WriteString("Current Offers & Promotions\n\n")
	if len(offers) == 0 {
		b.WriteString("There are no running offers right now. Check back soon!")
	} else {
		for _, o := range offers {
			fmt.Fprintf(&b, "%s\n", o.Title)
			fmt.Fprintf(&b, "  %s\n", o.Description)
			fmt.Fprintf(&b, "  Discount: %s\n", o.Discount)
			fmt.Fprintf(&b, "  Valid until: %s\n", o.ValidUntil)
			fmt.Fprintf(&b, "  Terms: %s\n\n", o.Terms)
		}
	}

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  []string{"Browse Accessories", "Find Dealers & Distributors", "Start over"},
		Screen:   ScreenOffers,
		Lookup:   "Offers",
	}
}

// showProductSupport renders the static warranty/support screen.
func (d *Dispatcher) showProductSupport(sess *session.Session) Response {
	return Response{
		Message: "Product Support & Warranty\n\n" +
			"All genuine accessories come with:\n\n" +
			"- 12-month warranty on all accessories\n" +
			"- Perfect fit guarantee for your vehicle\n" +
			"- Easy installation with detailed instructions\n\n" +
			"For warranty claims or technical support, please contact your nearest authorized dealer.",
		Question: "What would you like to do next?",
		Options:  resultNavOptions,
		Screen:   ScreenProductSupport,
	}
}

// showLocationPrompt starts the standalone dealer lookup (outside the
// enquiry wizard) and arms the awaiting_location continuation.
func (d *Dispatcher) showLocationPrompt(ctx context.Context, sess *session.Session) Response {
	states, err := d.locations.StatesFor(ctx, locations.ContactDealer)
	if err != nil {
		log.Printf("dialog: session %s: dealer states: %v", sess.ID, err)
		return d.errorResponse("Sorry, I couldn't retrieve the location information. Please try again.")
	}

	var b strings.Builder
	b.WriteString("Find Dealers & Distributors\n\nI can help you find authorized dealers. Which state are you in?\n\n")
	limit := len(states)
	if limit > 10 {
		limit = 10
	}
	options := make([]string, 0, limit)
	for _, st := range states[:limit] {
		fmt.Fprintf(&b, "- %s\n", st.Name)
		options = append(options, st.Name)
	}

	sess.Current = session.StateAwaitingLocation
	return Response{
		Message:  b.String(),
		Question: "Select a state:",
		Options:  options,
		Screen:   ScreenLocationLookup,
		Lookup:   "StatesFor",
	}
}

// handleLocationLookup consumes the awaiting_location continuation: match a
// state, then list dealers across that state's cities.
func (d *Dispatcher) handleLocationLookup(ctx context.Context, sess *session.Session, input string) Response {
	states, err := d.locations.StatesFor(ctx, locations.ContactDealer)
	if err != nil {
		log.Printf("dialog: session %s: dealer states: %v", sess.ID, err)
		sess.Current = session.StateAwaitingLocation
		return d.errorResponse("Sorry, I couldn't retrieve the location information. Please try again.")
	}

	var picked *locations.StateInfo
	for i := range states {
		if strings.EqualFold(states[i].Name, strings.TrimSpace(input)) {
			picked = &states[i]
			break
		}
	}
	if picked == nil {
		sess.Current = session.StateAwaitingLocation
		return Response{
			Message:  fmt.Sprintf("I couldn't find the state %q. Please pick one of the listed states.", strings.TrimSpace(input)),
			Question: "Select a state:",
			Options:  stateNames(states, 10),
			Screen:   ScreenLocationLookup,
		}
	}

	cities, err := d.locations.CitiesFor(ctx, picked.ID)
	if err != nil {
		log.Printf("dialog: session %s: cities for %d: %v", sess.ID, picked.ID, err)
		sess.Current = session.StateAwaitingLocation
		return d.errorResponse(fmt.Sprintf("Sorry, I couldn't retrieve the dealers in %s. Please try again.", picked.Name))
	}

	const maxListed = 10
	var b strings.Builder
	fmt.Fprintf(&b, "Authorized Dealers in %s\n\n", picked.Name)
	listed := 0
	for _, city := range cities {
		dealers, err := d.locations.DealersFor(ctx, city.ID)
		if err != nil {
			log.Printf("dialog: session %s: dealers for %d: %v", sess.ID, city.ID, err)
			continue
		}
		for _, dealer := range dealers {
			if listed >= maxListed {
				break
			}
			fmt.Fprintf(&b, "%s\n%s\n\n", dealer.Name, dealer.ContactBlock())
			listed++
		}
	}
	if listed == 0 {
		return Response{
			Message:  fmt.Sprintf("No dealers found in %s right now.", picked.Name),
			Question: "What would you like to do next?",
			Options:  []string{"Browse Accessories", "Check Current Offers", "Find Distributors", "Start over"},
			Screen:   ScreenDealersResult,
			Lookup:   "DealersFor",
		}
	}

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  []string{"Browse Accessories", "Check Current Offers", "Find Distributors", "Start over"},
		Screen:   ScreenDealersResult,
		Lookup:   "DealersFor",
	}
}

// showAllDistributors lists distributors across every covered state.
func (d *Dispatcher) showAllDistributors(ctx context.Context, sess *session.Session) Response {
	states, err := d.locations.StatesFor(ctx, locations.ContactDistributor)
	if err != nil {
		log.Printf("dialog: session %s: distributor states: %v", sess.ID, err)
		return d.errorResponse("Sorry, I couldn't retrieve the distributor information. Please try again.")
	}

	const maxListed = 10
	var b strings.Builder
	b.WriteString("Authorized Parts Distributors\n\n")
	listed := 0
	for _, st := range states {
		dists, err := d.locations.DistributorsFor(ctx, st.ID)
		if err != nil {
			log.Printf("dialog: session %s: distributors for %d: %v", sess.ID, st.ID, err)
			continue
		}
		for _, dist := range dists {
			if listed >= maxListed {
				break
			}
			fmt.Fprintf(&b, "%s (%s)\n%s\n\n", dist.Name, st.Name, dist.ContactBlock())
			listed++
		}
	}
	if listed == 0 {
		b.WriteString("No distributors found right now.")
	}

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Options:  []string{"Browse Accessories", "Find Dealers & Distributors", "Check Current Offers", "Start over"},
		Screen:   ScreenDistributors,
		Lookup:   "DistributorsFor",
	}
}

func (d *Dispatcher) vehicleByName(input string) (Vehicle, bool) {
	needle := strings.TrimSpace(input)
	for _, v := range d.vehicles {
		if strings.EqualFold(v.Name, needle) {
			return v, true
		}
	}
	return Vehicle{}, false
}

func stateNames(states []locations.StateInfo, limit int) []string {
	if len(states) < limit {
		limit = len(states)
	}
	names := make([]string, 0, limit)
	for _, st := range states[:limit] {
		names = append(names, st.Name)
	}
	return names
}
