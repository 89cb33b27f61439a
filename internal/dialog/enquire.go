package dialog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/motorline/partsbot/internal/enquiry"
	"github.com/motorline/partsbot/internal/session"
)

// handleEnquiry is the enquiry wizard entry point. A session with no active
// enquiry gets one started from the current item selection; an active one is
// routed to its stage handler, with the nested location flow taking
// precedence while it is open.
func (d *Dispatcher) handleEnquiry(ctx context.Context, sess *session.Session, input string) Response {
	if sess.Enquiry == nil {
		return d.initiateEnquiry(sess)
	}
	if sess.Enquiry.Location != nil {
		return d.handleLocationFlow(ctx, sess, input)
	}

	switch sess.Enquiry.Stage {
	case session.StageInit:
		return d.handleEnquiryConfirmation(ctx, sess, input)
	case session.StageDealerDistributor:
		// The stage is DEALER_DISTRIBUTOR but the flow object is gone,
		// which happens only after back from contact details.
		return d.startLocationFlow(sess)
	case session.StageContactDetails:
		return d.handleContactDetails(ctx, sess, input)
	case session.StageQuery:
		return d.handleQueryInput(sess, input)
	case session.StageReview:
		return d.handleReview(ctx, sess, input)
	case session.StageSubmitted:
		return d.handlePostSubmission(ctx, sess, input)
	default:
		log.Printf("dialog: session %s: unknown enquiry stage %q", sess.ID, sess.Enquiry.Stage)
		sess.ClearEnquiry()
		return d.errorResponse("Something went wrong with your enquiry. Please start over.")
	}
}

// initiateEnquiry builds a form from the selected accessory or part and
// shows the confirmation screen.
func (d *Dispatcher) initiateEnquiry(sess *session.Session) Response {
	// The active flow decides which selection the form is built from. A
	// stale selection from the other flow can survive a cancelled enquiry.
	var form *enquiry.Form
	switch {
	case sess.AccessoryFlow && sess.SelectedItem != nil && sess.SelectedModel != nil:
		form = &enquiry.Form{
			ItemType:  enquiry.ItemAccessory,
			ItemID:    fmt.Sprintf("%d", sess.SelectedItem.ID),
			ItemName:  sess.SelectedItem.Name,
			ModelID:   fmt.Sprintf("%d", sess.SelectedModel.ID),
			ModelName: sess.SelectedModel.Name,
		}
	case !sess.AccessoryFlow && sess.SelectedPart != nil:
		form = &enquiry.Form{
			ItemType: enquiry.ItemPart,
			ItemID:   fmt.Sprintf("%d", sess.SelectedPart.ID),
			ItemName: sess.SelectedPart.Name,
		}
	default:
		return d.errorResponse("Please select an accessory or part first before making an enquiry.")
	}

	sess.StartEnquiry(form)
	return d.showEnquiryConfirmation(sess)
}

// showEnquiryConfirmation is the INIT screen: confirm the item before the
// wizard starts collecting details.
func (d *Dispatcher) showEnquiryConfirmation(sess *session.Session) Response {
	form := sess.Enquiry.Form

	var b strings.Builder
	b.WriteString("Purchase Enquiry\n\n")
	fmt.Fprintf(&b, "Item: %s\n", form.ItemName)
	if form.ItemType == enquiry.ItemAccessory {
		fmt.Fprintf(&b, "Vehicle model: %s\n", form.ModelName)
		if sess.SelectedItem != nil && sess.SelectedItem.Price > 0 {
			fmt.Fprintf(&b, "MRP: %.0f\n", sess.SelectedItem.Price)
		}
	}
	b.WriteString("\nI'll collect a few details and connect you with a dealer or distributor.")

	return Response{
		Message:  b.String(),
		Question: "Would you like to proceed with this enquiry?",
		Buttons: []Button{
			{ID: "continue", Label: "Continue"},
			{ID: "back", Label: "Back to results"},
			{ID: "cancel", Label: "Cancel enquiry"},
		},
		Screen: ScreenEnquiryConfirm,
	}
}

// handleEnquiryConfirmation consumes the INIT answer.
func (d *Dispatcher) handleEnquiryConfirmation(ctx context.Context, sess *session.Session, input string) Response {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "continue", "yes", "proceed":
		sess.Enquiry.Stage = session.StageDealerDistributor
		return d.startLocationFlow(sess)
	case "back", "back to results":
		sess.ClearEnquiry()
		return Response{
			Message:  "Taking you back to the results.",
			Question: "What would you like to do next?",
			Options:  resultNavOptions,
			Screen:   listScreen(sess),
		}
	case "cancel", "cancel enquiry", "no":
		sess.ClearEnquiry()
		return Response{
			Message:  "Enquiry cancelled. Happy to help with anything else.",
			Question: "What would you like to explore?",
			Options:  menuOptions,
			Screen:   ScreenMainMenu,
		}
	default:
		return d.showEnquiryConfirmation(sess)
	}
}

// listScreen names the result screen the user came from.
func listScreen(sess *session.Session) string {
	if sess.Enquiry != nil && sess.Enquiry.Form.ItemType == enquiry.ItemPart {
		return ScreenParts
	}
	if sess.SelectedPart != nil {
		return ScreenParts
	}
	return ScreenAccessories
}

// handleContactDetails consumes the CONTACT_DETAILS input: either the
// duplicate-guard confirmation or a fresh "Name, Email, Mobile" line.
func (d *Dispatcher) handleContactDetails(ctx context.Context, sess *session.Session, input string) Response {
	enq := sess.Enquiry
	lower := strings.ToLower(strings.TrimSpace(input))

	if enq.AwaitingDupConfirm {
		switch lower {
		case "continue", "yes", "proceed":
			enq.AwaitingDupConfirm = false
			enq.Stage = session.StageQuery
			return d.promptForQuery(sess)
		case "cancel", "no":
			sess.ClearEnquiry()
			return Response{
				Message:  "No problem, I've cancelled this enquiry. Your earlier enquiry is still with our team.",
				Question: "What would you like to explore?",
				Options:  menuOptions,
				Screen:   ScreenMainMenu,
			}
		default:
			return d.duplicateConfirmPrompt()
		}
	}

	if lower == "back" {
		enq.Stage = session.StageDealerDistributor
		return d.startLocationFlow(sess)
	}

	parts := strings.Split(input, ",")
	if len(parts) < 3 {
		return d.contactDetailsInvalid()
	}
	name := strings.TrimSpace(parts[0])
	email := strings.TrimSpace(parts[1])
	mobile := strings.TrimSpace(parts[2])
	if name == "" || email == "" || mobile == "" {
		return d.contactDetailsInvalid()
	}

	form := enq.Form
	form.CustomerName = name
	form.Email = email
	form.Mobile = mobile

	since := time.Now().Add(-enquiry.DuplicateWindow)
	dup, err := d.enquiries.Exists(email, mobile, form.ItemID, form.ItemType, since)
	if err != nil {
		// The guard is best effort: a lookup failure never blocks the
		// enquiry.
		log.Printf("dialog: session %s: duplicate check: %v", sess.ID, err)
		dup = false
	}
	if dup {
		enq.AwaitingDupConfirm = true
		return d.duplicateConfirmPrompt()
	}

	enq.Stage = session.StageQuery
	return d.promptForQuery(sess)
}

func (d *Dispatcher) contactDetailsInvalid() Response {
	return Response{
		Message: "I couldn't read those details. Please send your name, email and mobile number separated by commas.\n\n" +
			"For example: Priya Sharma, priya@example.com, 9876543210",
		Question:  "Your contact details:",
		AllowText: true,
		Buttons: []Button{
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenContactDetails,
	}
}

func (d *Dispatcher) duplicateConfirmPrompt() Response {
	return Response{
		Message: "You already have a recent enquiry for this item with these contact details. " +
			"Our team may still be working on it.",
		Question: "Would you like to submit another enquiry anyway?",
		Buttons: []Button{
			{ID: "continue", Label: "Yes, continue"},
			{ID: "cancel", Label: "No, cancel"},
		},
		Screen: ScreenDuplicateConfirm,
	}
}

// promptForQuery is the QUERY screen: an optional free-text question for
// the dealer.
func (d *Dispatcher) promptForQuery(sess *session.Session) Response {
	return Response{
		Message:   "Almost done! Do you have any specific question for the dealer? You can ask about availability, fitment, installation or anything else.",
		Question:  "Type your question, or skip:",
		AllowText: true,
		Buttons: []Button{
			{ID: "skip", Label: "Skip"},
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenQuery,
	}
}

// handleQueryInput consumes the QUERY input.
func (d *Dispatcher) handleQueryInput(sess *session.Session, input string) Response {
	enq := sess.Enquiry
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "back":
		enq.Stage = session.StageContactDetails
		return d.contactDetailsPrompt(sess)
	case "skip", "":
		// No question; leave the field empty.
	default:
		enq.Form.Query = strings.TrimSpace(input)
	}
	enq.Stage = session.StageReview
	return d.showReview(sess)
}

// contactDetailsPrompt re-shows the CONTACT_DETAILS screen after a back
// transition from QUERY.
func (d *Dispatcher) contactDetailsPrompt(sess *session.Session) Response {
	form := sess.Enquiry.Form
	msg := "Please share your contact details so the dealer can reach you.\n\n" +
		"Send your name, email and mobile number separated by commas.\n" +
		"For example: Priya Sharma, priya@example.com, 9876543210"
	if form.CustomerName != "" {
		msg += fmt.Sprintf("\n\nCurrently on file: %s, %s, %s", form.CustomerName, form.Email, form.Mobile)
	}
	return Response{
		Message:   msg,
		Question:  "Your contact details:",
		AllowText: true,
		Buttons: []Button{
			{ID: "back", Label: "Back"},
		},
		Screen: ScreenContactDetails,
	}
}

// showReview is the REVIEW screen: the full form before submission.
func (d *Dispatcher) showReview(sess *session.Session) Response {
	form := sess.Enquiry.Form

	var b strings.Builder
	b.WriteString("Review Your Enquiry\n\n")
	fmt.Fprintf(&b, "Item: %s (%s)\n", form.ItemName, form.ItemType)
	if form.ModelName != "" {
		fmt.Fprintf(&b, "Vehicle model: %s\n", form.ModelName)
	}
	fmt.Fprintf(&b, "Contact point: %s (%s)\n", form.ContactName, form.ContactType)
	if form.ContactDetails != "" {
		fmt.Fprintf(&b, "%s\n", form.ContactDetails)
	}
	fmt.Fprintf(&b, "\nYour name: %s\n", form.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", form.Email)
	fmt.Fprintf(&b, "Mobile: %s\n", form.Mobile)
	if form.Query != "" {
		fmt.Fprintf(&b, "Question: %s\n", form.Query)
	}

	return Response{
		Message:  b.String(),
		Question: "Submit this enquiry?",
		Buttons: []Button{
			{ID: "submit", Label: "Submit"},
			{ID: "edit_contact", Label: "Edit contact details"},
			{ID: "edit_query", Label: "Edit question"},
			{ID: "cancel", Label: "Cancel enquiry"},
		},
		Screen: ScreenReview,
	}
}

// handleReview consumes the REVIEW answer.
func (d *Dispatcher) handleReview(ctx context.Context, sess *session.Session, input string) Response {
	enq := sess.Enquiry
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "submit", "retry", "yes":
		return d.submitEnquiry(sess)
	case "edit_contact", "edit contact details":
		enq.Stage = session.StageContactDetails
		return d.contactDetailsPrompt(sess)
	case "edit_query", "edit question":
		enq.Stage = session.StageQuery
		return d.promptForQuery(sess)
	case "cancel", "cancel enquiry", "no":
		sess.ClearEnquiry()
		return Response{
			Message:  "Enquiry cancelled. Happy to help with anything else.",
			Question: "What would you like to explore?",
			Options:  menuOptions,
			Screen:   ScreenMainMenu,
		}
	default:
		return d.showReview(sess)
	}
}

// submitEnquiry persists the form. The reference number is assigned once so
// a retry after a failed save cannot mint a second one; a retry first checks
// whether the earlier attempt actually landed server-side.
func (d *Dispatcher) submitEnquiry(sess *session.Session) Response {
	enq := sess.Enquiry
	form := enq.Form

	if form.ReferenceNumber == "" {
		form.ReferenceNumber = enquiry.NewReferenceNumber()
	} else {
		prior, err := d.enquiries.FindByReference(form.ReferenceNumber)
		if err == nil && prior != nil {
			enq.Stage = session.StageSubmitted
			return d.submittedResponse(form.ReferenceNumber)
		}
	}

	if err := d.enquiries.Save(form, sess.ID); err != nil {
		log.Printf("dialog: session %s: save enquiry %s: %v", sess.ID, form.ReferenceNumber, err)
		return Response{
			Message:  "Sorry, I couldn't submit your enquiry just now. Nothing was lost, you can retry.",
			Question: "What would you like to do?",
			Buttons: []Button{
				{ID: "retry", Label: "Retry"},
				{ID: "cancel", Label: "Cancel enquiry"},
			},
			Screen: ScreenReview,
		}
	}

	enq.Stage = session.StageSubmitted
	return d.submittedResponse(form.ReferenceNumber)
}

func (d *Dispatcher) submittedResponse(ref string) Response {
	var b strings.Builder
	b.WriteString("Enquiry Submitted\n\n")
	fmt.Fprintf(&b, "Your reference number is %s. Keep it handy, you can ask me for the status any time by sending the reference number.\n\n", ref)
	b.WriteString("The dealer will contact you shortly on the details you shared.")

	return Response{
		Message:  b.String(),
		Question: "What would you like to do next?",
		Buttons: []Button{
			{ID: "browse_more", Label: "Browse more items"},
			{ID: "new_search", Label: "Start a new search"},
			{ID: "track_enquiry", Label: "Track this enquiry"},
			{ID: "end", Label: "That's all, thanks"},
		},
		Screen: ScreenSubmitted,
	}
}

// handlePostSubmission consumes the SUBMITTED follow-up choice.
func (d *Dispatcher) handlePostSubmission(ctx context.Context, sess *session.Session, input string) Response {
	wasAccessory := sess.Enquiry.Form.ItemType == enquiry.ItemAccessory
	ref := sess.Enquiry.Form.ReferenceNumber

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "browse_more", "browse more items":
		sess.ClearEnquiry()
		if wasAccessory && sess.SelectedModel != nil {
			return d.showTypesForModel(ctx, sess, *sess.SelectedModel)
		}
		return d.showPartTypes(ctx, sess)
	case "new_search", "start a new search":
		sess.Reset()
		return d.mainMenu(sess)
	case "track_enquiry", "track this enquiry":
		sess.ClearEnquiry()
		return d.handleTrackEnquiry(sess, ref)
	case "end", "that's all, thanks", "bye", "goodbye":
		sess.Reset()
		return Response{
			Message: "Thanks for choosing genuine accessories and parts. Have a great drive!",
			End:     true,
			Screen:  ScreenFarewell,
		}
	default:
		sess.ClearEnquiry()
		return Response{
			Message:  "How can I help you further?",
			Question: "What would you like to explore?",
			Options:  menuOptions,
			Screen:   ScreenMainMenu,
		}
	}
}
