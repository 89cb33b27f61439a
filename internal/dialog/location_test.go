package dialog

import (
	"strings"
	"testing"
)

// walkToStateSelection drives an accessory enquiry to the dealer state page.
func (e *testEnv) walkToStateSelection(t *testing.T, sessionID string) Response {
	t.Helper()
	e.walkToAccessories(t, sessionID)
	e.turn(t, sessionID, "1")
	e.turn(t, sessionID, "continue")
	resp := e.turn(t, sessionID, "dealer")
	if resp.Screen != ScreenStateSelection {
		t.Fatalf("walk: Screen = %q, want %q", resp.Screen, ScreenStateSelection)
	}
	return resp
}

func TestLocationFlow_ContactTypePrompt(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")
	env.turn(t, "s1", "1")

	resp := env.turn(t, "s1", "continue")
	if resp.Screen != ScreenContactType {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenContactType)
	}
	if !hasButton(resp.Buttons, "dealer") || !hasButton(resp.Buttons, "distributor") {
		t.Errorf("Buttons = %v, want dealer and distributor", resp.Buttons)
	}
	if !strings.Contains(resp.Message, "accessory") {
		t.Errorf("Message = %q, want the item kind named", resp.Message)
	}
}

func TestStateSelection_PaginatesAtFive(t *testing.T) {
	env := newTestEnv(t)
	resp := env.walkToStateSelection(t, "s1")

	if len(resp.Buttons) != 5 {
		t.Fatalf("len(Buttons) = %d, want 5 states per page", len(resp.Buttons))
	}
	if !strings.Contains(resp.Message, "page 1 of 2") {
		t.Errorf("Message = %q, want the page indicator", resp.Message)
	}
	if !hasButton(resp.NavButtons, "next") {
		t.Errorf("NavButtons = %v, want a next button", resp.NavButtons)
	}

	resp = env.turn(t, "s1", "next")
	if len(resp.Buttons) != 2 {
		t.Errorf("len(Buttons) = %d, want the 2 remaining states", len(resp.Buttons))
	}
	if !strings.Contains(resp.Message, "page 2 of 2") {
		t.Errorf("Message = %q, want page 2", resp.Message)
	}

	resp = env.turn(t, "s1", "previous")
	if !strings.Contains(resp.Message, "page 1 of 2") {
		t.Errorf("Message = %q, want page 1 again", resp.Message)
	}
}

func TestStateSelection_PickByIDOrName(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")

	resp := env.turn(t, "s1", "11")
	if resp.Screen != ScreenCitySelection {
		t.Fatalf("Screen = %q, want %q for pick by id", resp.Screen, ScreenCitySelection)
	}
	if !strings.Contains(resp.Message, "Karnataka") {
		t.Errorf("Message = %q, want the chosen state named", resp.Message)
	}
}

func TestStateSelection_UnknownInputRedisplays(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")

	resp := env.turn(t, "s1", "Atlantis")
	if resp.Screen != ScreenStateSelection {
		t.Errorf("Screen = %q, want the states re-shown", resp.Screen)
	}
}

func TestCitySelection_EmptyStateOffersOnlyBack(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")

	resp := env.turn(t, "s1", "Delhi")
	if !strings.Contains(resp.Message, "No cities found in Delhi") {
		t.Fatalf("Message = %q, want the empty-city notice", resp.Message)
	}
	if len(resp.Buttons) != 0 {
		t.Errorf("Buttons = %v, want none", resp.Buttons)
	}
	if !hasButton(resp.ActionButtons, "back") {
		t.Errorf("ActionButtons = %v, want a back button", resp.ActionButtons)
	}

	// Back recovers to the state page.
	resp = env.turn(t, "s1", "back")
	if resp.Screen != ScreenStateSelection {
		t.Errorf("Screen = %q, want %q after back", resp.Screen, ScreenStateSelection)
	}
}

func TestDealerSelection_PaginatesAtThree(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "Karnataka")

	resp := env.turn(t, "s1", "Bengaluru")
	if resp.Screen != ScreenDealerSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenDealerSelection)
	}
	if len(resp.Buttons) != 3 {
		t.Errorf("len(Buttons) = %d, want 3 dealers per page", len(resp.Buttons))
	}
	if !strings.Contains(resp.Message, "1. Arise Motors") {
		t.Errorf("Message = %q, want absolute numbering", resp.Message)
	}

	resp = env.turn(t, "s1", "next")
	// Numbering continues across pages.
	if !strings.Contains(resp.Message, "4. Advaith Vehicles") {
		t.Errorf("Message = %q, want the fourth dealer numbered 4", resp.Message)
	}
}

func TestDealerSelection_BackRestoresPageMemory(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "next")
	env.turn(t, "s1", "Kerala") // page 2 state, no cities

	resp := env.turn(t, "s1", "back")
	if resp.Screen != ScreenStateSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenStateSelection)
	}
	if !strings.Contains(resp.Message, "page 2 of 2") {
		t.Errorf("Message = %q, want the page the user left", resp.Message)
	}
}

func TestDealerSearch_FiltersAndSelects(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "Karnataka")
	env.turn(t, "s1", "Bengaluru")

	resp := env.turn(t, "s1", "search")
	if resp.Screen != ScreenDealerSearch {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenDealerSearch)
	}
	if !resp.AllowText {
		t.Error("AllowText = false on the search prompt")
	}

	resp = env.turn(t, "s1", "trident")
	if resp.Screen != ScreenDealerSelection {
		t.Fatalf("Screen = %q, want matches on the dealer screen", resp.Screen)
	}
	if len(resp.Buttons) != 1 || resp.Buttons[0].Label != "Trident Autoworks" {
		t.Errorf("Buttons = %v, want only Trident Autoworks", resp.Buttons)
	}

	resp = env.turn(t, "s1", "5002")
	if resp.Screen != ScreenContactDetails {
		t.Errorf("Screen = %q, want %q after selection", resp.Screen, ScreenContactDetails)
	}
}

func TestDealerSearch_NoMatchesReprompts(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "Karnataka")
	env.turn(t, "s1", "Bengaluru")
	env.turn(t, "s1", "search")

	resp := env.turn(t, "s1", "zzzz")
	if resp.Screen != ScreenDealerSearch {
		t.Errorf("Screen = %q, want the search re-prompted", resp.Screen)
	}

	// Cancel returns to the full listing.
	resp = env.turn(t, "s1", "cancel")
	if resp.Screen != ScreenDealerSelection {
		t.Errorf("Screen = %q, want %q", resp.Screen, ScreenDealerSelection)
	}
	if len(resp.Buttons) != 3 {
		t.Errorf("len(Buttons) = %d, want the paged listing back", len(resp.Buttons))
	}
}

func TestDealerSearch_BackReturnsToDealerPage(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "Karnataka")
	env.turn(t, "s1", "Bengaluru")
	env.turn(t, "s1", "next")
	env.turn(t, "s1", "search")

	resp := env.turn(t, "s1", "back")
	if resp.Screen != ScreenDealerSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenDealerSelection)
	}
	if !strings.Contains(resp.Message, "4. Advaith Vehicles") {
		t.Errorf("Message = %q, want the dealer page the user left", resp.Message)
	}
}

func TestDistributorPath_SkipsCities(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")
	env.turn(t, "s1", "1")
	env.turn(t, "s1", "continue")

	resp := env.turn(t, "s1", "distributor")
	if resp.Screen != ScreenStateSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenStateSelection)
	}
	// Distributor coverage is the smaller state set, one page.
	if len(resp.Buttons) != 3 {
		t.Errorf("len(Buttons) = %d, want 3 distributor states", len(resp.Buttons))
	}

	resp = env.turn(t, "s1", "Karnataka")
	if resp.Screen != ScreenDistributorPick {
		t.Fatalf("Screen = %q, want distributors directly, no city step", resp.Screen)
	}
	if !strings.Contains(resp.Message, "Southline Parts Co") {
		t.Errorf("Message = %q, want the state's distributors", resp.Message)
	}

	resp = env.turn(t, "s1", "7001")
	if resp.Screen != ScreenContactDetails {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenContactDetails)
	}

	sess, _ := env.sessions.Get("s1")
	if sess.Enquiry.Form.ContactType != "distributor" {
		t.Errorf("ContactType = %q, want %q", sess.Enquiry.Form.ContactType, "distributor")
	}
	if sess.Enquiry.Form.ContactName != "Southline Parts Co" {
		t.Errorf("ContactName = %q, want the picked distributor", sess.Enquiry.Form.ContactName)
	}
}

func TestDistributorPath_EmptyState(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")
	env.turn(t, "s1", "1")
	env.turn(t, "s1", "continue")
	env.turn(t, "s1", "distributor")

	resp := env.turn(t, "s1", "Gujarat")
	if !strings.Contains(resp.Message, "No distributors found in Gujarat") {
		t.Errorf("Message = %q, want the empty notice", resp.Message)
	}
	if !hasButton(resp.ActionButtons, "back") {
		t.Errorf("ActionButtons = %v, want a back button", resp.ActionButtons)
	}
}

func TestBackFromStateSelection_ExitsToConfirmation(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")

	resp := env.turn(t, "s1", "back")
	if resp.Screen != ScreenEnquiryConfirm {
		t.Fatalf("Screen = %q, want the item confirmation again", resp.Screen)
	}
	sess, _ := env.sessions.Get("s1")
	if sess.Enquiry.Location != nil {
		t.Error("location flow still open after exiting")
	}
}

func TestChangeContactType_RestartsFlow(t *testing.T) {
	env := newTestEnv(t)
	env.walkToStateSelection(t, "s1")
	env.turn(t, "s1", "Karnataka")

	resp := env.turn(t, "s1", "start_over")
	if resp.Screen != ScreenContactType {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenContactType)
	}
	sess, _ := env.sessions.Get("s1")
	if sess.Enquiry.Location.StateID != "" {
		t.Error("state selection survived the flow restart")
	}
}

func TestBackFromContactDetails_ReentersLocationFlow(t *testing.T) {
	env := newTestEnv(t)
	env.walkToContactDetails(t, "s1")

	resp := env.turn(t, "s1", "back")
	if resp.Screen != ScreenContactType {
		t.Errorf("Screen = %q, want the contact-type choice again", resp.Screen)
	}
}
