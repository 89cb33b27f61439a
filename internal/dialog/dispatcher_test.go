package dialog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/motorline/partsbot/internal/enquiry"
	"github.com/motorline/partsbot/internal/session"
)

func TestNew_RequiredDeps(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		opts Opts
	}{
		{"missing sessions", Opts{Catalog: env.d.catalog, Locations: env.d.locations, Enquiries: env.enquiries, Vehicles: testVehicles}},
		{"missing catalog", Opts{Sessions: env.sessions, Locations: env.d.locations, Enquiries: env.enquiries, Vehicles: testVehicles}},
		{"missing locations", Opts{Sessions: env.sessions, Catalog: env.d.catalog, Enquiries: env.enquiries, Vehicles: testVehicles}},
		{"missing enquiries", Opts{Sessions: env.sessions, Catalog: env.d.catalog, Locations: env.d.locations, Vehicles: testVehicles}},
		{"no vehicles", Opts{Sessions: env.sessions, Catalog: env.d.catalog, Locations: env.d.locations, Enquiries: env.enquiries}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Error("New accepted incomplete options")
			}
		})
	}
}

func TestGreeting_ShowsMainMenu(t *testing.T) {
	env := newTestEnv(t)

	for _, greeting := range []string{"hello", "hi", "Hi there", "help", "what can you do"} {
		resp := env.turn(t, "s-"+greeting, greeting)
		if resp.Screen != ScreenMainMenu {
			t.Errorf("%q: Screen = %q, want %q", greeting, resp.Screen, ScreenMainMenu)
		}
		if len(resp.Options) != 5 {
			t.Errorf("%q: len(Options) = %d, want 5", greeting, len(resp.Options))
		}
	}
}

func TestHiMatchesAsWordOnly(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "this doesn't greet")
	if resp.Screen == ScreenMainMenu {
		t.Error("'this' was read as a greeting")
	}
}

func TestMenuSelection_ByLabelAndNumber(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		input      string
		wantScreen string
	}{
		{"Browse Accessories", ScreenVehicleSelection},
		{"browse parts", ScreenPartTypes},
		{"Find Dealers & Distributors", ScreenLocationLookup},
		{"Check Current Offers", ScreenOffers},
		{"Get Product Support", ScreenProductSupport},
		{"1", ScreenVehicleSelection},
		{"2", ScreenPartTypes},
		{"3", ScreenLocationLookup},
		{"4", ScreenOffers},
		{"5", ScreenProductSupport},
	}
	for _, tt := range tests {
		resp := env.turn(t, "s-"+tt.input, tt.input)
		if resp.Screen != tt.wantScreen {
			t.Errorf("%q: Screen = %q, want %q", tt.input, resp.Screen, tt.wantScreen)
		}
	}
}

func TestMenuSelection_OutOfRangeNumber(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "9")
	if resp.Screen != ScreenMainMenu {
		t.Errorf("Screen = %q, want re-shown %q", resp.Screen, ScreenMainMenu)
	}
	if !strings.Contains(resp.Message, "didn't understand") {
		t.Errorf("Message = %q, want an invalid-selection notice", resp.Message)
	}
}

func TestStartOver_ResetsBeforeGreetingKeywords(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")

	// "start over" contains "start"; it must reset, not merely greet.
	resp := env.turn(t, "s1", "Start over")
	if resp.Screen != ScreenMainMenu {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenMainMenu)
	}
	sess, _ := env.sessions.Get("s1")
	if sess.SelectedModel != nil {
		t.Error("SelectedModel survived start over")
	}
	if sess.ShowingAccessories {
		t.Error("list cache survived start over")
	}
}

func TestBrowseAnotherCategory_ReturnsToTypes(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")

	resp := env.turn(t, "s1", "Browse Another Category")
	if resp.Screen != ScreenTypeSelection {
		t.Errorf("Screen = %q, want %q", resp.Screen, ScreenTypeSelection)
	}
	if !hasOption(resp.Options, "Interior") {
		t.Errorf("Options = %v, want the model's categories again", resp.Options)
	}
}

func TestEnquiryIntent_WithoutSelection(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "I want to buy something")
	if !strings.Contains(resp.Message, "select an accessory or part first") {
		t.Errorf("Message = %q, want guidance to select an item", resp.Message)
	}
}

func TestDirectQuestion_UsesFallback(t *testing.T) {
	env := newTestEnv(t)
	env.responder.answer = "Ceramic pads last longer."

	resp := env.turn(t, "s1", "are ceramic pads worth it?")
	if resp.Message != "Ceramic pads last longer." {
		t.Errorf("Message = %q, want the fallback answer", resp.Message)
	}
	if resp.Screen != ScreenFreeform {
		t.Errorf("Screen = %q, want %q", resp.Screen, ScreenFreeform)
	}
	if len(env.responder.asked) != 1 {
		t.Errorf("fallback asked %d times, want 1", len(env.responder.asked))
	}
}

func TestDirectQuestion_FallbackError(t *testing.T) {
	env := newTestEnv(t)
	env.responder.err = errors.New("model offline")

	resp := env.turn(t, "s1", "arbitrary question?")
	if resp.Screen != ScreenError {
		t.Errorf("Screen = %q, want %q", resp.Screen, ScreenError)
	}
}

func TestDirectQuestion_NoFallbackConfigured(t *testing.T) {
	env := newTestEnv(t)
	env.d.fallback = nil

	resp := env.turn(t, "s1", "arbitrary question?")
	if resp.Screen != ScreenMainMenu {
		t.Errorf("Screen = %q, want the menu re-shown", resp.Screen)
	}
}

func TestTrackEnquiry_Found(t *testing.T) {
	env := newTestEnv(t)
	env.enquiries.saved["ENQ-20260831-ABCDE"] = &enquiry.Form{
		ReferenceNumber: "ENQ-20260831-ABCDE",
		ItemType:        enquiry.ItemAccessory,
		ItemName:        "Door Visors",
		ModelName:       "Horizon",
		ContactType:     "dealer",
		ContactName:     "Arise Motors",
		Status:          "submitted",
	}

	resp := env.turn(t, "s1", "status of enq-20260831-abcde please")
	if resp.Screen != ScreenEnquiryStatus {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenEnquiryStatus)
	}
	if !strings.Contains(resp.Message, "Door Visors") || !strings.Contains(resp.Message, "Arise Motors") {
		t.Errorf("Message = %q, want the enquiry summary", resp.Message)
	}
}

func TestTrackEnquiry_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "ENQ-20260831-XXXXX")
	if !strings.Contains(resp.Message, "No enquiry found") {
		t.Errorf("Message = %q, want a not-found notice", resp.Message)
	}
}

func TestHandle_SetsSessionIDAndRecords(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "abc-123", "hello")
	if resp.SessionID != "abc-123" {
		t.Errorf("SessionID = %q, want %q", resp.SessionID, "abc-123")
	}
	if len(env.recorder.turns) != 1 || env.recorder.turns[0] != "hello" {
		t.Errorf("recorded turns = %v, want the user text logged", env.recorder.turns)
	}
}

func TestSafeDispatch_RecoversPanics(t *testing.T) {
	env := newTestEnv(t)

	sess, release := env.sessions.Acquire("s1")
	// An enquiry with a stage but a nil form would panic in the stage
	// handlers; the dispatcher must answer anyway.
	sess.Enquiry = &session.Enquiry{Stage: session.StageReview}
	release()

	resp := env.turn(t, "s1", "submit")
	if resp.Screen != ScreenError {
		t.Errorf("Screen = %q, want %q after recovery", resp.Screen, ScreenError)
	}
}

func TestListPick_OutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.walkToAccessories(t, "s1")

	resp := env.turn(t, "s1", "9")
	if resp.End {
		t.Error("out-of-range pick ended the conversation")
	}
	if !strings.Contains(resp.Message, "between 1 and 2") {
		t.Errorf("Message = %q, want the valid range named", resp.Message)
	}

	// The list stays armed, so a corrected pick works.
	resp = env.turn(t, "s1", "1")
	if resp.Screen != ScreenEnquiryConfirm {
		t.Errorf("Screen = %q, want %q after a valid pick", resp.Screen, ScreenEnquiryConfirm)
	}
}

func TestConcurrentTurns_DistinctSessions(t *testing.T) {
	env := newTestEnv(t)

	done := make(chan string, 2)
	for _, id := range []string{"s1", "s2"} {
		id := id
		go func() {
			resp := env.d.Handle(context.Background(), id, "hello")
			done <- resp.SessionID
		}()
	}
	got := map[string]bool{<-done: true, <-done: true}
	if !got["s1"] || !got["s2"] {
		t.Errorf("responses = %v, want both sessions answered", got)
	}
}
