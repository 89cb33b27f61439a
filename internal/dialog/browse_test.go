package dialog

import (
	"strings"
	"testing"
)

func TestVehicleSelection_ListsConfiguredModels(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Browse Accessories")
	if resp.Screen != ScreenVehicleSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenVehicleSelection)
	}
	if len(resp.Options) != len(testVehicles) {
		t.Errorf("len(Options) = %d, want %d", len(resp.Options), len(testVehicles))
	}
	if !hasOption(resp.Options, "Horizon") {
		t.Errorf("Options = %v, want Horizon listed", resp.Options)
	}
}

func TestVehicleSelection_UnknownModelReprompts(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")

	resp := env.turn(t, "s1", "Falcon")
	if resp.Screen != ScreenVehicleSelection {
		t.Errorf("Screen = %q, want %q re-shown", resp.Screen, ScreenVehicleSelection)
	}
	if !strings.Contains(resp.Message, "Falcon") {
		t.Errorf("Message = %q, want the unknown model echoed", resp.Message)
	}

	// The continuation stays armed for a corrected answer.
	resp = env.turn(t, "s1", "horizon")
	if resp.Screen != ScreenTypeSelection {
		t.Errorf("Screen = %q, want %q after correction", resp.Screen, ScreenTypeSelection)
	}
}

func TestVehicleSelection_ModelWithoutAccessories(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")

	resp := env.turn(t, "s1", "Crest")
	if !strings.Contains(resp.Message, "No accessories found for Crest") {
		t.Errorf("Message = %q, want the empty-catalog notice", resp.Message)
	}
}

func TestTypeSelection_WithSubtypes(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")
	env.turn(t, "s1", "Horizon")

	resp := env.turn(t, "s1", "Interior")
	if resp.Screen != ScreenSubtypeSelection {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenSubtypeSelection)
	}
	if !hasOption(resp.Options, "Floor Mats") || !hasOption(resp.Options, "Seat Covers") {
		t.Errorf("Options = %v, want the Interior subcategories", resp.Options)
	}
}

func TestTypeSelection_SkipsEmptySubtypeLevel(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")
	env.turn(t, "s1", "Horizon")

	// Exterior has no subcategories; the listing shows directly.
	resp := env.turn(t, "s1", "Exterior")
	if resp.Screen != ScreenAccessories {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenAccessories)
	}
	if !strings.Contains(resp.Message, "Found 2 accessories") {
		t.Errorf("Message = %q, want both Exterior items", resp.Message)
	}
	if !strings.Contains(resp.Message, "1. Body Side Moulding") || !strings.Contains(resp.Message, "2. Door Visors") {
		t.Errorf("Message = %q, want numbered items", resp.Message)
	}
}

func TestSubtypeSelection_FiltersItems(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")
	env.turn(t, "s1", "Horizon")
	env.turn(t, "s1", "Interior")

	resp := env.turn(t, "s1", "Floor Mats")
	if resp.Screen != ScreenAccessories {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenAccessories)
	}
	if !strings.Contains(resp.Message, "All-Weather Floor Mats") {
		t.Errorf("Message = %q, want floor mats listed", resp.Message)
	}
	if strings.Contains(resp.Message, "Seat Covers") {
		t.Errorf("Message = %q, listing leaked another subcategory", resp.Message)
	}
}

func TestTypeSelection_StaleSessionExpires(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Accessories")
	env.turn(t, "s1", "Horizon")

	sess, release := env.sessions.Acquire("s1")
	sess.SelectedModel = nil
	release()

	resp := env.turn(t, "s1", "Interior")
	if resp.Message != "Session expired. Please start over." {
		t.Errorf("Message = %q, want the session-expired notice", resp.Message)
	}
}

func TestPartsFlow_ListsCategoriesAndParts(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Browse Parts")
	if resp.Screen != ScreenPartTypes {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenPartTypes)
	}
	if !hasOption(resp.Options, "Engine") || !hasOption(resp.Options, "Brakes") {
		t.Errorf("Options = %v, want parts categories", resp.Options)
	}

	resp = env.turn(t, "s1", "Brakes")
	if resp.Screen != ScreenParts {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenParts)
	}
	if !strings.Contains(resp.Message, "1. Front Brake Pads") {
		t.Errorf("Message = %q, want numbered parts", resp.Message)
	}
	if !strings.Contains(resp.Message, "prices vary by dealer") {
		t.Errorf("Message = %q, want the pricing note", resp.Message)
	}
}

func TestPartsFlow_EmptyCategory(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Parts")

	resp := env.turn(t, "s1", "Suspension")
	if !strings.Contains(resp.Message, "No parts available") {
		t.Errorf("Message = %q, want the empty listing notice", resp.Message)
	}

	// Nothing is armed for positional selection.
	resp = env.turn(t, "s1", "1")
	if resp.Screen == ScreenEnquiryConfirm {
		t.Error("a pick against an empty listing started an enquiry")
	}
}

func TestPartsFlow_InvalidCategoryReprompts(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Browse Parts")

	resp := env.turn(t, "s1", "Transmission")
	if resp.Screen != ScreenPartTypes {
		t.Errorf("Screen = %q, want %q re-shown", resp.Screen, ScreenPartTypes)
	}

	resp = env.turn(t, "s1", "Engine")
	if resp.Screen != ScreenParts {
		t.Errorf("Screen = %q, want %q after correction", resp.Screen, ScreenParts)
	}
}

func TestOffers_ListsPromotions(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Check Current Offers")
	if resp.Screen != ScreenOffers {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenOffers)
	}
	if !strings.Contains(resp.Message, "Monsoon Care Bundle") {
		t.Errorf("Message = %q, want the running offers", resp.Message)
	}
}

func TestProductSupport_StaticScreen(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Get Product Support")
	if resp.Screen != ScreenProductSupport {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenProductSupport)
	}
	if !strings.Contains(resp.Message, "12-month warranty") {
		t.Errorf("Message = %q, want the warranty summary", resp.Message)
	}
}

func TestLocationLookup_ListsDealersByState(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Find Dealers & Distributors")
	if resp.Screen != ScreenLocationLookup {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenLocationLookup)
	}
	if !hasOption(resp.Options, "Karnataka") {
		t.Errorf("Options = %v, want dealer states", resp.Options)
	}

	resp = env.turn(t, "s1", "Karnataka")
	if resp.Screen != ScreenDealersResult {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenDealersResult)
	}
	if !strings.Contains(resp.Message, "Arise Motors") || !strings.Contains(resp.Message, "Palace Wheels") {
		t.Errorf("Message = %q, want dealers across the state's cities", resp.Message)
	}
}

func TestLocationLookup_UnknownStateReprompts(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Find Dealers & Distributors")

	resp := env.turn(t, "s1", "Atlantis")
	if resp.Screen != ScreenLocationLookup {
		t.Errorf("Screen = %q, want %q re-shown", resp.Screen, ScreenLocationLookup)
	}

	resp = env.turn(t, "s1", "Maharashtra")
	if resp.Screen != ScreenDealersResult {
		t.Errorf("Screen = %q, want %q after correction", resp.Screen, ScreenDealersResult)
	}
}

func TestLocationLookup_StateWithNoDealers(t *testing.T) {
	env := newTestEnv(t)
	env.turn(t, "s1", "Find Dealers & Distributors")

	// Delhi has no covered cities.
	resp := env.turn(t, "s1", "Delhi")
	if !strings.Contains(resp.Message, "No dealers found in Delhi") {
		t.Errorf("Message = %q, want the empty notice", resp.Message)
	}
}

func TestFindDistributors_ListsAcrossStates(t *testing.T) {
	env := newTestEnv(t)

	resp := env.turn(t, "s1", "Find Distributors")
	if resp.Screen != ScreenDistributors {
		t.Fatalf("Screen = %q, want %q", resp.Screen, ScreenDistributors)
	}
	if !strings.Contains(resp.Message, "Southline Parts Co") {
		t.Errorf("Message = %q, want Karnataka distributors", resp.Message)
	}
	if !strings.Contains(resp.Message, "Western Parts Network") {
		t.Errorf("Message = %q, want Maharashtra distributors", resp.Message)
	}
}
