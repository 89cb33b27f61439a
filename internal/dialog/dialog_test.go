package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/motorline/partsbot/internal/catalog"
	"github.com/motorline/partsbot/internal/enquiry"
	"github.com/motorline/partsbot/internal/locations"
	"github.com/motorline/partsbot/internal/session"
)

// fakeEnquiries is an in-memory EnquiryStore with failure injection.
type fakeEnquiries struct {
	saved      map[string]*enquiry.Form
	existsHit  bool
	failSave   bool
	saveCalls  int
	lastFormID string
}

func newFakeEnquiries() *fakeEnquiries {
	return &fakeEnquiries{saved: make(map[string]*enquiry.Form)}
}

func (f *fakeEnquiries) Exists(email, mobile, itemID, itemType string, since time.Time) (bool, error) {
	return f.existsHit, nil
}

func (f *fakeEnquiries) Save(form *enquiry.Form, sessionID string) error {
	f.saveCalls++
	if f.failSave {
		return errors.New("store unavailable")
	}
	copied := *form
	if copied.Status == "" {
		copied.Status = "submitted"
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	f.saved[form.ReferenceNumber] = &copied
	f.lastFormID = form.ReferenceNumber
	return nil
}

func (f *fakeEnquiries) FindByReference(ref string) (*enquiry.Form, error) {
	return f.saved[ref], nil
}

// fakeResponder answers every free-form question with a canned string.
type fakeResponder struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeResponder) Answer(_ context.Context, _, userText string) (string, error) {
	f.asked = append(f.asked, userText)
	return f.answer, f.err
}

// fakeRecorder captures logged turns.
type fakeRecorder struct {
	turns []string
}

func (f *fakeRecorder) Record(sessionID, userText, botText, lookup string) {
	f.turns = append(f.turns, userText)
}

var testVehicles = []Vehicle{
	{ID: 1, Name: "Horizon"},
	{ID: 2, Name: "Summit"},
	{ID: 3, Name: "Ridge"},
	{ID: 4, Name: "Crest"},
}

type testEnv struct {
	d         *Dispatcher
	sessions  *session.Store
	enquiries *fakeEnquiries
	recorder  *fakeRecorder
	responder *fakeResponder
}

// newTestEnv wires a dispatcher over the static fixtures and the in-memory
// enquiry fake.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		sessions:  session.NewStore(),
		enquiries: newFakeEnquiries(),
		recorder:  &fakeRecorder{},
		responder: &fakeResponder{answer: "canned answer"},
	}
	d, err := New(Opts{
		Sessions:  env.sessions,
		Catalog:   catalog.NewStatic(),
		Locations: locations.NewStatic(),
		Enquiries: env.enquiries,
		Recorder:  env.recorder,
		Fallback:  env.responder,
		Vehicles:  testVehicles,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	env.d = d
	return env
}

func (e *testEnv) turn(t *testing.T, sessionID, msg string) Response {
	t.Helper()
	return e.d.Handle(context.Background(), sessionID, msg)
}

// walkToAccessories drives a session from greeting to the Horizon Exterior
// accessory listing: two items, positional selection armed.
func (e *testEnv) walkToAccessories(t *testing.T, sessionID string) {
	t.Helper()
	e.turn(t, sessionID, "hello")
	e.turn(t, sessionID, "Browse Accessories")
	e.turn(t, sessionID, "Horizon")
	resp := e.turn(t, sessionID, "Exterior")
	if resp.Screen != ScreenAccessories {
		t.Fatalf("walk: Screen = %q, want %q", resp.Screen, ScreenAccessories)
	}
}

// walkToContactDetails continues from the listing through item pick,
// confirmation and the dealer location flow to the contact-details prompt.
func (e *testEnv) walkToContactDetails(t *testing.T, sessionID string) {
	t.Helper()
	e.walkToAccessories(t, sessionID)
	e.turn(t, sessionID, "2")
	e.turn(t, sessionID, "continue")
	e.turn(t, sessionID, "dealer")
	e.turn(t, sessionID, "Karnataka")
	e.turn(t, sessionID, "Bengaluru")
	resp := e.turn(t, sessionID, "5001")
	if resp.Screen != ScreenContactDetails {
		t.Fatalf("walk: Screen = %q, want %q", resp.Screen, ScreenContactDetails)
	}
}

func hasButton(buttons []Button, id string) bool {
	for _, b := range buttons {
		if b.ID == id {
			return true
		}
	}
	return false
}

func hasOption(options []string, label string) bool {
	for _, o := range options {
		if o == label {
			return true
		}
	}
	return false
}
