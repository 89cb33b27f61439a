// Package enquiry holds the purchase-enquiry form, its persistence store,
// and reference-number issuance.
package enquiry

import "time"

// Item types carried by a Form.
const (
	ItemAccessory = "accessory"
	ItemPart      = "part"
)

// DuplicateWindow is the lookback window for the duplicate-enquiry guard: a
// second enquiry with the same email, mobile and item inside this window
// requires explicit confirmation.
const DuplicateWindow = 24 * time.Hour

// Form is the in-flight enquiry being assembled by the dialog wizard. It is
// mapped to models.Enquiry on submission.
type Form struct {
	ItemType string // ItemAccessory or ItemPart
	ItemID   string
	ItemName string

	// Accessory enquiries carry the vehicle model.
	ModelID   string
	ModelName string

	ContactType    string // "dealer" or "distributor"
	ContactID      string
	ContactName    string
	ContactDetails string

	StateID   string
	StateName string
	CityID    string
	CityName  string

	CustomerName string
	Email        string
	Mobile       string
	Query        string

	ReferenceNumber string
	Status          string
	CreatedAt       time.Time
}

// Complete reports whether the form has everything submission requires.
func (f *Form) Complete() bool {
	if f.ItemID == "" || f.ItemName == "" || f.ContactName == "" ||
		f.CustomerName == "" || f.Email == "" || f.Mobile == "" {
		return false
	}
	if f.ItemType == ItemAccessory {
		return f.ModelName != ""
	}
	return true
}
