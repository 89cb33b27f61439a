package models

import "time"

// Enquiry is a submitted purchase enquiry tying a customer, a catalog item
// and a chosen contact point together. The composite idx_guard index backs
// the duplicate-enquiry window check.
type Enquiry struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	ReferenceNumber string `gorm:"size:32;uniqueIndex;not null"`
	SessionID       string `gorm:"size:64;index"`

	ItemType string `gorm:"size:16;not null;index:idx_guard"` // "accessory" or "part"
	ItemID   string `gorm:"size:32;not null;index:idx_guard"`
	ItemName string `gorm:"size:256;not null"`

	// Accessory enquiries also carry the vehicle model.
	ModelID   string `gorm:"size:32"`
	ModelName string `gorm:"size:64"`

	ContactType    string `gorm:"size:16;not null"` // "dealer" or "distributor"
	ContactID      string `gorm:"size:32"`
	ContactName    string `gorm:"size:256"`
	ContactDetails string `gorm:"type:text"`

	StateID   string `gorm:"size:32"`
	StateName string `gorm:"size:64"`
	CityID    string `gorm:"size:32"`
	CityName  string `gorm:"size:64"`

	CustomerName string `gorm:"size:128;not null"`
	Email        string `gorm:"size:128;not null;index:idx_guard"`
	Mobile       string `gorm:"size:32;not null;index:idx_guard"`
	Query        string `gorm:"type:text"`

	Status    string `gorm:"size:16;default:submitted"`
	CreatedAt time.Time `gorm:"index"`
}

// ChatMessage is one logged conversation turn: the user's text, the bot's
// reply, and the catalog/directory lookup that produced it, if any.
type ChatMessage struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	SessionID   string `gorm:"size:64;not null;index"`
	UserMessage string `gorm:"type:text"`
	BotResponse string `gorm:"type:text"`
	Lookup      string `gorm:"size:64"`
	CreatedAt   time.Time
}
