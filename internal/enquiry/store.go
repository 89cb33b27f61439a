package enquiry

import (
	"fmt"
	"time"

	"github.com/motorline/partsbot/internal/models"
	"gorm.io/gorm"
)

// Store persists enquiries and answers the duplicate-guard query.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("enquiry: store: db is required")
	}
	return &Store{db: db}, nil
}

// Exists reports whether an enquiry with the same email, mobile and item was
// recorded at or after since.
func (s *Store) Exists(email, mobile, itemID, itemType string, since time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Enquiry{}).
		Where("email = ? AND mobile = ? AND item_id = ? AND item_type = ? AND created_at >= ?",
			email, mobile, itemID, itemType, since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("enquiry: duplicate check: %w", err)
	}
	return count > 0, nil
}

// Save persists a completed form. The caller assigns the reference number;
// Save fills CreatedAt and Status if unset.
func (s *Store) Save(form *Form, sessionID string) error {
	if form.ReferenceNumber == "" {
		return fmt.Errorf("enquiry: save: reference number is required")
	}
	if form.CreatedAt.IsZero() {
		form.CreatedAt = time.Now()
	}
	if form.Status == "" {
		form.Status = "submitted"
	}
	row := toModel(form, sessionID)
	if err := s.db.Create(row).Error; err != nil {
		return fmt.Errorf("enquiry: save %s: %w", form.ReferenceNumber, err)
	}
	return nil
}

// FindByReference looks up a submitted enquiry by its reference number.
// Returns (nil, nil) when no enquiry matches.
func (s *Store) FindByReference(ref string) (*Form, error) {
	var row models.Enquiry
	err := s.db.Where("reference_number = ?", ref).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enquiry: find %s: %w", ref, err)
	}
	return fromModel(&row), nil
}

func toModel(f *Form, sessionID string) *models.Enquiry {
	return &models.Enquiry{
		ReferenceNumber: f.ReferenceNumber,
		SessionID:       sessionID,
		ItemType:        f.ItemType,
		ItemID:          f.ItemID,
		ItemName:        f.ItemName,
		ModelID:         f.ModelID,
		ModelName:       f.ModelName,
		ContactType:     f.ContactType,
		ContactID:       f.ContactID,
		ContactName:     f.ContactName,
		ContactDetails:  f.ContactDetails,
		StateID:         f.StateID,
		StateName:       f.StateName,
		CityID:          f.CityID,
		CityName:        f.CityName,
		CustomerName:    f.CustomerName,
		Email:           f.Email,
		Mobile:          f.Mobile,
		Query:           f.Query,
		Status:          f.Status,
		CreatedAt:       f.CreatedAt,
	}
}

func fromModel(m *models.Enquiry) *Form {
	return &Form{
		ItemType:        m.ItemType,
		ItemID:          m.ItemID,
		ItemName:        m.ItemName,
		ModelID:         m.ModelID,
		ModelName:       m.ModelName,
		ContactType:     m.ContactType,
		ContactID:       m.ContactID,
		ContactName:     m.ContactName,
		ContactDetails:  m.ContactDetails,
		StateID:         m.StateID,
		StateName:       m.StateName,
		CityID:          m.CityID,
		CityName:        m.CityName,
		CustomerName:    m.CustomerName,
		Email:           m.Email,
		Mobile:          m.Mobile,
		Query:           m.Query,
		ReferenceNumber: m.ReferenceNumber,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
	}
}
