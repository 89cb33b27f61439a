// Package chatlog records conversation turns. Recording is fire-and-forget:
// a failed write is logged and never surfaced to the user.
package chatlog

import (
	"fmt"
	"log"

	"github.com/motorline/partsbot/internal/models"
	"gorm.io/gorm"
)

// Recorder appends conversation turns to the chat_messages table.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a Recorder.
func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if db == nil {
		return nil, fmt.Errorf("chatlog: recorder: db is required")
	}
	return &Recorder{db: db}, nil
}

// Record appends one turn. lookup names the catalog/directory call that
// produced the response, or is empty.
func (r *Recorder) Record(sessionID, userText, botText, lookup string) {
	row := models.ChatMessage{
		SessionID:   sessionID,
		UserMessage: userText,
		BotResponse: botText,
		Lookup:      lookup,
	}
	if err := r.db.Create(&row).Error; err != nil {
		log.Printf("chatlog: record turn for %s: %v", sessionID, err)
	}
}
