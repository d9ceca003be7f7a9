package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardSenderUser marks a board message as submitted by a human rather than the assistant.
const BoardSenderUser = "user"

// BoardMessage is a single entry on Pete's Board.
type BoardMessage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Sender    string    `gorm:"type:varchar(16);not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (BoardMessage) TableName() string { return "messages" }

func (m *BoardMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// NewSmsBoardMessage tags payload with the phone number it came from
func NewSmsBoardMessage(from, payload string) *BoardMessage {
	return &BoardMessage{
		Sender:  BoardSenderUser,
		Content: fmt.Sprintf("[SMS from %s] %s", from, payload),
	}
}

// InboundMessage is what the telephony gateway posts for every received SMS.
type InboundMessage struct {
	From       string
	Body       string
	MessageSid string
}
