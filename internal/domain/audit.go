package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditStatus string

const (
	AuditAccepted AuditStatus = "accepted"
	AuditRejected AuditStatus = "rejected"
)

type AuditAction string

const (
	ActionPostedToBoard      AuditAction = "posted_to_board"
	ActionUnauthorizedNumber AuditAction = "unauthorized_number"
	ActionInvalidCodeword    AuditAction = "invalid_codeword"
	ActionEmptyMessage       AuditAction = "empty_message"
	// ActionDuplicateDelivery records a redelivered gateway message that was answered from the dedup cache.
	ActionDuplicateDelivery  AuditAction = "duplicate_delivery"
)

// SmsAudit is an append-only record of one inbound SMS attempt.
type SmsAudit struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	FromNumber  string      `gorm:"type:varchar(32);not null;index" json:"from_number"`
	MessageBody string      `gorm:"type:text;not null" json:"message_body"`
	Status      AuditStatus `gorm:"type:varchar(16);not null" json:"status"`
	ActionTaken AuditAction `gorm:"type:varchar(32);not null" json:"action_taken"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
}

func (SmsAudit) TableName() string { return "sms_audit" }

func (a *SmsAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
