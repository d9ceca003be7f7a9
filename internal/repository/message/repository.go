package repository

import (
	"context"

	"github.com/aniladanir/board-sms-gateway/internal/domain"
	"gorm.io/gorm"
)

const DefaultListLimit = 50

// Repository persists audit records and board messages. Both are write-once.
type Repository interface {
	InsertAudit(ctx context.Context, audit *domain.SmsAudit) error
	InsertBoardMessage(ctx context.Context, msg *domain.BoardMessage) error
	ListAudit(ctx context.Context, limit, offset int) ([]domain.SmsAudit, error)
	ListBoardMessages(ctx context.Context, limit, offset int) ([]domain.BoardMessage, error)
}

type repo struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

// InsertAudit appends an audit record
func (r *repo) InsertAudit(ctx context.Context, audit *domain.SmsAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

// InsertBoardMessage appends a message to the board
func (r *repo) InsertBoardMessage(ctx context.Context, msg *domain.BoardMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListAudit returns audit records, newest first
func (r *repo) ListAudit(ctx context.Context, limit, offset int) ([]domain.SmsAudit, error) {
	var audits []domain.SmsAudit
	limit, offset = NormalizePage(limit, offset)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&audits).Error
	return audits, err
}

// ListBoardMessages returns board messages, newest first
func (r *repo) ListBoardMessages(ctx context.Context, limit, offset int) ([]domain.BoardMessage, error) {
	var msgs []domain.BoardMessage
	limit, offset = NormalizePage(limit, offset)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

// NormalizePage falls back to the default limit and a zero offset for out of range values.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
