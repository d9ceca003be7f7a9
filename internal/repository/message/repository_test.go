package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/aniladanir/board-sms-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "board.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SmsAudit{}, &domain.BoardMessage{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestInsertAudit(t *testing.T) {
	r := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	audit := &domain.SmsAudit{
		FromNumber:  "+15551234567",
		MessageBody: "BEDFORD remind me to call the bank",
		Status:      domain.AuditAccepted,
		ActionTaken: domain.ActionPostedToBoard,
		CreatedAt:   time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.InsertAudit(ctx, audit))
	assert.NotEmpty(t, audit.ID)

	got, err := r.ListAudit(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, audit.FromNumber, got[0].FromNumber)
	assert.Equal(t, audit.MessageBody, got[0].MessageBody)
	assert.Equal(t, domain.AuditAccepted, got[0].Status)
	assert.Equal(t, domain.ActionPostedToBoard, got[0].ActionTaken)
}

func TestInsertBoardMessage_SetsCreatedAt(t *testing.T) {
	r := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	msg := domain.NewSmsBoardMessage("+15551234567", "hello")
	require.NoError(t, r.InsertBoardMessage(ctx, msg))
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	got, err := r.ListBoardMessages(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "user", got[0].Sender)
	assert.Equal(t, "[SMS from +15551234567] hello", got[0].Content)
}

func TestListAudit_NewestFirstWithPaging(t *testing.T) {
	r := NewMessageRepository(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, r.InsertAudit(ctx, &domain.SmsAudit{
			FromNumber:  fmt.Sprintf("+1555000000%d", i),
			MessageBody: "hello",
			Status:      domain.AuditRejected,
			ActionTaken: domain.ActionInvalidCodeword,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := r.ListAudit(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "+15550000003", page[0].FromNumber)
	assert.Equal(t, "+15550000002", page[1].FromNumber)
}

func TestNormalizePage(t *testing.T) {
	l, o := NormalizePage(0, -3)
	assert.Equal(t, DefaultListLimit, l)
	assert.Equal(t, 0, o)

	l, o = NormalizePage(10, 5)
	assert.Equal(t, 10, l)
	assert.Equal(t, 5, o)
}
