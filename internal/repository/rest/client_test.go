package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aniladanir/board-sms-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAudit_SendsRowAndCredentials(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/sms_audit", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", "service-key", time.Second)
	err := c.InsertAudit(context.Background(), &domain.SmsAudit{
		FromNumber:  "+15551234567",
		MessageBody: "hello there",
		Status:      domain.AuditRejected,
		ActionTaken: domain.ActionInvalidCodeword,
		CreatedAt:   time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"from_number":  "+15551234567",
		"message_body": "hello there",
		"status":       "rejected",
		"action_taken": "invalid_codeword",
		"created_at":   "2026-10-01T12:00:00Z",
	}, got)
}

func TestInsertBoardMessage_SendsSenderAndContentOnly(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/messages", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "service-key", time.Second)
	require.NoError(t, c.InsertBoardMessage(context.Background(), domain.NewSmsBoardMessage("+15551234567", "remind me")))

	assert.Equal(t, map[string]any{
		"sender":  "user",
		"content": "[SMS from +15551234567] remind me",
	}, got)
}

func TestInsert_Non2xxIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "bad-key", time.Second)
	err := c.InsertBoardMessage(context.Background(), domain.NewSmsBoardMessage("+1", "x"))
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "messages", statusErr.Table)
	assert.Contains(t, statusErr.Body, "permission denied")
}

func TestInsert_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "key", time.Second)
	assert.Error(t, c.InsertAudit(context.Background(), &domain.SmsAudit{}))
}

func TestListAudit_QueryAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/sms_audit", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("select"))
		assert.Equal(t, "created_at.desc,id.desc", q.Get("order"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "0", q.Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"from_number":"+1","message_body":"BEDFORD hi","status":"accepted","action_taken":"posted_to_board","created_at":"2026-10-01T12:00:00Z"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "key", time.Second)
	audits, err := c.ListAudit(context.Background(), -1, -1)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, "7", audits[0].ID)
	assert.Equal(t, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), audits[0].CreatedAt)
	assert.Equal(t, domain.AuditAccepted, audits[0].Status)
	assert.Equal(t, domain.ActionPostedToBoard, audits[0].ActionTaken)
}

func TestListBoardMessages_UUIDRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/messages", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"3f2a6c1e-9b1d-4c1f-8f0e-2a7d9c4b5e61","sender":"user","content":"[SMS from +1] hi","created_at":"2026-10-01T12:00:00+00:00"},
			{"id":"0b7e2d44-51c2-4f7a-9a35-6de0c8f1a902","sender":"assistant","content":"on it","created_at":"2026-10-01T11:59:30.123456"}
		]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "key", time.Second)
	msgs, err := c.ListBoardMessages(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "3f2a6c1e-9b1d-4c1f-8f0e-2a7d9c4b5e61", msgs[0].ID)
	assert.Equal(t, "user", msgs[0].Sender)
	assert.Equal(t, "[SMS from +1] hi", msgs[0].Content)
	assert.Equal(t, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), msgs[0].CreatedAt)

	assert.Equal(t, "0b7e2d44-51c2-4f7a-9a35-6de0c8f1a902", msgs[1].ID)
	assert.Equal(t, time.Date(2026, 10, 1, 11, 59, 30, 123456000, time.UTC), msgs[1].CreatedAt)
}

func TestListAudit_UUIDRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"9d1c0f7a-2b3e-4a5d-8c6f-1e2d3c4b5a69","from_number":"+15551234567","message_body":"hello","status":"rejected","action_taken":"invalid_codeword","created_at":"2026-10-01T12:00:00.5+00:00"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "key", time.Second)
	audits, err := c.ListAudit(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, "9d1c0f7a-2b3e-4a5d-8c6f-1e2d3c4b5a69", audits[0].ID)
	assert.Equal(t, domain.ActionInvalidCodeword, audits[0].ActionTaken)
}

func TestListBoardMessages_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "key", time.Second)
	msgs, err := c.ListBoardMessages(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestListBoardMessages_BadTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a","sender":"user","content":"x","created_at":"yesterday"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "key", time.Second)
	_, err := c.ListBoardMessages(context.Background(), 0, 0)
	assert.ErrorContains(t, err, "decode rows")
}
