// Package rest stores audit records and board messages through the hosted data
// store's PostgREST-style HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aniladanir/board-sms-gateway/internal/domain"
	repository "github.com/aniladanir/board-sms-gateway/internal/repository/message"
	"github.com/google/uuid"
)

const (
	auditTable = "sms_audit"
	boardTable = "messages"
)

var _ repository.Repository = (*Client)(nil)

type Client struct {
	baseURL    string
	credential string
	httpClient *http.Client
}

func NewClient(baseURL, credential string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		credential: credential,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StatusError is returned when the data store answers with a non-2xx status.
type StatusError struct {
	Table      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rest: %s: unexpected status code %d body=%q", e.Table, e.StatusCode, e.Body)
}

type auditRow struct {
	FromNumber  string    `json:"from_number"`
	MessageBody string    `json:"message_body"`
	Status      string    `json:"status"`
	ActionTaken string    `json:"action_taken"`
	CreatedAt   time.Time `json:"created_at"`
}

type boardRow struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

type auditListRow struct {
	ID          rowID   `json:"id"`
	FromNumber  string  `json:"from_number"`
	MessageBody string  `json:"message_body"`
	Status      string  `json:"status"`
	ActionTaken string  `json:"action_taken"`
	CreatedAt   rowTime `json:"created_at"`
}

type boardListRow struct {
	ID        rowID   `json:"id"`
	Sender    string  `json:"sender"`
	Content   string  `json:"content"`
	CreatedAt rowTime `json:"created_at"`
}

func (c *Client) InsertAudit(ctx context.Context, audit *domain.SmsAudit) error {
	return c.insert(ctx, auditTable, auditRow{
		FromNumber:  audit.FromNumber,
		MessageBody: audit.MessageBody,
		Status:      string(audit.Status),
		ActionTaken: string(audit.ActionTaken),
		CreatedAt:   audit.CreatedAt.UTC(),
	})
}

// InsertBoardMessage leaves id and created_at to the data store.
func (c *Client) InsertBoardMessage(ctx context.Context, msg *domain.BoardMessage) error {
	return c.insert(ctx, boardTable, boardRow{
		Sender:  msg.Sender,
		Content: msg.Content,
	})
}

func (c *Client) ListAudit(ctx context.Context, limit, offset int) ([]domain.SmsAudit, error) {
	var rows []auditListRow
	if err := c.list(ctx, auditTable, limit, offset, &rows); err != nil {
		return nil, err
	}
	audits := make([]domain.SmsAudit, 0, len(rows))
	for _, r := range rows {
		audits = append(audits, domain.SmsAudit{
			ID:          string(r.ID),
			FromNumber:  r.FromNumber,
			MessageBody: r.MessageBody,
			Status:      domain.AuditStatus(r.Status),
			ActionTaken: domain.AuditAction(r.ActionTaken),
			CreatedAt:   time.Time(r.CreatedAt),
		})
	}
	return audits, nil
}

func (c *Client) ListBoardMessages(ctx context.Context, limit, offset int) ([]domain.BoardMessage, error) {
	var rows []boardListRow
	if err := c.list(ctx, boardTable, limit, offset, &rows); err != nil {
		return nil, err
	}
	msgs := make([]domain.BoardMessage, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, domain.BoardMessage{
			ID:        string(r.ID),
			Sender:    r.Sender,
			Content:   r.Content,
			CreatedAt: time.Time(r.CreatedAt),
		})
	}
	return msgs, nil
}

func (c *Client) insert(ctx context.Context, table string, row any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("rest: %s: encode row: %w", table, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(table), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s: %w", table, err)
	}
	defer resp.Body.Close()

	return checkStatus(table, resp)
}

func (c *Client) list(ctx context.Context, table string, limit, offset int, out any) error {
	limit, offset = repository.NormalizePage(limit, offset)

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc,id.desc")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(table)+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s: %w", table, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(table, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: %s: decode rows: %w", table, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.credential)
	req.Header.Set("Authorization", "Bearer "+c.credential)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + table
}

func checkStatus(table string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &StatusError{Table: table, StatusCode: resp.StatusCode, Body: string(body)}
}
