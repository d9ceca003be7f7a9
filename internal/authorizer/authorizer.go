// Package authorizer decides whether an inbound SMS may reach the board.
package authorizer

import (
	"errors"
	"strings"
	"unicode"

	"github.com/aniladanir/board-sms-gateway/internal/domain"
)

const (
	ReplyUnauthorizedNumber = "This number is not authorized to contact Pete."
	ReplyInvalidCodeword    = "Authentication required. Start your message with the code word."
	ReplyEmptyMessage       = "Code accepted. What can I help you with?"
	ReplyPostedToBoard      = "Got it. Message posted to Pete's Board."
)

var ErrInvalidCodeword = errors.New("codeword must be a single non-empty word")

// Decision is the outcome of authorizing one message. Payload is only set
// when the message should be posted to the board.
type Decision struct {
	Status  domain.AuditStatus
	Action  domain.AuditAction
	Reply   string
	Payload string
}

// Accepted reports whether the payload should be forwarded.
func (d Decision) Accepted() bool {
	return d.Status == domain.AuditAccepted
}

type Authorizer struct {
	codeword string
	allowed  map[string]struct{}
}

// New creates an authorizer. An empty allowedSenders list lets every sender through
// the allowlist check.
func New(codeword string, allowedSenders []string) (*Authorizer, error) {
	if fields := strings.Fields(codeword); len(fields) != 1 || fields[0] != codeword {
		return nil, ErrInvalidCodeword
	}

	allowed := make(map[string]struct{}, len(allowedSenders))
	for _, s := range allowedSenders {
		if s = strings.TrimSpace(s); s != "" {
			allowed[s] = struct{}{}
		}
	}

	return &Authorizer{
		codeword: strings.ToUpper(codeword),
		allowed:  allowed,
	}, nil
}

// Authorize runs the allowlist, codeword and payload checks in order and stops at
// the first one that fails.
func (a *Authorizer) Authorize(sender, body string) Decision {
	if len(a.allowed) > 0 {
		if _, ok := a.allowed[sender]; !ok {
			return Decision{
				Status: domain.AuditRejected,
				Action: domain.ActionUnauthorizedNumber,
				Reply:  ReplyUnauthorizedNumber,
			}
		}
	}

	words := strings.FieldsFunc(body, isSpace)
	if len(words) == 0 || strings.ToUpper(words[0]) != a.codeword {
		return Decision{
			Status: domain.AuditRejected,
			Action: domain.ActionInvalidCodeword,
			Reply:  ReplyInvalidCodeword,
		}
	}

	payload := strings.Join(words[1:], " ")
	if payload == "" {
		return Decision{
			Status: domain.AuditRejected,
			Action: domain.ActionEmptyMessage,
			Reply:  ReplyEmptyMessage,
		}
	}

	return Decision{
		Status:  domain.AuditAccepted,
		Action:  domain.ActionPostedToBoard,
		Reply:   ReplyPostedToBoard,
		Payload: payload,
	}
}

// isSpace treats U+FEFF as whitespace in addition to unicode.IsSpace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
