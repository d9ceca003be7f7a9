package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/aniladanir/board-sms-gateway/internal/authorizer"
	"github.com/aniladanir/board-sms-gateway/internal/cache"
	"github.com/aniladanir/board-sms-gateway/internal/domain"
	messageRepo "github.com/aniladanir/board-sms-gateway/internal/repository/message"
)

const (
	DefaultDedupTTL = 24 * time.Hour

	logPreviewLen = 50
)

type SmsGateway interface {
	Handle(ctx context.Context, msg domain.InboundMessage) Outcome
	ListAudit(ctx context.Context, limit, offset int) ([]domain.SmsAudit, error)
	ListBoardMessages(ctx context.Context, limit, offset int) ([]domain.BoardMessage, error)
}

// PersistResult reports how a single best-effort write went. A zero value means
// the write was not attempted.
type PersistResult struct {
	Attempted bool
	Err       error
}

func (r PersistResult) OK() bool {
	return r.Attempted && r.Err == nil
}

// Outcome is everything Handle decided and did for one inbound message.
type Outcome struct {
	Decision  authorizer.Decision
	Reply     string
	Duplicate bool
	Board     PersistResult
	Audit     PersistResult
}

type service struct {
	messageRepo messageRepo.Repository
	authorizer  *authorizer.Authorizer
	dedup       cache.Cache
	dedupTTL    time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewSmsGatewayService creates the inbound sms service. dedup may be nil, in which
// case redelivered messages are processed again.
func NewSmsGatewayService(messageRepo messageRepo.Repository, auth *authorizer.Authorizer, dedup cache.Cache, dedupTTL time.Duration, logger *slog.Logger) SmsGateway {
	if dedupTTL <= 0 {
		dedupTTL = DefaultDedupTTL
	}
	return &service{
		messageRepo: messageRepo,
		authorizer:  auth,
		dedup:       dedup,
		dedupTTL:    dedupTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Handle authorizes msg, posts it to the board when accepted and records an audit
// entry. Persistence failures are logged and never change the reply.
func (s *service) Handle(ctx context.Context, msg domain.InboundMessage) Outcome {
	msgLogger := s.logger.With(slog.String("from", msg.From), slog.String("messageSid", msg.MessageSid))
	msgLogger.Info("sms received", "preview", preview(msg.Body))

	decision := s.authorizer.Authorize(msg.From, msg.Body)
	outcome := Outcome{Decision: decision, Reply: decision.Reply}

	if reply, dup := s.claim(ctx, msgLogger, msg.MessageSid, decision.Reply); dup {
		msgLogger.Info("duplicate delivery, replaying reply")
		outcome.Reply = reply
		outcome.Duplicate = true
		outcome.Audit = s.recordAudit(ctx, msgLogger, msg, domain.AuditRejected, domain.ActionDuplicateDelivery)
		return outcome
	}

	if decision.Accepted() {
		outcome.Board = s.persist(func() error {
			return s.messageRepo.InsertBoardMessage(ctx, domain.NewSmsBoardMessage(msg.From, decision.Payload))
		})
		if !outcome.Board.OK() {
			msgLogger.Error("failed to post to board", "error", outcome.Board.Err.Error())
		}
	}

	outcome.Audit = s.recordAudit(ctx, msgLogger, msg, decision.Status, decision.Action)

	msgLogger.Info("sms processed", "status", string(decision.Status), "action", string(decision.Action))

	return outcome
}

func (s *service) ListAudit(ctx context.Context, limit, offset int) ([]domain.SmsAudit, error) {
	return s.messageRepo.ListAudit(ctx, limit, offset)
}

func (s *service) ListBoardMessages(ctx context.Context, limit, offset int) ([]domain.BoardMessage, error) {
	return s.messageRepo.ListBoardMessages(ctx, limit, offset)
}

// claim records the reply for a gateway message id. It returns the previously
// stored reply and true when the id was already processed. Cache errors fail open.
// The reply is claimed before any write.
func (s *service) claim(ctx context.Context, logger *slog.Logger, messageSid, reply string) (string, bool) {
	if s.dedup == nil || messageSid == "" {
		return "", false
	}

	key := dedupKey(messageSid)
	claimed, err := s.dedup.SetNX(ctx, key, reply, s.dedupTTL)
	if err != nil {
		logger.Warn("dedup cache unavailable", "error", err.Error())
		return "", false
	}
	if claimed {
		return "", false
	}

	stored, err := s.dedup.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("failed to read stored reply", "error", err.Error())
		}
		return reply, true
	}
	return stored, true
}

func (s *service) recordAudit(ctx context.Context, logger *slog.Logger, msg domain.InboundMessage, status domain.AuditStatus, action domain.AuditAction) PersistResult {
	res := s.persist(func() error {
		return s.messageRepo.InsertAudit(ctx, &domain.SmsAudit{
			FromNumber:  msg.From,
			MessageBody: msg.Body,
			Status:      status,
			ActionTaken: action,
			CreatedAt:   s.now().UTC(),
		})
	})
	if !res.OK() {
		logger.Error("failed to log sms audit", "action", string(action), "error", res.Err.Error())
	}
	return res
}

func (s *service) persist(write func() error) PersistResult {
	return PersistResult{Attempted: true, Err: write()}
}

func dedupKey(messageSid string) string {
	return "sms_sid:" + messageSid
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= logPreviewLen {
		return body
	}
	return string([]rune(body)[:logPreviewLen]) + "..."
}
