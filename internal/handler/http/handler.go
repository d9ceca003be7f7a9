package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	_ "github.com/aniladanir/board-sms-gateway/docs"
	"github.com/aniladanir/board-sms-gateway/internal/domain"
	messageRepo "github.com/aniladanir/board-sms-gateway/internal/repository/message"
	"github.com/aniladanir/board-sms-gateway/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestIDHeader = "X-Request-ID"

type Handler struct {
	gateway service.SmsGateway
	logger  *slog.Logger
	server  *http.Server
}

// @title Board SMS Gateway API
// @version 1.0
// @description Inbound SMS webhook that posts authorized messages to Pete's Board
// @host localhost:6060
// @BasePath /
func NewHttpHandler(addr string, svc service.SmsGateway, logger *slog.Logger) *Handler {
	h := &Handler{
		gateway: svc,
		logger:  logger,
	}

	// create router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	// register routes
	router.POST("/sms", h.receiveSms)
	router.GET("/audit", h.listAudit)
	router.GET("/messages", h.listBoardMessages)
	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// create http server
	h.server = &http.Server{
		Addr:    addr,
		Handler: router.Handler(),
	}

	return h
}

func (h *Handler) Run() error {
	return h.server.ListenAndServe()
}

func (h *Handler) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// ReceiveSms godoc
// @Summary Inbound SMS webhook
// @Description Authorizes an inbound SMS and posts it to the board. Always answers 200 with a TwiML message.
// @Tags SMS
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string false "sender phone number"
// @Param Body formData string false "message text"
// @Param MessageSid formData string false "gateway message id"
// @Success 200 {string} string "TwiML response"
// @Router /sms [post]
func (h *Handler) receiveSms(c *gin.Context) {
	outcome := h.gateway.Handle(c.Request.Context(), domain.InboundMessage{
		From:       c.PostForm("From"),
		Body:       c.PostForm("Body"),
		MessageSid: c.PostForm("MessageSid"),
	})
	c.Data(http.StatusOK, twimlContentType, twimlResponse(outcome.Reply))
}

// ListAudit godoc
// @Summary List sms audit records
// @Description Returns audit records, newest first
// @Tags Audit
// @Produce json
// @Param limit query int false "page size" default(50)
// @Param offset query int false "page offset" default(0)
// @Success 200 {array} domain.SmsAudit
// @Router /audit [get]
func (h *Handler) listAudit(c *gin.Context) {
	limit, offset := pageParams(c)
	audits, err := h.gateway.ListAudit(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list audit records", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit records"})
		return
	}
	if audits == nil {
		audits = []domain.SmsAudit{}
	}
	c.JSON(http.StatusOK, audits)
}

// ListBoardMessages godoc
// @Summary List board messages
// @Description Returns messages on Pete's Board, newest first
// @Tags Board
// @Produce json
// @Param limit query int false "page size" default(50)
// @Param offset query int false "page offset" default(0)
// @Success 200 {array} domain.BoardMessage
// @Router /messages [get]
func (h *Handler) listBoardMessages(c *gin.Context) {
	limit, offset := pageParams(c)
	msgs, err := h.gateway.ListBoardMessages(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list board messages", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list board messages"})
		return
	}
	if msgs == nil {
		msgs = []domain.BoardMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

// Health godoc
// @Summary Liveness probe
// @Tags Control
// @Success 200
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// requestLogger tags every request with an id and logs its status
func (h *Handler) requestLogger(c *gin.Context) {
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header(requestIDHeader, reqID)

	c.Next()

	h.logger.Info("request served",
		"requestId", reqID,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status())
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = parseInt(c.Query("limit"), messageRepo.DefaultListLimit)
	offset = parseInt(c.Query("offset"), 0)
	return messageRepo.NormalizePage(limit, offset)
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
