package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	"github.com/chemgpt/gateway/internal/routing"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

// Router answers a chat question with a tool result.
type Router interface {
	Dispatch(ctx context.Context, question string) (*routing.ToolResult, error)
}

// ChatMetrics counts classified chat questions.
type ChatMetrics interface {
	ChatRequest(category string)
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatHandler serves the intent-routed chat endpoint.
type ChatHandler struct {
	router  Router
	metrics ChatMetrics
	logger  logging.Logger
}

// NewChatHandler builds a ChatHandler. metrics may be nil.
func NewChatHandler(router Router, metrics ChatMetrics, logger logging.Logger) *ChatHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ChatHandler{
		router:  router,
		metrics: metrics,
		logger:  logger.Named("chat"),
	}
}

// Chat handles POST /chat. The question is classified, routed to its
// backend and the tool result returned. A blank question is a 400; a
// failed fallback is the only dispatch error that reaches the client.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "question is required")
		return
	}

	if h.metrics != nil {
		h.metrics.ChatRequest(routing.Classify(req.Question).String())
	}

	result, err := h.router.Dispatch(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("dispatch failed", logging.Err(err))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
