package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemgpt/gateway/internal/routing"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

type stubRouter struct {
	question string
	result   *routing.ToolResult
	err      error
}

func (s *stubRouter) Dispatch(_ context.Context, question string) (*routing.ToolResult, error) {
	s.question = question
	return s.result, s.err
}

type stubChatMetrics struct {
	categories []string
}

func (s *stubChatMetrics) ChatRequest(category string) {
	s.categories = append(s.categories, category)
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatSuccess(t *testing.T) {
	router := &stubRouter{result: &routing.ToolResult{
		Type:   "spectro",
		Answer: json.RawMessage(`{"peaks":[254]}`),
		Tool:   routing.ToolSpectro,
	}}
	metrics := &stubChatMetrics{}
	h := NewChatHandler(router, metrics, nil)

	rec := postChat(t, h, `{"question": "UV spectrum of aspirin"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"type":"spectro","answer":{"peaks":[254]},"tool":"ChemGPT Spectro"}`,
		rec.Body.String())
	assert.Equal(t, "UV spectrum of aspirin", router.question)
	assert.Equal(t, []string{"spectro"}, metrics.categories)
}

func TestChatInvalidJSON(t *testing.T) {
	h := NewChatHandler(&stubRouter{}, nil, nil)

	rec := postChat(t, h, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.CodeBadRequest), resp.Code)
}

func TestChatBlankQuestion(t *testing.T) {
	router := &stubRouter{}
	h := NewChatHandler(router, nil, nil)

	for _, body := range []string{`{}`, `{"question": ""}`, `{"question": "   "}`} {
		rec := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
	assert.Empty(t, router.question)
}

func TestChatFallbackFailure(t *testing.T) {
	router := &stubRouter{
		err: apperrors.New(apperrors.CodeFallbackFailure, "completion fallback failed"),
	}
	h := NewChatHandler(router, nil, nil)

	rec := postChat(t, h, `{"question": "tell me about caffeine"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.CodeFallbackFailure), resp.Code)
}

func TestChatInternalErrorMasked(t *testing.T) {
	router := &stubRouter{
		err: apperrors.New(apperrors.CodeInternal, "nil pointer in dispatch"),
	}
	h := NewChatHandler(router, nil, nil)

	rec := postChat(t, h, `{"question": "tell me about caffeine"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "nil pointer")
}
