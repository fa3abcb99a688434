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

	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

type stubProxyBackend struct {
	param string
	resp  json.RawMessage
	err   error
}

func (s *stubProxyBackend) Extract(_ context.Context, text string) (json.RawMessage, error) {
	s.param = text
	return s.resp, s.err
}

func (s *stubProxyBackend) Spectroscopy(_ context.Context, molecule string) (json.RawMessage, error) {
	s.param = molecule
	return s.resp, s.err
}

func (s *stubProxyBackend) Retrosynthesis(_ context.Context, smiles string) (json.RawMessage, error) {
	s.param = smiles
	return s.resp, s.err
}

func post(t *testing.T, handle http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func TestProxyRelaysResponses(t *testing.T) {
	backend := &stubProxyBackend{resp: json.RawMessage(`{"routes": []}`)}
	h := NewProxyHandler(backend, backend, backend, nil)

	tests := []struct {
		name      string
		handle    http.HandlerFunc
		path      string
		body      string
		wantParam string
	}{
		{"extract", h.Extract, "/extract", `{"text": "an abstract"}`, "an abstract"},
		{"spectro", h.Spectro, "/spectro", `{"molecule": "aspirin"}`, "aspirin"},
		{"retro", h.Retro, "/retro", `{"smiles": "c1ccccc1"}`, "c1ccccc1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, tt.handle, tt.path, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"routes": []}`, rec.Body.String())
			assert.Equal(t, tt.wantParam, backend.param)
		})
	}
}

func TestProxyValidatesBody(t *testing.T) {
	backend := &stubProxyBackend{resp: json.RawMessage(`{}`)}
	h := NewProxyHandler(backend, backend, backend, nil)

	tests := []struct {
		name   string
		handle http.HandlerFunc
		body   string
	}{
		{"extract missing text", h.Extract, `{}`},
		{"spectro blank molecule", h.Spectro, `{"molecule": "  "}`},
		{"retro missing smiles", h.Retro, `{}`},
		{"invalid json", h.Extract, `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, tt.handle, "/x", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProxyBackendError(t *testing.T) {
	backend := &stubProxyBackend{
		err: apperrors.New(apperrors.CodeBackendFailure, "backend returned 500"),
	}
	h := NewProxyHandler(backend, backend, backend, nil)

	rec := post(t, h.Spectro, "/spectro", `{"molecule": "aspirin"}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.CodeBackendFailure), resp.Code)
}
