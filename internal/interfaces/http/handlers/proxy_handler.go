package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	"github.com/chemgpt/gateway/internal/routing"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	Text string `json:"text"`
}

// MoleculeRequest is the body of POST /spectro.
type MoleculeRequest struct {
	Molecule string `json:"molecule"`
}

// RetroRequest is the body of POST /retro.
type RetroRequest struct {
	SMILES string `json:"smiles"`
}

// ProxyHandler exposes each backend directly, bypassing classification.
// Responses are relayed verbatim.
type ProxyHandler struct {
	extract routing.ExtractBackend
	spectro routing.SpectroBackend
	retro   routing.RetroBackend
	logger  logging.Logger
}

func NewProxyHandler(
	extract routing.ExtractBackend,
	spectro routing.SpectroBackend,
	retro routing.RetroBackend,
	logger logging.Logger,
) *ProxyHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProxyHandler{
		extract: extract,
		spectro: spectro,
		retro:   retro,
		logger:  logger.Named("proxy"),
	}
}

// Extract handles POST /extract.
func (h *ProxyHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "text is required")
		return
	}
	h.relay(w, r, "extract", func() (json.RawMessage, error) {
		return h.extract.Extract(r.Context(), req.Text)
	})
}

// Spectro handles POST /spectro.
func (h *ProxyHandler) Spectro(w http.ResponseWriter, r *http.Request) {
	var req MoleculeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Molecule) == "" {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "molecule is required")
		return
	}
	h.relay(w, r, "spectro", func() (json.RawMessage, error) {
		return h.spectro.Spectroscopy(r.Context(), req.Molecule)
	})
}

// Retro handles POST /retro.
func (h *ProxyHandler) Retro(w http.ResponseWriter, r *http.Request) {
	var req RetroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SMILES) == "" {
		writeError(w, http.StatusBadRequest, apperrors.CodeBadRequest, "smiles is required")
		return
	}
	h.relay(w, r, "retro", func() (json.RawMessage, error) {
		return h.retro.Retrosynthesis(r.Context(), req.SMILES)
	})
}

func (h *ProxyHandler) relay(w http.ResponseWriter, r *http.Request, name string, call func() (json.RawMessage, error)) {
	payload, err := call()
	if err != nil {
		h.logger.Error("proxy call failed",
			logging.String("backend", name),
			logging.Err(err))
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
