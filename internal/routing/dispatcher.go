package routing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

// Tool display names surfaced to clients in the response envelope.
const (
	ToolExtract  = "ChemDataExtractor"
	ToolSpectro  = "ChemGPT Spectro"
	ToolRetro    = "AiZynthFinder"
	ToolFallback = "GPT-4o"
)

// TypeFallback marks answers produced by the completion service rather than
// a specialised backend.
const TypeFallback = "gpt4o"

// ToolResult is the uniform response envelope for answered questions.
// Answer carries the backend's JSON payload verbatim, or a quoted string
// when the completion service answered.
type ToolResult struct {
	Type   string          `json:"type"`
	Answer json.RawMessage `json:"answer"`
	Tool   string          `json:"tool"`
}

// ExtractBackend runs named-entity extraction over free text.
type ExtractBackend interface {
	Extract(ctx context.Context, text string) (json.RawMessage, error)
}

// SpectroBackend predicts spectra for a molecule name.
type SpectroBackend interface {
	Spectroscopy(ctx context.Context, molecule string) (json.RawMessage, error)
}

// RetroBackend plans retrosynthesis routes for a SMILES string.
type RetroBackend interface {
	Retrosynthesis(ctx context.Context, smiles string) (json.RawMessage, error)
}

// CompletionService answers questions no specialised backend covers.
type CompletionService interface {
	Complete(ctx context.Context, question string) (string, error)
}

// Recorder receives dispatch outcome events. Implemented by the prometheus
// metrics layer; a nil Recorder disables recording.
type Recorder interface {
	BackendCall(tool string, failed bool)
	Fallback(reason string)
}

// Fallback reasons reported to the Recorder.
const (
	FallbackReasonUnknown      = "unknown_intent"
	FallbackReasonBackendError = "backend_error"
)

// Dispatcher routes a classified question to its backend and falls back to
// the completion service when no backend matches or the matched backend
// fails. Fallback failure is the only error it surfaces.
type Dispatcher struct {
	extract  ExtractBackend
	spectro  SpectroBackend
	retro    RetroBackend
	fallback CompletionService
	recorder Recorder
	logger   logging.Logger
}

// NewDispatcher wires a Dispatcher. All backends and the fallback must be
// non-nil; recorder may be nil.
func NewDispatcher(
	extract ExtractBackend,
	spectro SpectroBackend,
	retro RetroBackend,
	fallback CompletionService,
	recorder Recorder,
	logger logging.Logger,
) *Dispatcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Dispatcher{
		extract:  extract,
		spectro:  spectro,
		retro:    retro,
		fallback: fallback,
		recorder: recorder,
		logger:   logger.Named("dispatcher"),
	}
}

// Dispatch classifies the question, extracts its parameter and invokes the
// matching backend. A failed backend call is logged and absorbed into a
// fallback completion; only a failed fallback returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, question string) (*ToolResult, error) {
	category := Classify(question)
	param := ExtractParameter(category, question)

	var (
		tool   string
		answer json.RawMessage
		err    error
	)
	switch category {
	case CategoryExtract:
		tool = ToolExtract
		answer, err = d.extract.Extract(ctx, param)
	case CategorySpectro:
		tool = ToolSpectro
		answer, err = d.spectro.Spectroscopy(ctx, param)
	case CategoryRetro:
		tool = ToolRetro
		answer, err = d.retro.Retrosynthesis(ctx, param)
	default:
		d.record(FallbackReasonUnknown)
		return d.complete(ctx, question, ToolFallback)
	}

	if d.recorder != nil {
		d.recorder.BackendCall(tool, err != nil)
	}
	if err != nil {
		d.logger.Warn("backend call failed, falling back",
			logging.String("tool", tool),
			logging.String("category", category.String()),
			logging.Err(err))
		d.record(FallbackReasonBackendError)
		return d.complete(ctx, question, fmt.Sprintf("%s (fallback)", ToolFallback))
	}

	return &ToolResult{
		Type:   category.String(),
		Answer: answer,
		Tool:   tool,
	}, nil
}

func (d *Dispatcher) complete(ctx context.Context, question, tool string) (*ToolResult, error) {
	text, err := d.fallback.Complete(ctx, question)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeFallbackFailure, "completion fallback failed")
	}
	answer, err := json.Marshal(text)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "encode fallback answer")
	}
	return &ToolResult{
		Type:   TypeFallback,
		Answer: answer,
		Tool:   tool,
	}, nil
}

func (d *Dispatcher) record(reason string) {
	if d.recorder != nil {
		d.recorder.Fallback(reason)
	}
}
