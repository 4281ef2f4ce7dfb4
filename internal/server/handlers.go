package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/novetrasys/npad/internal/calculation"
	"github.com/novetrasys/npad/internal/config"
	"github.com/novetrasys/npad/internal/domain"
	"github.com/novetrasys/npad/internal/output"
	"github.com/novetrasys/npad/internal/presets"
	"github.com/novetrasys/npad/internal/transform"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultSweepSteps = 11

var (
	errUnknownPreset = errors.New("unknown preset")
	errBadRequest    = errors.New("bad request")
)

type Handler struct {
	engine   *calculation.CalculationEngine
	analyzer *calculation.SensitivityAnalyzer
	presets  *presets.Registry
	parser   *config.InputParser
	policy   domain.ReviewCostPolicy
	build    BuildInfo
}

func NewHandler(deps Dependencies, build BuildInfo) *Handler {
	engine := deps.Engine
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	registry := deps.Presets
	if registry == nil {
		registry = presets.BuiltIn()
	}
	policy := deps.Policy
	if policy.SmallCaseCeiling.IsZero() && policy.LargeCaseFloor.IsZero() {
		policy = domain.DefaultReviewCostPolicy()
	}
	return &Handler{
		engine:   engine,
		analyzer: calculation.NewSensitivityAnalyzer(engine),
		presets:  registry,
		parser:   config.NewInputParserWithPresets(registry),
		policy:   policy,
		build:    build,
	}
}

// EvaluateRequest describes the claims to value. Assumptions start from the
// named preset (or the defaults) and are then patched by Assumptions and
// Overrides in that order. ReviewCosts patches the costs the same way.
// Without Cases the standard small and large cases are valued; Small and
// Large only size those and cannot be combined with Cases.
type EvaluateRequest struct {
	Preset      string            `json:"preset,omitempty"`
	Assumptions json.RawMessage   `json:"assumptions,omitempty"`
	Overrides   []string          `json:"overrides,omitempty"`
	ReviewCosts json.RawMessage   `json:"review_costs,omitempty"`
	Small       *decimal.Decimal  `json:"small,omitempty"`
	Large       *decimal.Decimal  `json:"large,omitempty"`
	Cases       []domain.CaseSpec `json:"cases,omitempty"`
}

// SensitivityRequest sweeps Parameter over [Min, Max] in Steps values. Min
// and Max default to the parameter's slider range.
type SensitivityRequest struct {
	EvaluateRequest
	Parameter string           `json:"parameter"`
	Min       *decimal.Decimal `json:"min,omitempty"`
	Max       *decimal.Decimal `json:"max,omitempty"`
	Steps     int              `json:"steps,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type presetSummary struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.build)
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	list := h.presets.List()
	response := make([]presetSummary, 0, len(list))
	for _, p := range list {
		response = append(response, presetSummary{Name: p.Name, Slug: p.Slug, Description: p.Description})
	}
	writeJSON(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := h.presets.Get(name)
	if !ok {
		writeError(r.Context(), w, fmt.Errorf("%w %q", errUnknownPreset, name))
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, p)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.configuration(req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	valuation, err := h.engine.Evaluate(ctx, cfg.Assumptions, cfg.CaseInputs())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	loggerFrom(ctx).Debug("evaluated cases", zap.Int("cases", len(valuation.Cases)))
	writeJSON(ctx, w, http.StatusOK, output.NewReportFromConfiguration(cfg, valuation))
}

func (h *Handler) Sensitivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SensitivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if strings.TrimSpace(req.Parameter) == "" {
		writeError(ctx, w, fmt.Errorf("%w: parameter is required", errBadRequest))
		return
	}

	cfg, err := h.configuration(req.EvaluateRequest)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	steps := req.Steps
	if steps == 0 {
		steps = defaultSweepSteps
	}
	minValue, maxValue := decimal.Zero, decimal.Zero
	if req.Min != nil || req.Max != nil {
		spec, ok := domain.LookupParameter(req.Parameter)
		if !ok {
			writeError(ctx, w, domain.NewInvalidParameterError(req.Parameter, "", "unknown assumption"))
			return
		}
		minValue, maxValue = spec.RangeFor(cfg.Assumptions)
		if req.Min != nil {
			minValue = *req.Min
		}
		if req.Max != nil {
			maxValue = *req.Max
		}
	}

	param, err := calculation.NewSensitivityParameter(req.Parameter, cfg.Assumptions, minValue, maxValue, steps)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.analyzer.AnalyzeSingleParameter(ctx, cfg.Assumptions, cfg.CaseInputs(), param)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, analysis)
}

// configuration resolves a request into a validated configuration.
func (h *Handler) configuration(req EvaluateRequest) (*domain.Configuration, error) {
	cfg := domain.DefaultConfiguration()
	if strings.TrimSpace(req.Preset) != "" {
		p, ok := h.presets.Get(req.Preset)
		if !ok {
			return nil, fmt.Errorf("%w %q", errUnknownPreset, req.Preset)
		}
		cfg = p.Configuration(h.policy)
	}
	cfg.ReviewPolicy = h.policy

	if len(req.Assumptions) > 0 {
		// keys missing from the document keep their current value
		if err := decodeStrict(req.Assumptions, &cfg.Assumptions); err != nil {
			return nil, fmt.Errorf("%w: invalid assumptions: %v", errBadRequest, err)
		}
	}

	transforms, err := transform.ParseOverrides(req.Overrides)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	bundle, err := transform.ApplyTransforms(cfg.Assumptions, transforms)
	if err != nil {
		return nil, err
	}
	cfg.Assumptions = bundle

	if len(req.ReviewCosts) > 0 {
		if err := decodeStrict(req.ReviewCosts, &cfg.ReviewCosts); err != nil {
			return nil, fmt.Errorf("%w: invalid review costs: %v", errBadRequest, err)
		}
	}
	if len(req.Cases) > 0 && (req.Small != nil || req.Large != nil) {
		return nil, fmt.Errorf("%w: small and large size the standard cases and cannot be combined with cases", errBadRequest)
	}
	if req.Small != nil {
		cfg.Amounts.Small = *req.Small
	}
	if req.Large != nil {
		cfg.Amounts.Large = *req.Large
	}
	cfg.Cases = req.Cases

	if err := h.parser.ValidateConfiguration(&cfg); err != nil {
		if errors.Is(err, domain.ErrInvalidParameter) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return &cfg, nil
}

// decodeStrict decodes a nested object onto v, rejecting keys v has no field for
func decodeStrict(raw json.RawMessage, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// statusFor maps an error onto an HTTP status code.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	response := errorResponse{Error: err.Error()}
	var invalid *domain.InvalidParameterError
	if errors.As(err, &invalid) {
		response.Field = invalid.Field
	}
	if status >= http.StatusInternalServerError {
		loggerFrom(ctx).Error("request failed", zap.Error(err))
	} else {
		loggerFrom(ctx).Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(ctx, w, status, response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		loggerFrom(ctx).Error("failed to encode response", zap.Error(err))
	}
}
