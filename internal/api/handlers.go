package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/agentstudio/estimator/internal/config"
	"github.com/agentstudio/estimator/internal/engine"
	"github.com/agentstudio/estimator/internal/estimatestore"
	"github.com/agentstudio/estimator/internal/metrics"
	"github.com/agentstudio/estimator/internal/validator"
	"github.com/agentstudio/estimator/pkg/types"
)

// maxRequestBody bounds estimate request payloads at 1 MiB.
const maxRequestBody = 1 << 20

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	store     estimatestore.Store
	engine    *engine.Engine
	validator *validator.Validator
	config    *config.Config
	logger    *slog.Logger
}

// NewHandlers creates HTTP handlers. A nil validator disables schema
// validation at the boundary.
func NewHandlers(store estimatestore.Store, eng *engine.Engine, v *validator.Validator, cfg *config.Config, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		store:     store,
		engine:    eng,
		validator: v,
		config:    cfg,
		logger:    logger,
	}
}

// EstimateRequest is the body accepted by the estimate endpoints.
type EstimateRequest struct {
	Name           string                `json:"name,omitempty"`
	Agents         []types.Agent         `json:"agents"`
	Workflow       *types.WorkflowConfig `json:"workflow"`
	SkipValidation bool                  `json:"skip_validation,omitempty"`
}

// Health handles liveness checks.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "estimator",
	})
}

// Ready handles readiness checks, probing the estimate store.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	info, err := h.store.AdapterInfo(r.Context())
	if err != nil {
		h.logger.Warn("readiness probe failed", "error", err)
		writeErrorResponse(w, r, http.StatusServiceUnavailable, "estimate store unavailable", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"store":  info,
	})
}

// CreateEstimate computes an estimate and persists it to the history.
func (h *Handlers) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	req, body, ok := h.readEstimateRequest(w, r)
	if !ok {
		return
	}
	if !h.validateBody(w, r, req, body) {
		return
	}

	result, mode := h.computeEstimate(req)

	est := &types.Estimate{
		Name:       req.Name,
		Mode:       mode,
		AgentCount: len(req.Agents),
		Result:     result,
	}

	saved, err := h.store.Save(r.Context(), est)
	if err != nil {
		metrics.StoreOperations.WithLabelValues("save", "error").Inc()
		h.logger.Error("failed to save estimate", "error", err)
		writeErrorResponse(w, r, http.StatusInternalServerError, "failed to save estimate", nil)
		return
	}
	metrics.StoreOperations.WithLabelValues("save", "success").Inc()

	h.logger.Info("estimate created",
		slog.String("id", saved.ID),
		slog.String("mode", string(saved.Mode)),
		slog.Int("agents", saved.AgentCount),
		slog.Int("minutes", result.TotalTimeMinutes),
	)

	respondJSON(w, http.StatusCreated, saved)
}

// PreviewEstimate computes an estimate without persisting it.
func (h *Handlers) PreviewEstimate(w http.ResponseWriter, r *http.Request) {
	req, body, ok := h.readEstimateRequest(w, r)
	if !ok {
		return
	}
	if !h.validateBody(w, r, req, body) {
		return
	}

	result, _ := h.computeEstimate(req)
	respondJSON(w, http.StatusOK, result)
}

// GetEstimate retrieves a stored estimate by ID.
func (h *Handlers) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	est, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, estimatestore.ErrEstimateNotFound) {
			writeErrorResponse(w, r, http.StatusNotFound, "estimate not found", nil)
			return
		}
		metrics.StoreOperations.WithLabelValues("get", "error").Inc()
		h.logger.Error("failed to get estimate", "id", id, "error", err)
		writeErrorResponse(w, r, http.StatusInternalServerError, "failed to get estimate", nil)
		return
	}
	metrics.StoreOperations.WithLabelValues("get", "success").Inc()

	respondJSON(w, http.StatusOK, est)
}

// ListEstimates returns stored estimates, newest first.
func (h *Handlers) ListEstimates(w http.ResponseWriter, r *http.Request) {
	opts := &estimatestore.ListOptions{
		Limit:  parseQueryInt(r, "limit", 50),
		Offset: parseQueryInt(r, "offset", 0),
	}

	estimates, err := h.store.List(r.Context(), opts)
	if err != nil {
		metrics.StoreOperations.WithLabelValues("list", "error").Inc()
		h.logger.Error("failed to list estimates", "error", err)
		writeErrorResponse(w, r, http.StatusInternalServerError, "failed to list estimates", nil)
		return
	}
	metrics.StoreOperations.WithLabelValues("list", "success").Inc()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"estimates": estimates,
		"count":     len(estimates),
	})
}

// DeleteEstimate removes a stored estimate.
func (h *Handlers) DeleteEstimate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, estimatestore.ErrEstimateNotFound) {
			writeErrorResponse(w, r, http.StatusNotFound, "estimate not found", nil)
			return
		}
		metrics.StoreOperations.WithLabelValues("delete", "error").Inc()
		h.logger.Error("failed to delete estimate", "id", id, "error", err)
		writeErrorResponse(w, r, http.StatusInternalServerError, "failed to delete estimate", nil)
		return
	}
	metrics.StoreOperations.WithLabelValues("delete", "success").Inc()

	w.WriteHeader(http.StatusNoContent)
}

// ValidateWorkflow runs schema validation only and reports the result.
func (h *Handlers) ValidateWorkflow(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "failed to read request body", nil)
		return
	}

	if h.validator == nil {
		respondJSON(w, http.StatusOK, &validator.ValidationResult{Valid: true})
		return
	}

	result := h.validator.ValidateRequestJSON(body)
	if !result.Valid {
		metrics.ValidationFailuresTotal.Inc()
	}
	respondJSON(w, http.StatusOK, result)
}

// readEstimateRequest reads and decodes the request body. On failure it
// writes the error response and returns ok=false.
func (h *Handlers) readEstimateRequest(w http.ResponseWriter, r *http.Request) (*EstimateRequest, []byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "failed to read request body", nil)
		return nil, nil, false
	}

	var req EstimateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, "invalid JSON in request body", nil)
		return nil, nil, false
	}
	return &req, body, true
}

// validateBody applies schema validation unless the request opts out.
func (h *Handlers) validateBody(w http.ResponseWriter, r *http.Request, req *EstimateRequest, body []byte) bool {
	if req.SkipValidation || h.validator == nil {
		return true
	}

	result := h.validator.ValidateRequestJSON(body)
	if result.Valid {
		return true
	}

	metrics.ValidationFailuresTotal.Inc()
	writeErrorResponse(w, r, http.StatusBadRequest, "request failed schema validation", map[string]interface{}{
		"validation_errors": result.Errors,
	})
	return false
}

// computeEstimate runs the engine and records estimation metrics.
func (h *Handlers) computeEstimate(req *EstimateRequest) (*types.MetricsResult, types.WorkflowMode) {
	mode := types.ModeSequential
	if req.Workflow != nil && req.Workflow.Mode != "" {
		mode = req.Workflow.Mode
	}
	modeLabel := modeMetricLabel(mode)

	start := time.Now()
	result := h.engine.Estimate(req.Agents, req.Workflow)
	elapsed := time.Since(start)

	metrics.EstimatesTotal.WithLabelValues(modeLabel).Inc()
	metrics.EstimateDuration.WithLabelValues(modeLabel).Observe(elapsed.Seconds())
	metrics.EstimatedMinutes.WithLabelValues(modeLabel).Observe(float64(result.TotalTimeMinutes))
	if n := len(result.Warnings); n > 0 {
		metrics.WarningsTotal.Add(float64(n))
	}

	return result, mode
}

// modeMetricLabel maps arbitrary request modes onto a bounded label set.
func modeMetricLabel(mode types.WorkflowMode) string {
	switch mode {
	case types.ModeSequential, types.ModeParallel, types.ModeConditional, types.ModeGraph:
		return string(mode)
	default:
		return "unknown"
	}
}

func parseQueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
