package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/vanyalambert/New-Harry-Potter/pkg/cache"
	"github.com/vanyalambert/New-Harry-Potter/pkg/eval"
)

// EvaluationHandler exposes the evaluation report and the administrative
// reset. Reset clears both the metrics and the response cache so a new
// evaluation run starts from a blank slate for every session. The two
// services guard themselves independently, so the handler holds its own
// lock across both calls; a concurrent report never pairs fresh metrics
// with pre-reset cache stats.
type EvaluationHandler struct {
	mu      sync.RWMutex
	metrics *eval.Metrics
	cache   *cache.ResponseCache
	logger  *slog.Logger
}

func NewEvaluationHandler(metrics *eval.Metrics, responseCache *cache.ResponseCache, logger *slog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		metrics: metrics,
		cache:   responseCache,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for evaluation operations
// Routes:
// GET /v1/evaluation/report - Current evaluation report
// POST /v1/evaluation/reset - Reset metrics and response cache
func (h *EvaluationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	op := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/evaluation"), "/")

	switch {
	case op == "report" && r.Method == http.MethodGet:
		h.handleReport(w)

	case op == "reset" && r.Method == http.MethodPost:
		h.handleReset(w)

	default:
		h.logger.Warn("Unknown evaluation operation", "op", op, "method", r.Method)
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Unknown operation. Try GET /v1/evaluation/report or POST /v1/evaluation/reset",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
	}
}

func (h *EvaluationHandler) handleReport(w http.ResponseWriter) {
	h.mu.RLock()
	report := h.metrics.Report(h.cache.Stats())
	h.mu.RUnlock()

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("Failed to encode evaluation report", "error", err)
	}
}

func (h *EvaluationHandler) handleReset(w http.ResponseWriter) {
	h.mu.Lock()
	h.metrics.Reset()
	h.cache.Reset()
	h.mu.Unlock()
	h.logger.Info("Evaluation metrics and response cache reset")

	w.WriteHeader(http.StatusOK)
	response := map[string]string{"status": "reset"}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode reset response", "error", err)
	}
}
