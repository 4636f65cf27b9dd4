package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/vanyalambert/New-Harry-Potter/internal/game"
	"github.com/vanyalambert/New-Harry-Potter/internal/storage"
	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
)

// ActionHandler handles player actions. Actions on the same session are
// serialized by a per-session lock; different sessions proceed in
// parallel. Locks are reference-counted and dropped from the map once
// the last holder releases them, so the map only holds in-flight
// sessions.
type ActionHandler struct {
	engine  *game.Engine
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewActionHandler(engine *game.Engine, storage storage.Storage, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		engine:  engine,
		storage: storage,
		logger:  logger,
		locks:   make(map[uuid.UUID]*sessionLock),
	}
}

func (h *ActionHandler) acquireSessionLock(id uuid.UUID) *sessionLock {
	h.mu.Lock()
	lock, ok := h.locks[id]
	if !ok {
		lock = &sessionLock{}
		h.locks[id] = lock
	}
	lock.refs++
	h.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (h *ActionHandler) releaseSessionLock(id uuid.UUID, lock *sessionLock) {
	lock.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(h.locks, id)
	}
}

// ServeHTTP handles POST /v1/action
func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for action endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	var request chat.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: "Invalid JSON in request body",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid action request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{
			Error: err.Error(),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	lock := h.acquireSessionLock(request.SessionID)
	defer h.releaseSessionLock(request.SessionID, lock)

	session, err := h.storage.LoadSession(r.Context(), request.SessionID)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "id", request.SessionID.String())
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to load session",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if session == nil {
		h.logger.Warn("Session not found", "id", request.SessionID.String())
		w.WriteHeader(http.StatusNotFound)
		response := ErrorResponse{
			Error: "Session not found",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	reply := h.engine.HandleAction(r.Context(), session, request.Text)

	if err := h.storage.SaveSession(r.Context(), session.ID, session); err != nil {
		h.logger.Error("Failed to save session", "error", err, "id", session.ID.String())
		w.WriteHeader(http.StatusInternalServerError)
		response := ErrorResponse{
			Error: "Failed to save session",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	response := chat.ActionResponse{
		SessionID: session.ID,
		Reply:     reply,
		State:     session.StateView(h.engine.World()),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode action response", "error", err)
	}
}
