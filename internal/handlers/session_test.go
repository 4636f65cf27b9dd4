package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanyalambert/New-Harry-Potter/internal/storage"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionHandler_Create(t *testing.T) {
	w := world.Hogwarts()
	handler := NewSessionHandler(w, storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/session", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.NotEqual(t, uuid.Nil, response.SessionID)
	require.NotNil(t, response.State)
	assert.Equal(t, "The Great Hall", response.State.Location)
	assert.Equal(t, 0, response.State.CluesFound)
	// Opening narration is already on the timeline.
	require.Len(t, response.State.Timeline, 1)
	assert.Equal(t, "Professor Dumbledore", response.State.Timeline[0].Speaker)
}

func TestSessionHandler_ReadNotFound(t *testing.T) {
	handler := NewSessionHandler(world.Hogwarts(), storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/session/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "Session not found", response.Error)
}

func TestSessionHandler_ReadAfterCreate(t *testing.T) {
	w := world.Hogwarts()
	store := storage.NewMockStorage()
	handler := NewSessionHandler(w, store, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/session", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session/"+created.SessionID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var read SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&read))
	assert.Equal(t, created.SessionID, read.SessionID)
	assert.Equal(t, created.State.Location, read.State.Location)
}

func TestSessionHandler_InvalidID(t *testing.T) {
	handler := NewSessionHandler(world.Hogwarts(), storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/session/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_Delete(t *testing.T) {
	w := world.Hogwarts()
	store := storage.NewMockStorage()
	handler := NewSessionHandler(w, store, testLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/session", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/session/"+created.SessionID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, store.Count())
}

func TestSessionHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSessionHandler(world.Hogwarts(), storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodPut, "/v1/session", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
