package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
	"github.com/vanyalambert/New-Harry-Potter/pkg/world"
)

func newTestRedis(t *testing.T) *RedisStorage {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rs, err := NewRedisStorage(mr.Addr(), logger)
	if err != nil {
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	t.Cleanup(func() {
		if err := rs.Close(); err != nil {
			t.Errorf("Failed to close redis storage: %v", err)
		}
	})
	return rs
}

func TestRedisStorage_Ping(t *testing.T) {
	rs := newTestRedis(t)
	if err := rs.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}

func TestRedisStorage_SaveLoadDelete(t *testing.T) {
	rs := newTestRedis(t)
	ctx := context.Background()

	session := state.NewSession(world.Hogwarts())
	session.RecordEvidence("A torn page about magical compasses")

	if err := rs.SaveSession(ctx, session.ID, session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := rs.LoadSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected session to exist")
	}
	if loaded.ID != session.ID {
		t.Errorf("Expected ID %s, got %s", session.ID, loaded.ID)
	}
	if loaded.Location != session.Location {
		t.Errorf("Expected location %q, got %q", session.Location, loaded.Location)
	}
	if len(loaded.Evidence) != 1 || loaded.Evidence[0] != "A torn page about magical compasses" {
		t.Errorf("Expected evidence to round-trip, got %v", loaded.Evidence)
	}
	if len(loaded.Timeline) != len(session.Timeline) {
		t.Errorf("Expected %d timeline entries, got %d", len(session.Timeline), len(loaded.Timeline))
	}

	if err := rs.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	loaded, err = rs.LoadSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("Unexpected error loading deleted session: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for deleted session")
	}
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	rs := newTestRedis(t)

	loaded, err := rs.LoadSession(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Expected no error for missing session, got %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for missing session, got %+v", loaded)
	}
}

func TestRedisStorage_SaveSetsTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rs, err := NewRedisStorage(mr.Addr(), logger)
	if err != nil {
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	defer func() { _ = rs.Close() }()

	session := state.NewSession(world.Hogwarts())
	if err := rs.SaveSession(context.Background(), session.ID, session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	ttl := mr.TTL(sessionKeyPrefix + session.ID.String())
	if ttl != SessionTTL {
		t.Errorf("Expected TTL %v, got %v", SessionTTL, ttl)
	}
}

func TestMockStorage(t *testing.T) {
	ms := NewMockStorage()
	ctx := context.Background()

	session := state.NewSession(world.Hogwarts())

	if err := ms.SaveSession(ctx, session.ID, session); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if ms.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", ms.Count())
	}

	loaded, err := ms.LoadSession(ctx, session.ID)
	if err != nil || loaded == nil {
		t.Fatalf("Expected session, got %v / %v", loaded, err)
	}

	if err := ms.SaveSession(ctx, session.ID, nil); err == nil {
		t.Error("Expected error saving nil session")
	}

	if err := ms.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	loaded, _ = ms.LoadSession(ctx, session.ID)
	if loaded != nil {
		t.Error("Expected nil after delete")
	}
}
