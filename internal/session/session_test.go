package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockDesk/pkg/cache"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestNilSessionIsAbsent(t *testing.T) {
	var s *Session
	if s.Valid(time.Now()) || s.BearerToken() != "" {
		t.Fatalf("nil session must be absent")
	}
}

func TestOpaqueTokenIsValid(t *testing.T) {
	s := New("id", "opaque-token", "", time.Now())
	if !s.Valid(time.Now()) {
		t.Fatalf("opaque token should be trusted")
	}
}

func TestExpiredJWTIsInvalid(t *testing.T) {
	now := time.Now()
	s := New("id", signed(t, now.Add(-time.Minute)), "", now)
	if s.Valid(now) {
		t.Fatalf("expired token must be invalid")
	}
	fresh := New("id", signed(t, now.Add(time.Hour)), "", now)
	if !fresh.Valid(now) {
		t.Fatalf("fresh token must be valid")
	}
}

func TestClearDropsCredential(t *testing.T) {
	s := New("id", "tok", "", time.Now())
	s.Clear()
	if !s.Cleared() || s.BearerToken() != "" || s.Valid(time.Now()) {
		t.Fatalf("cleared session must not authenticate")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	mem := cache.NewMemoryCache(cache.WithMemoryCleanup(time.Hour))
	defer mem.Close()
	store := NewStore(mem, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok", "42")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.BearerToken() != "tok" || got.AccountID != "42" {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreTouchExtendsTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mem := cache.NewMemoryCache(cache.WithMemoryCleanup(0), cache.WithMemoryClock(func() time.Time { return now }))
	defer mem.Close()
	store := NewStore(mem, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "tok", "42")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now = now.Add(50 * time.Minute)
	if err := store.Touch(ctx, created.ID); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	now = now.Add(50 * time.Minute)
	if _, err := store.Get(ctx, created.ID); err != nil {
		t.Fatalf("expected touched session to survive, got %v", err)
	}
	now = now.Add(11 * time.Minute)
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected session to expire, got %v", err)
	}
	if err := store.Touch(ctx, "missing"); err != nil {
		t.Fatalf("touching an unknown session should not fail: %v", err)
	}
}

func TestStoreUnknownID(t *testing.T) {
	mem := cache.NewMemoryCache(cache.WithMemoryCleanup(time.Hour))
	defer mem.Close()
	store := NewStore(mem, time.Hour)
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
