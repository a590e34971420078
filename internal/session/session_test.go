package session

import (
	"context"
	"testing"

	"github.com/me/taskdeck/internal/logging"
	"github.com/me/taskdeck/pkg/model"
)

func newTestStore(t *testing.T) (*Store, *SQLiteKV) {
	t.Helper()
	kv, err := NewSQLiteKV(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return NewStore(kv, logging.Discard()), kv
}

func TestLoginReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	profile := &model.Profile{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	if err := store.Login(ctx, "tok-123", profile); err != nil {
		t.Fatalf("login: %v", err)
	}

	token, user := store.Current()
	if token != "tok-123" {
		t.Errorf("Current() token = %q, want %q", token, "tok-123")
	}
	if user == nil || user.Email != "ann@x.com" {
		t.Errorf("Current() user = %+v, want email ann@x.com", user)
	}

	// Durable entry must match immediately after Login.
	persisted, ok, err := kv.Get(ctx, keyToken)
	if err != nil || !ok {
		t.Fatalf("kv.Get(token): ok=%v err=%v", ok, err)
	}
	if persisted != "tok-123" {
		t.Errorf("persisted token = %q, want %q", persisted, "tok-123")
	}
}

func TestLoginEmptyTokenRejected(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Login(context.Background(), "", &model.Profile{ID: "u1"}); err == nil {
		t.Fatal("Login with empty token should fail")
	}
	if token, user := store.Current(); token != "" || user != nil {
		t.Errorf("state mutated by rejected login: token=%q user=%+v", token, user)
	}
}

func TestLoginWithoutProfile(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	// A malformed server response may omit the profile. The session is
	// then token-holding but anonymous.
	if err := store.Login(ctx, "tok-anon", nil); err != nil {
		t.Fatalf("login: %v", err)
	}

	token, user := store.Current()
	if token != "tok-anon" {
		t.Errorf("token = %q, want tok-anon", token)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil", user)
	}
	if store.IsAdmin() {
		t.Error("anonymous session must not be admin")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	if err := store.Login(ctx, "tok-123", &model.Profile{ID: "u1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if token, user := store.Current(); token != "" || user != nil {
		t.Errorf("Current() after logout = (%q, %+v), want empty", token, user)
	}
	for _, key := range []string{keyToken, keyUser} {
		if _, ok, _ := kv.Get(ctx, key); ok {
			t.Errorf("durable entry %q still present after logout", key)
		}
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if err := store.Login(ctx, "tok-123", &model.Profile{ID: "u1"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if token, user := store.Current(); token != "" || user != nil {
		t.Errorf("Current() = (%q, %+v), want empty", token, user)
	}
}

func TestInitializeEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if token, user := store.Current(); token != "" || user != nil {
		t.Errorf("Current() = (%q, %+v), want empty", token, user)
	}
}

func TestInitializeRestoresSession(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	first := NewStore(kv, logging.Discard())
	if err := first.Login(ctx, "tok-123", &model.Profile{ID: "u1", Email: "ann@x.com", IsAdmin: true}); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A fresh store over the same backend stands in for a restart.
	second := NewStore(kv, logging.Discard())
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	token, user := second.Current()
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
	if user == nil || user.Email != "ann@x.com" {
		t.Fatalf("user = %+v, want email ann@x.com", user)
	}
	if !second.IsAdmin() {
		t.Error("IsAdmin() = false, want true")
	}
}

func TestInitializeCorruptUserRecovers(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	if err := kv.Set(ctx, keyToken, "tok-123"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := kv.Set(ctx, keyUser, "{not json"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize should recover from corrupt user, got: %v", err)
	}

	token, user := store.Current()
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil after corrupt entry", user)
	}
}

func TestInitializeUserWithoutTokenDropped(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	if err := kv.Set(ctx, keyUser, `{"_id":"u1","email":"ann@x.com"}`); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, user := store.Current(); user != nil {
		t.Errorf("user = %+v, want nil without a token", user)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if err := store.Login(ctx, "tok-123", &model.Profile{ID: "u1", Name: "Ann"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, user := store.Current()
	user.Name = "mutated"

	if _, again := store.Current(); again.Name != "Ann" {
		t.Errorf("store state mutated through Current() result: name = %q", again.Name)
	}
}
