package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
)

func newGate(store *stubStore) (*Gate, *TokenLedger) {
	ledger := NewTokenLedger(store, nil, zerolog.Nop())
	return NewGate(ledger, store), ledger
}

func TestGate_Authenticate(t *testing.T) {
	store := newStubStore()
	gate, ledger := newGate(store)
	token, _ := ledger.Issue(context.Background(), nil, "alice")

	username, err := gate.Authenticate(context.Background(), nil, token.Value)
	if err != nil || username != "alice" {
		t.Fatalf("expected alice, got %q %v", username, err)
	}
}

func TestGate_Authenticate_CollapsesTokenErrors(t *testing.T) {
	store := newStubStore()
	gate, ledger := newGate(store)
	expired, _ := ledger.Issue(context.Background(), nil, "alice")
	_ = ledger.Expire(context.Background(), nil, expired.Value)

	cases := map[string]string{
		"malformed": "abc",
		"unknown":   uuid.NewString(),
		"expired":   expired.Value,
	}
	for name, tok := range cases {
		if _, err := gate.Authenticate(context.Background(), nil, tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestGate_Authenticate_StorageErrorNotUnauthorized(t *testing.T) {
	store := newStubStore()
	gate, _ := newGate(store)
	store.err = errors.New("db down")

	_, err := gate.Authenticate(context.Background(), nil, uuid.NewString())
	if err == nil || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected storage error to pass through, got %v", err)
	}
}

func TestGate_ExpireToken(t *testing.T) {
	store := newStubStore()
	gate, ledger := newGate(store)
	token, _ := ledger.Issue(context.Background(), nil, "alice")

	if err := gate.ExpireToken(context.Background(), nil, token.Value); err != nil {
		t.Fatalf("ExpireToken returned error: %v", err)
	}
	if err := gate.ExpireToken(context.Background(), nil, token.Value); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("second ExpireToken: expected ErrUnauthorized, got %v", err)
	}
	if err := gate.ExpireToken(context.Background(), nil, "x"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("malformed: expected ErrUnauthorized, got %v", err)
	}
}

func TestGate_AuthorizeOwnsEntry(t *testing.T) {
	store := newStubStore()
	gate, _ := newGate(store)
	id, _ := stubEntries{store}.Create(context.Background(), &domain.DiaryEntry{Author: "alice", Title: "t"})

	if err := gate.AuthorizeOwnsEntry(context.Background(), nil, "alice", id); err != nil {
		t.Fatalf("owner should be authorized: %v", err)
	}
	if err := gate.AuthorizeOwnsEntry(context.Background(), nil, "bob", id); !errors.Is(err, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("non-owner: expected ErrNotFoundOrForbidden, got %v", err)
	}
	if err := gate.AuthorizeOwnsEntry(context.Background(), nil, "alice", id+100); !errors.Is(err, domain.ErrNotFoundOrForbidden) {
		t.Fatalf("missing entry: expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestGate_ValidateVisibility(t *testing.T) {
	gate, _ := newGate(newStubStore())

	v, err := gate.ValidateVisibility(json.RawMessage("true"))
	if err != nil || !v {
		t.Fatalf("expected true, got %v %v", v, err)
	}
	v, err = gate.ValidateVisibility(json.RawMessage("false"))
	if err != nil || v {
		t.Fatalf("expected false, got %v %v", v, err)
	}
	for _, raw := range []string{`"true"`, `1`, `0`, `"yes"`} {
		if _, err := gate.ValidateVisibility(json.RawMessage(raw)); !errors.Is(err, domain.ErrInvalidVisibility) {
			t.Fatalf("%s: expected ErrInvalidVisibility, got %v", raw, err)
		}
	}
}
