package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/CS5331-ACKS/rest-api-development/internal/core/domain"
	"github.com/CS5331-ACKS/rest-api-development/internal/core/ports"
)

func newCredentialSvc(store *stubStore, audit *stubAudit) *CredentialService {
	if audit == nil {
		return NewCredentialService(store, bcrypt.MinCost, nil, zerolog.Nop())
	}
	return NewCredentialService(store, bcrypt.MinCost, audit, zerolog.Nop())
}

func TestCredentialService_Register_Success(t *testing.T) {
	store := newStubStore()
	audit := &stubAudit{}
	svc := newCredentialSvc(store, audit)

	err := svc.Register(context.Background(), nil, ports.RegisterInput{Username: "alice", Password: "pw1", Fullname: "Alice", Age: "30"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user := store.users["alice"]
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Fullname != "Alice" || user.Age != 30 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserRegistered {
		t.Fatalf("expected user_registered audit event, got %v", audit.actions())
	}
}

func TestCredentialService_Register_SaltPerCall(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)

	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "a", Password: "same", Fullname: "A", Age: "1"})
	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "b", Password: "same", Fullname: "B", Age: "1"})

	if store.users["a"].PasswordHash == store.users["b"].PasswordHash {
		t.Fatalf("expected distinct hashes for equal passwords")
	}
}

func TestCredentialService_Register_InvalidAge(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)

	for _, age := range []string{"abc", "0", "-1", "2.5"} {
		err := svc.Register(context.Background(), nil, ports.RegisterInput{Username: "bob", Password: "pw", Fullname: "Bob", Age: age})
		if !errors.Is(err, domain.ErrInvalidAge) {
			t.Fatalf("age %q: expected ErrInvalidAge, got %v", age, err)
		}
	}
	if len(store.users) != 0 {
		t.Fatalf("expected no user to be written")
	}
}

func TestCredentialService_Register_EmptyStringsAccepted(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)

	err := svc.Register(context.Background(), nil, ports.RegisterInput{Username: "", Password: "", Fullname: "", Age: "3"})
	if err != nil {
		t.Fatalf("expected empty strings to register, got %v", err)
	}
	u, ok := store.users[""]
	if !ok || u.Age != 3 {
		t.Fatalf("expected user with empty username, got %+v", u)
	}

	if err := svc.Register(context.Background(), nil, ports.RegisterInput{Age: "5"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for second empty username, got %v", err)
	}
}

func TestCredentialService_Register_Duplicate(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)

	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "alice", Password: "pw1", Fullname: "Alice", Age: "30"})
	err := svc.Register(context.Background(), nil, ports.RegisterInput{Username: "alice", Password: "pw2", Fullname: "Other", Age: "40"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if store.users["alice"].Fullname != "Alice" {
		t.Fatalf("original user must be untouched")
	}
}

func TestCredentialService_Register_StorageError(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("disk full")
	svc := newCredentialSvc(store, nil)

	err := svc.Register(context.Background(), nil, ports.RegisterInput{Username: "a", Password: "p", Fullname: "A", Age: "5"})
	if err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestCredentialService_Verify(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)
	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "carol", Password: "s3cret", Fullname: "Carol", Age: "22"})

	ok, err := svc.Verify(context.Background(), nil, "carol", "s3cret")
	if err != nil || !ok {
		t.Fatalf("expected valid credentials, got %v %v", ok, err)
	}

	ok, err = svc.Verify(context.Background(), nil, "carol", "wrong")
	if err != nil || ok {
		t.Fatalf("expected wrong password to fail without error, got %v %v", ok, err)
	}

	ok, err = svc.Verify(context.Background(), nil, "ghost", "s3cret")
	if err != nil || ok {
		t.Fatalf("expected unknown user to fail without error, got %v %v", ok, err)
	}
}

func TestCredentialService_Verify_StorageError(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("db down")
	svc := newCredentialSvc(store, nil)

	ok, err := svc.Verify(context.Background(), nil, "carol", "pw")
	if err == nil || ok {
		t.Fatalf("expected storage error to be returned, got %v %v", ok, err)
	}
}

func TestCredentialService_Profile(t *testing.T) {
	store := newStubStore()
	svc := newCredentialSvc(store, nil)
	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "dave", Password: "pw", Fullname: "Dave D", Age: "41"})

	user, err := svc.Profile(context.Background(), nil, "dave")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.Username != "dave" || user.Fullname != "Dave D" || user.Age != 41 {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), nil, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialService_Verify_AuditsLogins(t *testing.T) {
	store := newStubStore()
	audit := &stubAudit{}
	svc := newCredentialSvc(store, audit)
	_ = svc.Register(context.Background(), nil, ports.RegisterInput{Username: "erin", Password: "pw", Fullname: "Erin", Age: "33"})

	_, _ = svc.Verify(context.Background(), nil, "erin", "pw")
	_, _ = svc.Verify(context.Background(), nil, "erin", "nope")
	_, _ = svc.Verify(context.Background(), nil, "ghost", "pw")

	want := []domain.AuditAction{domain.AuditUserRegistered, domain.AuditLoginSucceeded, domain.AuditLoginFailed, domain.AuditLoginFailed}
	got := audit.actions()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
