package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"apex-client/api"
	"apex-client/db"
	"apex-client/utils"
)

type fakeAuth struct {
	calls   int
	session *api.Session
	err     error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string, remember bool) (*api.Session, error) {
	f.calls++
	return f.session, f.err
}

type memStore struct {
	session *db.StoredSession
	cleared int
}

func (m *memStore) SaveSession(s db.StoredSession) error {
	m.session = &s
	return nil
}

func (m *memStore) LoadSession() (*db.StoredSession, error) {
	return m.session, nil
}

func (m *memStore) ClearSession() error {
	m.session = nil
	m.cleared++
	return nil
}

type tokenHolder struct{ token string }

func (h *tokenHolder) SetToken(token string) { h.token = token }

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		email    string
		password string
	}{
		{"empty", Form{}, MsgEmailRequired, MsgPasswordRequired},
		{"bad email", Form{Email: "not-an-email", Password: "longenough"}, MsgEmailInvalid, ""},
		{"short password", Form{Email: "ana@example.com", Password: "12345"}, "", MsgPasswordShort},
		{"both invalid", Form{Email: "a@b", Password: "x"}, MsgEmailInvalid, MsgPasswordShort},
		{"spaces in email", Form{Email: "ana @example.com", Password: "longenough"}, MsgEmailInvalid, ""},
		{"whitespace-only email", Form{Email: "   ", Password: "longenough"}, MsgEmailRequired, ""},
		{"padded email", Form{Email: " ana@example.com ", Password: "longenough"}, MsgEmailInvalid, ""},
		{"valid", Form{Email: "ana@example.com", Password: "12345678"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.form)
			if errs.Email != tt.email {
				t.Errorf("Expected email error %q, got %q", tt.email, errs.Email)
			}
			if errs.Password != tt.password {
				t.Errorf("Expected password error %q, got %q", tt.password, errs.Password)
			}
		})
	}
}

func TestSubmit_InvalidSkipsNetwork(t *testing.T) {
	backend := &fakeAuth{}
	c := NewController(backend, nil, utils.NewNopLogger(), "")

	if c.Submit(context.Background(), Form{Email: "not-an-email", Password: "longenough"}) {
		t.Errorf("Expected invalid submit to fail")
	}
	if c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "12345"}) {
		t.Errorf("Expected short password submit to fail")
	}
	if backend.calls != 0 {
		t.Errorf("Expected no login calls, got %d", backend.calls)
	}
	if c.Snapshot().Errors.Password != MsgPasswordShort {
		t.Errorf("Expected password error, got %+v", c.Snapshot().Errors)
	}
}

func TestSubmit_FailureMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&api.StatusError{StatusCode: 401}, MsgInvalidCredentials},
		{fmt.Errorf("login: %w", &api.StatusError{StatusCode: 429}), MsgTooManyAttempts},
		{&api.StatusError{StatusCode: 500}, MsgGeneric},
		{errors.New("connection refused"), MsgGeneric},
	}

	for _, tt := range tests {
		c := NewController(&fakeAuth{err: tt.err}, nil, utils.NewNopLogger(), "")
		if c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "correct-horse"}) {
			t.Errorf("Expected failure for %v", tt.err)
		}
		state := c.Snapshot()
		if state.Errors.General != tt.want {
			t.Errorf("Expected %q for %v, got %q", tt.want, tt.err, state.Errors.General)
		}
		if state.Loading {
			t.Errorf("Expected loading cleared after %v", tt.err)
		}
	}
}

func TestSubmit_SuccessNavigates(t *testing.T) {
	backend := &fakeAuth{session: &api.Session{AccessToken: "tok"}}
	c := NewController(backend, nil, utils.NewNopLogger(), "")

	var route string
	var loadingSeen bool
	c.Navigate = func(r string) { route = r }
	c.OnChange = func(s State) {
		if s.Loading {
			loadingSeen = true
		}
	}

	if !c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "correct-horse"}) {
		t.Fatalf("Expected success")
	}
	if route != DefaultRedirect {
		t.Errorf("Expected redirect to %s, got %q", DefaultRedirect, route)
	}
	if !loadingSeen || c.Snapshot().Loading {
		t.Errorf("Expected loading set during the call and cleared after")
	}
}

func TestSubmit_OnSuccessOverridesNavigate(t *testing.T) {
	backend := &fakeAuth{session: &api.Session{AccessToken: "tok"}}
	c := NewController(backend, nil, utils.NewNopLogger(), "/achievements")

	navigated := false
	var got *api.Session
	c.Navigate = func(string) { navigated = true }
	c.OnSuccess = func(s *api.Session) { got = s }

	c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "correct-horse"})
	if navigated || got == nil || got.AccessToken != "tok" {
		t.Errorf("Expected OnSuccess only, navigated=%v session=%+v", navigated, got)
	}
	if c.RedirectTo() != "/achievements" {
		t.Errorf("Expected custom redirect, got %q", c.RedirectTo())
	}
}

func TestSubmit_RememberMe(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	backend := &fakeAuth{session: &api.Session{AccessToken: "tok", ExpiresAt: exp}}
	store := &memStore{}
	c := NewController(backend, store, utils.NewNopLogger(), "")

	c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "correct-horse", Remember: true})
	if store.session == nil || store.session.Token != "tok" || store.session.Email != "ana@example.com" {
		t.Fatalf("Expected session remembered, got %+v", store.session)
	}

	c.Submit(context.Background(), Form{Email: "ana@example.com", Password: "correct-horse"})
	if store.session != nil {
		t.Errorf("Expected stored session cleared without remember-me")
	}
}

func TestRestoreAndSignOut(t *testing.T) {
	now := time.Now()
	store := &memStore{session: &db.StoredSession{Token: "tok", Email: "ana@example.com", ExpiresAt: now.Add(time.Hour)}}
	holder := &tokenHolder{}

	email, ok, err := Restore(store, holder, now)
	if err != nil || !ok || email != "ana@example.com" || holder.token != "tok" {
		t.Errorf("Expected restored session, got %q %v %v token=%q", email, ok, err, holder.token)
	}

	if err := SignOut(store, holder); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if holder.token != "" || store.session != nil {
		t.Errorf("Expected token and session cleared")
	}

	store.session = &db.StoredSession{Token: "old", ExpiresAt: now.Add(-time.Minute)}
	holder.token = ""
	_, ok, _ = Restore(store, holder, now)
	if ok || holder.token != "" || store.session != nil {
		t.Errorf("Expired session should be cleared, not restored")
	}

	_, ok, _ = Restore(store, holder, now)
	if ok {
		t.Errorf("Expected nothing to restore")
	}
}
