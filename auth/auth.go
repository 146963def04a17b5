// Package auth validates the login form and drives the login flow.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"apex-client/api"
	"apex-client/db"
	"apex-client/utils"
)

const (
	MinPasswordLength = 8
	DefaultRedirect   = "/dashboard"
)

const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordShort    = "Password must be at least 8 characters"

	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgTooManyAttempts    = "Too many login attempts. Please try again later."
	MsgGeneric            = "An error occurred. Please try again later."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form holds the login form values
type Form struct {
	Email    string
	Password string
	Remember bool
}

// FieldErrors maps form fields to validation messages
type FieldErrors struct {
	Email    string
	Password string
	General  string
}

// Empty reports whether no error is set
func (e FieldErrors) Empty() bool {
	return e.Email == "" && e.Password == "" && e.General == ""
}

// Validate checks every field and collects all violations
func Validate(f Form) FieldErrors {
	var errs FieldErrors

	switch {
	case strings.TrimSpace(f.Email) == "":
		errs.Email = MsgEmailRequired
	case !emailPattern.MatchString(f.Email):
		errs.Email = MsgEmailInvalid
	}

	switch {
	case f.Password == "":
		errs.Password = MsgPasswordRequired
	case len([]rune(f.Password)) < MinPasswordLength:
		errs.Password = MsgPasswordShort
	}

	return errs
}

// GeneralMessage maps a login failure to the message shown above the form
func GeneralMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, api.ErrRateLimited):
		return MsgTooManyAttempts
	default:
		return MsgGeneric
	}
}

// Authenticator performs the login call
type Authenticator interface {
	Login(ctx context.Context, email, password string, remember bool) (*api.Session, error)
}

// SessionStore persists remembered sessions
type SessionStore interface {
	SaveSession(s db.StoredSession) error
	LoadSession() (*db.StoredSession, error)
	ClearSession() error
}

// TokenSetter receives a restored token
type TokenSetter interface {
	SetToken(token string)
}

// Restore loads a remembered session and hands its token to client. Expired
// sessions are cleared. It returns the session email when one was restored.
func Restore(store SessionStore, client TokenSetter, now time.Time) (string, bool, error) {
	stored, err := store.LoadSession()
	if err != nil {
		return "", false, err
	}
	if stored == nil {
		return "", false, nil
	}
	if !stored.ExpiresAt.IsZero() && !now.Before(stored.ExpiresAt) {
		return "", false, store.ClearSession()
	}
	client.SetToken(stored.Token)
	return stored.Email, true, nil
}

// State is a snapshot of the login form status
type State struct {
	Loading bool
	Errors  FieldErrors
}

// Controller runs form submission
type Controller struct {
	auth       Authenticator
	store      SessionStore
	logger     *utils.Logger
	redirectTo string

	mu    sync.Mutex
	state State

	// OnSuccess, when set, replaces navigation after a successful login
	OnSuccess func(*api.Session)
	// Navigate receives the redirect target when OnSuccess is nil
	Navigate func(route string)
	// OnChange is called after every state change
	OnChange func(State)
}

// NewController creates a login controller. store may be nil.
func NewController(auth Authenticator, store SessionStore, logger *utils.Logger, redirectTo string) *Controller {
	if strings.TrimSpace(redirectTo) == "" {
		redirectTo = DefaultRedirect
	}
	return &Controller{
		auth:       auth,
		store:      store,
		logger:     logger,
		redirectTo: redirectTo,
	}
}

// RedirectTo returns the navigation target used after login
func (c *Controller) RedirectTo() string {
	return c.redirectTo
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) set(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snap := c.state
	c.mu.Unlock()

	if c.OnChange != nil {
		c.OnChange(snap)
	}
}

// Submit validates the form and logs in. It returns true on success.
func (c *Controller) Submit(ctx context.Context, f Form) bool {
	if c.Snapshot().Loading {
		return false
	}

	errs := Validate(f)
	if !errs.Empty() {
		c.set(func(s *State) { s.Errors = errs })
		return false
	}

	c.set(func(s *State) {
		s.Errors = FieldErrors{}
		s.Loading = true
	})

	session, err := c.auth.Login(ctx, f.Email, f.Password, f.Remember)
	if err != nil {
		c.logger.Warn("Login failed for %s: %v", f.Email, err)
		c.set(func(s *State) {
			s.Errors = FieldErrors{General: GeneralMessage(err)}
			s.Loading = false
		})
		return false
	}

	c.remember(f, session)
	c.set(func(s *State) { s.Loading = false })
	c.logger.Info("Signed in as %s", f.Email)

	if c.OnSuccess != nil {
		c.OnSuccess(session)
	} else if c.Navigate != nil {
		c.Navigate(c.redirectTo)
	}
	return true
}

func (c *Controller) remember(f Form, session *api.Session) {
	if c.store == nil {
		return
	}
	if !f.Remember {
		if err := c.store.ClearSession(); err != nil {
			c.logger.Warn("Failed to clear stored session: %v", err)
		}
		return
	}
	email := session.User.Email
	if email == "" {
		email = f.Email
	}
	stored := db.StoredSession{Token: session.AccessToken, Email: email, ExpiresAt: session.ExpiresAt}
	if err := c.store.SaveSession(stored); err != nil {
		c.logger.Warn("Failed to remember session: %v", err)
	}
}

// SignOut forgets the stored session and the client token
func SignOut(store SessionStore, client TokenSetter) error {
	client.SetToken("")
	if store == nil {
		return nil
	}
	return store.ClearSession()
}
