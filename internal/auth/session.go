package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/logger"
	"github.com/fragmede/sesame/internal/storage"
)

// Storage persists the credential pair. Implementations must write and
// clear token and username together.
type Storage interface {
	LoadCredentials() (token, username string, err error)
	SaveCredentials(token, username string) error
	ClearCredentials() error
}

// Session is the client-side authentication state. A token being present
// is what makes the session authenticated.
//
// Actions are serialized: a second action waits for the first to settle.
// Accessors never block on an action in flight.
type Session struct {
	client *api.Client
	store  Storage
	log    *slog.Logger
	sem    *semaphore.Weighted

	mu       sync.RWMutex
	token    string
	username string
	profile  *api.UserProfile
	state    ActionState
}

// New creates an unauthenticated session. Call Restore to pick up
// persisted credentials.
func New(client *api.Client, store Storage, log *slog.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{
		client: client,
		store:  store,
		log:    log.With(slog.String("component", "session")),
		sem:    semaphore.NewWeighted(1),
	}
}

// Restore loads persisted credentials into memory. It makes no network
// call and has no failure mode: unreadable storage means nothing is
// stored.
func (s *Session) Restore(ctx context.Context) {
	if err := s.sem.Acquire(context.WithoutCancel(ctx), 1); err != nil {
		return
	}
	defer s.sem.Release(1)

	token, username, err := s.store.LoadCredentials()
	if err != nil {
		s.log.Warn("restoring session", logger.Err(err))
		if errors.Is(err, storage.ErrPartialCredentials) {
			s.clearStorage()
		}
		return
	}
	if token == "" {
		s.log.Debug("no stored session")
		return
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()
	s.log.Info("session restored", slog.String("username", username))
}

// Reset drops all in-memory state without touching storage, returning
// the session to what New produced.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	s.profile = nil
	s.state = ActionState{}
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the logged-in username, or "".
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Profile returns the last fetched profile, or nil.
func (s *Session) Profile() *api.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// State returns the state of the most recent action.
func (s *Session) State() ActionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading reports whether an action is in flight.
func (s *Session) IsLoading() bool {
	return s.State().Loading()
}

// LastError returns the message of the last failed action, or "".
func (s *Session) LastError() string {
	return s.State().Err()
}

// NewRequest builds an API request carrying the current token, if any.
func (s *Session) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	return s.client.NewRequest(ctx, method, path, body, s.Token())
}

// begin marks an action in flight and clears the previous error. The
// returned func settles a still-in-flight state to idle, covering exits
// that did not record an outcome.
func (s *Session) begin() func() {
	s.setState(ActionState{Status: StatusInFlight})
	return func() {
		s.mu.Lock()
		if s.state.Status == StatusInFlight {
			s.state = ActionState{}
		}
		s.mu.Unlock()
	}
}

func (s *Session) setState(st ActionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Session) fail(kind ErrorKind, message string) Result {
	s.setState(ActionState{Status: StatusFailed, Kind: kind, Message: message})
	return Result{Kind: kind, Message: message}
}

// authenticated installs a fresh credential pair.
func (s *Session) authenticated(token, username string) {
	if err := s.store.SaveCredentials(token, username); err != nil {
		// Do not leave an older pair behind to be restored next start.
		s.log.Error("persisting session", slog.String("username", username), logger.Err(err))
		s.clearStorage()
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.profile = nil
	s.state = ActionState{Status: StatusSucceeded}
	s.mu.Unlock()
}

// clear drops credentials, profile and error from memory and storage.
func (s *Session) clear() {
	s.clearStorage()

	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.profile = nil
	s.state = ActionState{}
	s.mu.Unlock()
}

// clearStorage retries once. A pair that still cannot be removed is
// logged and will be restored on the next start.
func (s *Session) clearStorage() {
	err := s.store.ClearCredentials()
	if err != nil {
		s.log.Warn("clearing stored session, retrying", logger.Err(err))
		err = s.store.ClearCredentials()
	}
	if err != nil {
		s.log.Error("clearing stored session", logger.Err(err))
	}
}
