package auth

import (
	"context"
	"log/slog"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/logger"
)

// Login authenticates with username and password. Only a successful login
// changes the stored credentials.
func (s *Session) Login(ctx context.Context, creds api.Credentials) Result {
	return s.authenticate(ctx, "login", creds, s.client.Login, KindCredentials, msgCredentials)
}

// Register creates an account and, on success, logs into it.
func (s *Session) Register(ctx context.Context, creds api.Credentials) Result {
	return s.authenticate(ctx, "register", creds, s.client.Register, KindRegistration, msgRegistration)
}

type authCall func(context.Context, api.Credentials) (*api.AuthResponse, error)

func (s *Session) authenticate(ctx context.Context, action string, creds api.Credentials, call authCall, rejected ErrorKind, fallback string) Result {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Result{Kind: KindServer, Message: msgConnection}
	}
	defer s.sem.Release(1)
	defer s.begin()()

	log := s.log.With(slog.String("action", action), slog.String("username", creds.Username))

	resp, err := call(ctx, creds)
	switch {
	case api.IsUnauthorized(err):
		log.Warn("rejected", slog.String("kind", string(rejected)))
		return s.fail(rejected, fallback)
	case err != nil:
		log.Error("request failed", slog.Bool("server_error", api.IsServerError(err)), logger.Err(err))
		return s.fail(KindServer, msgConnection)
	case !resp.Success:
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		log.Warn("rejected", slog.String("kind", string(rejected)), slog.String("message", msg))
		return s.fail(rejected, msg)
	case resp.Token == "":
		log.Error("success reply without token")
		return s.fail(KindServer, msgConnection)
	}

	username := resp.Username
	if username == "" {
		username = creds.Username
	}
	s.authenticated(resp.Token, username)
	log.Info("authenticated")
	return Result{Success: true}
}

// Logout tells the server the session is over and then clears it locally,
// whatever the server answered. It is safe to call when logged out.
func (s *Session) Logout(ctx context.Context) {
	// Logout must always complete, so waiting for the lock ignores ctx.
	s.sem.Acquire(context.WithoutCancel(ctx), 1)
	defer s.sem.Release(1)
	defer s.begin()()

	username := s.Username()
	if _, err := s.client.Logout(ctx, s.Token()); err != nil {
		s.log.Warn("logout notification failed", slog.String("username", username), logger.Err(err))
	}
	s.clear()
	s.log.Info("logged out", slog.String("username", username))
}

// DeleteAccount deletes the current account. On success the session is
// cleared; on failure it is left as it was.
func (s *Session) DeleteAccount(ctx context.Context) Result {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Result{Kind: KindServer, Message: msgConnection}
	}
	defer s.sem.Release(1)
	defer s.begin()()

	username := s.Username()
	log := s.log.With(slog.String("action", "delete-account"), slog.String("username", username))

	resp, err := s.client.DeleteAccount(ctx, s.Token())
	switch {
	case api.IsUnauthorized(err):
		log.Warn("token rejected")
		return s.fail(KindUnauthorized, msgExpired)
	case err != nil:
		log.Error("request failed", slog.Bool("server_error", api.IsServerError(err)), logger.Err(err))
		return s.fail(KindServer, msgConnection)
	case !resp.Success:
		msg := resp.Message
		if msg == "" {
			msg = msgDelete
		}
		log.Warn("rejected", slog.String("message", msg))
		return s.fail(KindServer, msg)
	}

	s.clear()
	s.setState(ActionState{Status: StatusSucceeded, Message: resp.Message})
	log.Info("account deleted")
	return Result{Success: true, Message: resp.Message}
}

// FetchCurrentUser loads the profile of the logged-in account. When the
// server rejects the token the session is cleared before the error is
// returned; the error then matches ErrUnauthorized.
func (s *Session) FetchCurrentUser(ctx context.Context) (*api.UserProfile, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &Error{Kind: KindServer, Message: msgConnection, Err: err}
	}
	defer s.sem.Release(1)
	defer s.begin()()

	profile, err := s.client.Me(ctx, s.Token())
	if api.IsUnauthorized(err) {
		s.log.Warn("token rejected, clearing session", slog.String("username", s.Username()))
		s.clear()
		return nil, &Error{Kind: KindUnauthorized, Message: msgExpired, Err: err}
	}
	if err != nil {
		s.log.Error("fetching current user", slog.Bool("server_error", api.IsServerError(err)), logger.Err(err))
		s.fail(KindServer, msgConnection)
		return nil, &Error{Kind: KindServer, Message: msgConnection, Err: err}
	}

	s.mu.Lock()
	s.profile = profile
	s.state = ActionState{Status: StatusSucceeded}
	s.mu.Unlock()
	return profile, nil
}
