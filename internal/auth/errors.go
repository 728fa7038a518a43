package auth

import "fmt"

// ErrorKind classifies a failed action.
type ErrorKind string

const (
	// KindCredentials means the server rejected a login.
	KindCredentials ErrorKind = "credentials"
	// KindRegistration means the server rejected a registration.
	KindRegistration ErrorKind = "registration"
	// KindServer covers transport failures, 5xx and malformed replies.
	KindServer ErrorKind = "server"
	// KindUnauthorized means the server rejected the current token.
	KindUnauthorized ErrorKind = "unauthorized"
)

// User-facing messages used when the server supplies none.
const (
	msgConnection   = "Unable to reach the server. Please try again later."
	msgCredentials  = "Invalid username or password."
	msgRegistration = "Registration failed."
	msgDelete       = "Account deletion failed."
	msgExpired      = "Your session has expired. Please log in again."
)

// Result is the outcome of Login, Register and DeleteAccount.
type Result struct {
	Success bool
	Kind    ErrorKind
	Message string
}

// Error is returned by FetchCurrentUser.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// ErrUnauthorized matches any *Error of kind KindUnauthorized with errors.Is.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: msgExpired}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
