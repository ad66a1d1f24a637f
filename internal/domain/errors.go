package domain

import "fmt"

// The five error kinds that may cross a component boundary. Everything
// else is treated as an infrastructure fault by the transport layer.

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ConflictError represents a uniqueness violation.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e ConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Resource == "" {
		return "already exists"
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ValidationError represents malformed or out-of-range input.
type ValidationError struct {
	Detail string
}

func (e ValidationError) Error() string {
	if e.Detail == "" {
		return "invalid input"
	}
	return e.Detail
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// AuthenticationError represents missing or bad credentials. Login
// failures share one message so callers cannot enumerate accounts.
type AuthenticationError struct {
	Detail string
}

func (e AuthenticationError) Error() string {
	if e.Detail == "" {
		return "invalid credentials"
	}
	return e.Detail
}

func (e AuthenticationError) Is(target error) bool {
	_, ok := target.(AuthenticationError)
	if ok {
		return true
	}
	_, ok = target.(*AuthenticationError)
	return ok
}

// AuthorizationError represents an authenticated caller lacking the
// required role.
type AuthorizationError struct {
	Detail string
}

func (e AuthorizationError) Error() string {
	if e.Detail == "" {
		return "insufficient permissions"
	}
	return e.Detail
}

func (e AuthorizationError) Is(target error) bool {
	_, ok := target.(AuthorizationError)
	if ok {
		return true
	}
	_, ok = target.(*AuthorizationError)
	return ok
}

// Sentinels for errors.Is matching.
var (
	ErrNotFound       = NotFoundError{}
	ErrConflict       = ConflictError{}
	ErrValidation     = ValidationError{}
	ErrAuthentication = AuthenticationError{}
	ErrAuthorization  = AuthorizationError{}
)
