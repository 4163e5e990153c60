package services

import "errors"

// Error values returned by the services. Handlers match them with
// errors.Is to pick a response status.
var (
	// ErrDuplicate is returned when registering with a username or email
	// that already exists.
	ErrDuplicate = errors.New("already registered")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately not
	// distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or is expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when an authenticated caller is not the
	// owner of the record it is trying to mutate.
	ErrForbidden = errors.New("not authorized")

	// ErrValidation is returned when a mutation would persist a value that
	// violates a required-field constraint.
	ErrValidation = errors.New("validation failed")
)
