package domain

import "errors"

// Sentinel errors returned by services and repositories. Handlers translate
// these into HTTP statuses; everything else is treated as an internal failure.
var (
	// ErrDuplicateAccount is returned when an account already exists for the
	// requested email.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrUnknownAccount is returned when no user record matches the lookup.
	ErrUnknownAccount = errors.New("account not found")

	// ErrBadCredentials covers both unknown-email and wrong-password login
	// failures so the response never reveals which one occurred.
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrUserTypeMismatch is returned when login requests a user type that
	// does not match the stored record.
	ErrUserTypeMismatch = errors.New("user type mismatch")

	// ErrTokenExpired is returned when a token's embedded expiry has passed,
	// or when a single-use reset token has already been consumed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed is returned when a token fails signature verification,
	// cannot be parsed, or carries the wrong claim shape.
	ErrTokenMalformed = errors.New("token malformed or forged")

	// ErrNotificationFailed indicates the outbound email collaborator failed.
	// Non-fatal for account creation; fatal for explicit reset requests.
	ErrNotificationFailed = errors.New("notification failed")

	// ErrNotFound is the generic missing-record error for content lookups.
	ErrNotFound = errors.New("not found")
)
