package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user id or username does not resolve to a stored user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput is returned for a missing subject or malformed references.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrTokenMissing is returned when the request carries no bearer token.
	ErrTokenMissing = errors.New("authorization token missing or malformed")

	// ErrTokenExpired is returned for a token past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for a token with a bad signature or shape.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenRevoked is returned for a token that was logged out.
	ErrTokenRevoked = errors.New("token has been revoked")

	// ErrEmptySecret is returned when the token signer has no secret.
	ErrEmptySecret = errors.New("token secret cannot be empty")
)
