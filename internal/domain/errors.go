package domain

import "errors"

// Sentinel errors shared across services and repositories. The HTTP
// layer maps each one to a status code; nothing below it touches HTTP.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers a bad signature, malformed claims, or an
	// expired token. Verification is all-or-nothing.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrDeviceNotFound = errors.New("device not found")
	ErrDeviceExists   = errors.New("device with this MAC already registered")

	// ErrInvalidMAC rejects wake targets that do not normalize to 12
	// hex characters.
	ErrInvalidMAC = errors.New("invalid MAC address")

	// ErrSendFailed reports a transport-level failure dispatching a
	// magic packet. It says nothing about whether the device woke up.
	ErrSendFailed = errors.New("failed to send wake packet")

	// ErrTooManyRequests is returned by the login rate limiter.
	ErrTooManyRequests = errors.New("too many attempts, try again later")
)
