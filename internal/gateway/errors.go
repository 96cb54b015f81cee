package gateway

import "errors"

// Caller-visible error kinds. Backend call failures are not in this list:
// they are wrapped with context and re-raised unchanged, never reinterpreted.
var (
	// ErrUnauthorized signals a missing caller bearer token on an
	// operation that requires one (attestation challenge, register).
	ErrUnauthorized = errors.New("missing or invalid bearer token")

	// ErrChallengeNotFound signals an unknown or expired OTP transaction.
	ErrChallengeNotFound = errors.New("otp challenge not found or expired")

	// ErrChallengeExpired signals an OTP challenge whose backend expiry
	// had already passed when signup tried to cache it.
	ErrChallengeExpired = errors.New("otp challenge expired before it could be stored")

	// ErrParseResponse signals a sign-in verification payload that did
	// not match the shape expected for the active platform.
	ErrParseResponse = errors.New("could not parse assertion response")
)
