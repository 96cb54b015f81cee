package platform

import "context"

// UserClient covers user self-service against the backend platform.
type UserClient interface {
	// GenerateOTP asks the backend to deliver a transient email OTP and
	// returns the challenge holding the transaction id and expiry.
	GenerateOTP(ctx context.Context, token, email string) (*OTPChallenge, error)

	// VerifyUser submits the OTP for a pending transaction. On success it
	// returns the backend's opaque user identifier.
	VerifyUser(ctx context.Context, token, transactionID, otp string, pending PendingSignup) (string, error)
}

// WebAuthnClient covers the backend's FIDO2 relying-party API. All
// cryptographic verification happens backend-side.
type WebAuthnClient interface {
	// GenerateChallenge creates attestation or assertion options.
	// displayName is only meaningful for attestation.
	GenerateChallenge(ctx context.Context, token, displayName string, typ ChallengeType) (*FIDO2Challenge, error)

	// CreateCredential registers a new credential from an attestation result.
	CreateCredential(ctx context.Context, token string, in CredentialCreation) error

	// VerifyCredential verifies an assertion result and returns the raw
	// response payload. The payload shape differs per platform; the
	// gateway's normalizer interprets it.
	VerifyCredential(ctx context.Context, token string, in CredentialVerification) ([]byte, error)
}

// TokenClient covers the backend's OAuth token endpoint.
type TokenClient interface {
	// PasswordGrant exchanges end-user credentials for a token
	// (resource-owner password grant, end-user client pair).
	PasswordGrant(ctx context.Context, username, password string) (*Token, error)

	// ClientCredentialsGrant obtains a service-level token (API client pair).
	ClientCredentialsGrant(ctx context.Context) (*Token, error)

	// JWTBearerGrant exchanges a signed assertion for a token
	// (RFC 7523, end-user client pair).
	JWTBearerGrant(ctx context.Context, assertion string) (*Token, error)

	// SignedAssertion builds an HS256 assertion over the end-user client
	// secret for the given subject and issuer, suitable for JWTBearerGrant.
	SignedAssertion(subject, issuer string) (string, error)
}
