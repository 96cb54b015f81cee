package platform

import (
	"encoding/json"
	"time"
)

// Token is a bearer token issued by a backend platform. Immutable: tokens
// are replaced, never mutated.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	// ExpiresIn is seconds remaining at time of issuance.
	ExpiresIn int `json:"expires_in"`
}

// OTPChallenge is the backend's answer to an OTP generation request. It is
// returned to the caller unchanged; the gateway only reads TransactionID
// and Expiry.
type OTPChallenge struct {
	TransactionID string    `json:"transactionId"`
	Expiry        time.Time `json:"expiry"`
	// Correlation is the backend-supplied prompt prefix shown alongside
	// the OTP in the delivery mail.
	Correlation string `json:"correlation,omitempty"`
}

// PendingSignup is the sign-up state held between signup and validate,
// keyed by transaction id. Created once, consumed exactly once.
type PendingSignup struct {
	TransactionID string `json:"transactionId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// ChallengeType discriminates the two WebAuthn ceremonies.
type ChallengeType string

const (
	// Attestation registers a new credential.
	Attestation ChallengeType = "attestation"
	// Assertion proves possession of an existing credential.
	Assertion ChallengeType = "assertion"
)

// FIDO2Challenge is an opaque challenge payload for a client-side WebAuthn
// ceremony. Options is forwarded verbatim; the gateway never inspects it.
type FIDO2Challenge struct {
	Type    ChallengeType   `json:"type"`
	Options json.RawMessage `json:"options"`
}

// CredentialCreation carries the attestation result of a WebAuthn
// registration ceremony. All cryptographic fields are opaque base64 blobs
// forwarded verbatim to the backend.
type CredentialCreation struct {
	Nickname          string
	ClientDataJSON    string
	AttestationObject string
	CredentialID      string
}

// CredentialVerification carries the assertion result of a WebAuthn sign-in
// ceremony. All cryptographic fields are opaque base64 blobs forwarded
// verbatim to the backend.
type CredentialVerification struct {
	ClientDataJSON    string
	AuthenticatorData string
	CredentialID      string
	Signature         string
	UserHandle        string
}
