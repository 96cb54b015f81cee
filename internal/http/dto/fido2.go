package dto

import "encoding/json"

// ChallengeRequest asks for WebAuthn ceremony options.
type ChallengeRequest struct {
	// Type is "attestation" or "assertion".
	Type string `json:"type"`
	// DisplayName only applies to attestation challenges.
	DisplayName string `json:"displayName,omitempty"`
}

// ChallengeResponse carries the opaque ceremony options.
type ChallengeResponse struct {
	Type    string          `json:"type"`
	Options json.RawMessage `json:"options"`
}

// RegisterRequest stores a credential from an attestation result. All
// cryptographic fields are base64 blobs forwarded verbatim.
type RegisterRequest struct {
	Nickname          string `json:"nickname"`
	ClientDataJSON    string `json:"clientDataJSON"`
	AttestationObject string `json:"attestationObject"`
	CredentialID      string `json:"credentialId"`
}

// SigninRequest verifies an assertion result.
type SigninRequest struct {
	ClientDataJSON    string `json:"clientDataJSON"`
	AuthenticatorData string `json:"authenticatorData"`
	CredentialID      string `json:"credentialId"`
	Signature         string `json:"signature"`
	UserHandle        string `json:"userHandle,omitempty"`
}
