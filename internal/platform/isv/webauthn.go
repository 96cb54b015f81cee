package isv

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/authgate/internal/platform"
)

func (c *Client) fido2Path(suffix string) string {
	return "/v2.0/factors/fido2/relyingparties/" + c.rpID + suffix
}

// GenerateChallenge creates attestation or assertion options for a
// client-side WebAuthn ceremony. The options payload is opaque to the
// gateway and returned verbatim.
func (c *Client) GenerateChallenge(ctx context.Context, token, displayName string, typ platform.ChallengeType) (*platform.FIDO2Challenge, error) {
	var path string
	body := map[string]string{}
	switch typ {
	case platform.Attestation:
		path = c.fido2Path("/attestation/options")
		if displayName != "" {
			body["displayName"] = displayName
		}
	case platform.Assertion:
		path = c.fido2Path("/assertion/options")
	default:
		return nil, fmt.Errorf("isv: unknown challenge type %q", typ)
	}

	status, raw, err := c.postJSON(ctx, path, token, body)
	if err != nil {
		return nil, fmt.Errorf("isv: generate %s options: %w", typ, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("isv: generate %s options: status %d: %s", typ, status, raw)
	}
	return &platform.FIDO2Challenge{Type: typ, Options: raw}, nil
}

// CreateCredential registers a credential from an attestation result.
func (c *Client) CreateCredential(ctx context.Context, token string, in platform.CredentialCreation) error {
	body := map[string]any{
		"type":              "public-key",
		"enabled":           true,
		"nickname":          in.Nickname,
		"clientDataJSON":    in.ClientDataJSON,
		"attestationObject": in.AttestationObject,
		"id":                in.CredentialID,
	}
	status, raw, err := c.postJSON(ctx, c.fido2Path("/attestation/result"), token, body)
	if err != nil {
		return fmt.Errorf("isv: attestation result: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("isv: attestation result: status %d: %s", status, raw)
	}
	return nil
}

// VerifyCredential verifies an assertion result. Verify answers with a
// pre-built signed assertion; the raw payload is handed back for the
// gateway's normalizer.
func (c *Client) VerifyCredential(ctx context.Context, token string, in platform.CredentialVerification) ([]byte, error) {
	body := map[string]any{
		"type":              "public-key",
		"clientDataJSON":    in.ClientDataJSON,
		"authenticatorData": in.AuthenticatorData,
		"id":                in.CredentialID,
		"signature":         in.Signature,
		"userHandle":        in.UserHandle,
	}
	status, raw, err := c.postJSON(ctx, c.fido2Path("/assertion/result"), token, body)
	if err != nil {
		return nil, fmt.Errorf("isv: assertion result: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("isv: assertion result: status %d: %s", status, raw)
	}
	return raw, nil
}
