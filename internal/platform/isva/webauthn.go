package isva

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dropDatabas3/authgate/internal/platform"
)

func (c *Client) fido2Path(suffix string) string {
	return "/mga/sps/fido2/" + c.rpID + suffix
}

// GenerateChallenge creates attestation or assertion options.
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
		return nil, fmt.Errorf("isva: unknown challenge type %q", typ)
	}

	status, raw, err := c.postJSON(ctx, path, token, body)
	if err != nil {
		return nil, fmt.Errorf("isva: generate %s options: %w", typ, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("isva: generate %s options: status %d: %s", typ, status, raw)
	}
	return &platform.FIDO2Challenge{Type: typ, Options: raw}, nil
}

// CreateCredential registers a credential from an attestation result.
func (c *Client) CreateCredential(ctx context.Context, token string, in platform.CredentialCreation) error {
	body := map[string]any{
		"type":              "public-key",
		"nickname":          in.Nickname,
		"clientDataJSON":    in.ClientDataJSON,
		"attestationObject": in.AttestationObject,
		"id":                in.CredentialID,
	}
	status, raw, err := c.postJSON(ctx, c.fido2Path("/attestation/result"), token, body)
	if err != nil {
		return fmt.Errorf("isva: attestation result: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("isva: attestation result: status %d: %s", status, raw)
	}
	return nil
}

// VerifyCredential verifies an assertion result. The appliance's mediator
// script shapes the response (attributes.responseData); the raw payload is
// handed back for the gateway's normalizer.
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
		return nil, fmt.Errorf("isva: assertion result: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("isva: assertion result: status %d: %s", status, raw)
	}
	return raw, nil
}
