package isva

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dropDatabas3/authgate/internal/platform"
)

const (
	otpPolicyPath = "/mga/sps/apiauthsvc/policy/otp"
	usersPath     = "/scim/v2.0/Users"
)

// apiauthState is the API authentication service's OTP state. StateId keys
// the pending policy run; the OTP mail is sent when the state is created.
type apiauthState struct {
	StateID     string `json:"stateId"`
	Expires     string `json:"expires"`
	Correlation string `json:"otp.user.otp-hint"`
}

// GenerateOTP starts an email-OTP policy run against the API authentication
// service. The appliance delivers the code out-of-band.
func (c *Client) GenerateOTP(ctx context.Context, token, email string) (*platform.OTPChallenge, error) {
	body := map[string]string{"username": email, "emailAddress": email}
	status, raw, err := c.postJSON(ctx, otpPolicyPath, token, body)
	if err != nil {
		return nil, fmt.Errorf("isva: generate otp: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("isva: generate otp: status %d: %s", status, raw)
	}

	var st apiauthState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("isva: decode otp state: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339, st.Expires)
	if err != nil {
		return nil, fmt.Errorf("isva: otp state expiry: %w", err)
	}
	return &platform.OTPChallenge{
		TransactionID: st.StateID,
		Expiry:        expiry,
		Correlation:   st.Correlation,
	}, nil
}

// VerifyUser completes the OTP policy run and provisions the user via SCIM.
// Returns the SCIM id of the created user.
func (c *Client) VerifyUser(ctx context.Context, token, transactionID, otp string, pending platform.PendingSignup) (string, error) {
	body := map[string]string{"stateId": transactionID, "otp.user.otp": otp}
	status, raw, err := c.postJSON(ctx, otpPolicyPath+"/"+transactionID, token, body)
	if err != nil {
		return "", fmt.Errorf("isva: verify otp: %w", err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return "", fmt.Errorf("isva: verify otp: status %d: %s", status, raw)
	}

	user := map[string]any{
		"schemas":  []string{"urn:ietf:params:scim:schemas:core:2.0:User"},
		"userName": pending.Email,
		"name":     map[string]string{"formatted": pending.Name},
		"emails": []map[string]any{
			{"type": "work", "value": pending.Email},
		},
		"active": true,
	}
	status, raw, err = c.postJSON(ctx, usersPath, token, user)
	if err != nil {
		return "", fmt.Errorf("isva: create user: %w", err)
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("isva: create user: status %d: %s", status, raw)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("isva: decode created user: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("isva: create user: response carried no id")
	}
	return created.ID, nil
}
