package isv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dropDatabas3/authgate/internal/platform"
)

const (
	otpPath   = "/v2.0/factors/emailotp/transient/verifications"
	usersPath = "/v2.0/Users"
)

type otpVerification struct {
	ID          string `json:"id"`
	Expiry      string `json:"expiry"`
	Correlation string `json:"correlation"`
}

// GenerateOTP starts a transient email-OTP verification. Verify delivers the
// code out-of-band and returns the verification id and expiry.
func (c *Client) GenerateOTP(ctx context.Context, token, email string) (*platform.OTPChallenge, error) {
	body := map[string]string{"emailAddress": email}
	status, raw, err := c.postJSON(ctx, otpPath, token, body)
	if err != nil {
		return nil, fmt.Errorf("isv: generate otp: %w", err)
	}
	if status != http.StatusCreated && status != http.StatusAccepted {
		return nil, fmt.Errorf("isv: generate otp: status %d: %s", status, raw)
	}

	var v otpVerification
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("isv: decode otp verification: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339, v.Expiry)
	if err != nil {
		return nil, fmt.Errorf("isv: otp verification expiry: %w", err)
	}
	return &platform.OTPChallenge{
		TransactionID: v.ID,
		Expiry:        expiry,
		Correlation:   v.Correlation,
	}, nil
}

// VerifyUser submits the OTP for a pending verification and, on success,
// provisions the user via SCIM. Returns the SCIM id of the created user.
func (c *Client) VerifyUser(ctx context.Context, token, transactionID, otp string, pending platform.PendingSignup) (string, error) {
	status, raw, err := c.postJSON(ctx, otpPath+"/"+transactionID, token, map[string]string{"otp": otp})
	if err != nil {
		return "", fmt.Errorf("isv: verify otp: %w", err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return "", fmt.Errorf("isv: verify otp: status %d: %s", status, raw)
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
		return "", fmt.Errorf("isv: create user: %w", err)
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("isv: create user: status %d: %s", status, raw)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("isv: decode created user: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("isv: create user: response carried no id")
	}
	return created.ID, nil
}
