package dto

import "time"

// SignupRequest starts self-service sign-up.
type SignupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignupResponse is the OTP challenge returned to the caller unchanged.
type SignupResponse struct {
	TransactionID string    `json:"transactionId"`
	Expiry        time.Time `json:"expiry"`
	Correlation   string    `json:"correlation,omitempty"`
}

// ValidateRequest completes sign-up with the delivered OTP.
type ValidateRequest struct {
	TransactionID string `json:"transactionId"`
	OTP           string `json:"otp"`
}
