// Package controllers holds the thin HTTP layer: decode the DTO, check
// required fields, call the orchestrator, map failures to the error
// catalogue. No business logic lives here.
package controllers

import (
	"context"

	"github.com/dropDatabas3/authgate/internal/platform"
)

// Gateway is the orchestrator surface the controllers depend on.
type Gateway interface {
	Authenticate(ctx context.Context, username, password string) (*platform.Token, error)
	Signup(ctx context.Context, name, email string) (*platform.OTPChallenge, error)
	Validate(ctx context.Context, transactionID, otp string) (*platform.Token, error)
	Challenge(ctx context.Context, typ platform.ChallengeType, displayName, bearer string) (*platform.FIDO2Challenge, error)
	Register(ctx context.Context, bearer string, in platform.CredentialCreation) error
	Signin(ctx context.Context, in platform.CredentialVerification) (*platform.Token, error)
}

// Controllers aggregates the gateway's HTTP controllers.
type Controllers struct {
	Auth   *AuthController
	Signup *SignupController
	FIDO2  *FIDO2Controller
}

// New wires all controllers to the orchestrator.
func New(gw Gateway) *Controllers {
	return &Controllers{
		Auth:   NewAuthController(gw),
		Signup: NewSignupController(gw),
		FIDO2:  NewFIDO2Controller(gw),
	}
}
