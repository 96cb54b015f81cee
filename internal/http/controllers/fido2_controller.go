package controllers

import (
	"net/http"

	"github.com/dropDatabas3/authgate/internal/http/dto"
	httperrors "github.com/dropDatabas3/authgate/internal/http/errors"
	"github.com/dropDatabas3/authgate/internal/http/helpers"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"github.com/dropDatabas3/authgate/internal/platform"
)

// FIDO2Controller handles the WebAuthn endpoints:
// POST /v1/fido2/challenge, /v1/fido2/register, /v1/fido2/signin.
type FIDO2Controller struct {
	gw Gateway
}

func NewFIDO2Controller(gw Gateway) *FIDO2Controller {
	return &FIDO2Controller{gw: gw}
}

// Challenge generates ceremony options. The bearer token is optional here;
// the orchestrator decides whether the requested type requires one.
func (c *FIDO2Controller) Challenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FIDO2Controller.Challenge"))

	var req dto.ChallengeRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	typ := platform.ChallengeType(req.Type)
	if typ != platform.Attestation && typ != platform.Assertion {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("type must be \"attestation\" or \"assertion\""))
		return
	}

	ch, err := c.gw.Challenge(ctx, typ, req.DisplayName, helpers.BearerToken(r))
	if err != nil {
		log.Warn("challenge failed", logger.ChallengeType(req.Type), logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.ChallengeResponse{
		Type:    string(ch.Type),
		Options: ch.Options,
	})
}

// Register stores a new credential. Requires a caller bearer token;
// success carries no body, only 201.
func (c *FIDO2Controller) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FIDO2Controller.Register"))

	var req dto.RegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.ClientDataJSON == "" || req.AttestationObject == "" || req.CredentialID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("clientDataJSON, attestationObject and credentialId are required"))
		return
	}

	err := c.gw.Register(ctx, helpers.BearerToken(r), platform.CredentialCreation{
		Nickname:          req.Nickname,
		ClientDataJSON:    req.ClientDataJSON,
		AttestationObject: req.AttestationObject,
		CredentialID:      req.CredentialID,
	})
	if err != nil {
		log.Warn("register failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Signin verifies an assertion result and returns a token.
func (c *FIDO2Controller) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FIDO2Controller.Signin"))

	var req dto.SigninRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.ClientDataJSON == "" || req.AuthenticatorData == "" || req.CredentialID == "" || req.Signature == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("clientDataJSON, authenticatorData, credentialId and signature are required"))
		return
	}

	tk, err := c.gw.Signin(ctx, platform.CredentialVerification{
		ClientDataJSON:    req.ClientDataJSON,
		AuthenticatorData: req.AuthenticatorData,
		CredentialID:      req.CredentialID,
		Signature:         req.Signature,
		UserHandle:        req.UserHandle,
	})
	if err != nil {
		log.Warn("signin failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: tk.AccessToken,
		TokenType:   tk.TokenType,
		ExpiresIn:   tk.ExpiresIn,
	})
}
