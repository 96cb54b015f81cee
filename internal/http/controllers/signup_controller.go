package controllers

import (
	"net/http"

	"github.com/dropDatabas3/authgate/internal/http/dto"
	httperrors "github.com/dropDatabas3/authgate/internal/http/errors"
	"github.com/dropDatabas3/authgate/internal/http/helpers"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
)

// SignupController handles POST /v1/signup and POST /v1/signup/validate.
type SignupController struct {
	gw Gateway
}

func NewSignupController(gw Gateway) *SignupController {
	return &SignupController{gw: gw}
}

// Signup starts self-service sign-up with an email OTP.
func (c *SignupController) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SignupController.Signup"))

	var req dto.SignupRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("name and email are required"))
		return
	}

	ch, err := c.gw.Signup(ctx, req.Name, req.Email)
	if err != nil {
		log.Warn("signup failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.SignupResponse{
		TransactionID: ch.TransactionID,
		Expiry:        ch.Expiry,
		Correlation:   ch.Correlation,
	})
}

// Validate completes sign-up with the delivered OTP and returns a token.
func (c *SignupController) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SignupController.Validate"))

	var req dto.ValidateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.TransactionID == "" || req.OTP == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("transactionId and otp are required"))
		return
	}

	tk, err := c.gw.Validate(ctx, req.TransactionID, req.OTP)
	if err != nil {
		log.Warn("validate failed", logger.TxnID(req.TransactionID), logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: tk.AccessToken,
		TokenType:   tk.TokenType,
		ExpiresIn:   tk.ExpiresIn,
	})
}
