package controllers

import (
	"net/http"

	"github.com/dropDatabas3/authgate/internal/http/dto"
	httperrors "github.com/dropDatabas3/authgate/internal/http/errors"
	"github.com/dropDatabas3/authgate/internal/http/helpers"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
)

// AuthController handles POST /v1/auth/token.
type AuthController struct {
	gw Gateway
}

func NewAuthController(gw Gateway) *AuthController {
	return &AuthController{gw: gw}
}

// Token performs password sign-in.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Token"))

	var req dto.TokenRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("username and password are required"))
		return
	}

	tk, err := c.gw.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn("authentication failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.FromGateway(err))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: tk.AccessToken,
		TokenType:   tk.TokenType,
		ExpiresIn:   tk.ExpiresIn,
	})
}
