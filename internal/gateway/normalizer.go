package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"github.com/dropDatabas3/authgate/internal/platform"
)

// The two backends answer the assertion-result call with structurally
// different payloads. Verify Access hands back a finished access token
// (shaped by its mediator script); Verify hands back a signed assertion
// that still has to go through a JWT-bearer exchange. This asymmetry is a
// real contract difference between the products, not something to smooth
// over here.

type isvaSigninResponse struct {
	Attributes struct {
		ResponseData struct {
			AccessToken string `json:"access_token"`
		} `json:"responseData"`
	} `json:"attributes"`
}

type isvSigninResponse struct {
	Assertion string `json:"assertion"`
}

// normalizeSignin turns the raw assertion-result payload into a token,
// branching on the platform discriminant fixed at construction.
func (s *Service) normalizeSignin(ctx context.Context, raw []byte) (*platform.Token, error) {
	log := logger.From(ctx).With(
		logger.Component("gateway"),
		logger.Op("normalizeSignin"),
		logger.Platform(s.platform.String()),
	)

	switch s.platform {
	case platform.ISVA:
		var r isvaSigninResponse
		if err := json.Unmarshal(raw, &r); err != nil || r.Attributes.ResponseData.AccessToken == "" {
			log.Error("unexpected assertion response shape; check the mediator script configuration on the appliance",
				logger.Err(err))
			return nil, ErrParseResponse
		}
		return &platform.Token{AccessToken: r.Attributes.ResponseData.AccessToken, TokenType: "Bearer"}, nil

	case platform.ISV:
		var r isvSigninResponse
		if err := json.Unmarshal(raw, &r); err != nil || r.Assertion == "" {
			log.Error("unexpected assertion response shape", logger.Err(err))
			return nil, ErrParseResponse
		}
		tk, err := s.tokens.JWTBearerGrant(ctx, r.Assertion)
		if err != nil {
			log.Error("jwt-bearer grant failed", logger.Grant("jwt-bearer"), logger.Err(err))
			return nil, fmt.Errorf("signin: %w", err)
		}
		return tk, nil

	default:
		log.Error("no normalizer for platform")
		return nil, ErrParseResponse
	}
}
