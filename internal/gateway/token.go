package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/authgate/internal/observability/logger"
)

const (
	serviceTokenKey = "authgate:service-token"

	// serviceTokenSkew is subtracted from the backend-reported lifetime so
	// the cache evicts the token before it actually expires.
	serviceTokenSkew = 60 * time.Second
)

// serviceToken returns the service-level access token, fetching a fresh one
// via the client-credentials grant on cache miss.
//
// Concurrent misses may each perform the grant and both write the cache;
// last write wins. Both results are valid tokens, so this race is accepted
// rather than guarded.
func (s *Service) serviceToken(ctx context.Context) (string, error) {
	if b, ok := s.cache.Get(serviceTokenKey); ok {
		return string(b), nil
	}

	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("serviceToken"))

	tk, err := s.tokens.ClientCredentialsGrant(ctx)
	if err != nil {
		log.Error("client-credentials grant failed", logger.Grant("client_credentials"), logger.Err(err))
		return "", fmt.Errorf("service token: %w", err)
	}

	ttl := time.Duration(tk.ExpiresIn)*time.Second - serviceTokenSkew
	if ttl > 0 {
		s.cache.Set(serviceTokenKey, []byte(tk.AccessToken), ttl)
	} else {
		// Lifetime under the skew: use the token once and let the next
		// caller fetch a fresh one.
		log.Warn("service token lifetime under skew, not caching",
			logger.Duration(time.Duration(tk.ExpiresIn)*time.Second))
	}
	return tk.AccessToken, nil
}
