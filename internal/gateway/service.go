// Package gateway is the request orchestrator: it sequences backend calls
// per operation, keeps short-lived transactional state in the cache, and
// normalizes the two backend response shapes into one token contract.
//
// The service is stateless between requests except through the cache. No
// operation retries; every backend failure is logged and re-raised.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dropDatabas3/authgate/internal/cache"
	"github.com/dropDatabas3/authgate/internal/observability/logger"
	"github.com/dropDatabas3/authgate/internal/platform"
)

const signupKeyPrefix = "signup:"

// Deps are the orchestrator's collaborators, injected at construction.
type Deps struct {
	Platform platform.Platform
	Cache    cache.Cache
	Users    platform.UserClient
	WebAuthn platform.WebAuthnClient
	Tokens   platform.TokenClient
	// Issuer is this gateway's own external address, used as the issuer
	// of bearer assertions built for the JWT-bearer grant.
	Issuer string
}

// Service implements the six gateway operations.
type Service struct {
	platform platform.Platform
	cache    cache.Cache
	users    platform.UserClient
	webauthn platform.WebAuthnClient
	tokens   platform.TokenClient
	issuer   string
}

// New creates the orchestrator.
func New(d Deps) *Service {
	return &Service{
		platform: d.Platform,
		cache:    d.Cache,
		users:    d.Users,
		webauthn: d.WebAuthn,
		tokens:   d.Tokens,
		issuer:   d.Issuer,
	}
}

// Authenticate performs a password sign-in. The resulting token is returned
// unchanged; password errors are backend-specific and surfaced as-is.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*platform.Token, error) {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Authenticate"))

	tk, err := s.tokens.PasswordGrant(ctx, username, password)
	if err != nil {
		log.Error("password grant failed", logger.Grant("password"), logger.Err(err))
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return tk, nil
}

// Signup starts self-service sign-up: it asks the backend to deliver an
// email OTP and caches the pending state under the transaction id until
// the backend-reported expiry. The challenge is returned unchanged.
//
// If caching fails after the backend generated the OTP there is no
// compensating action: the user may still receive a code. Accepted as a
// benign duplication risk.
func (s *Service) Signup(ctx context.Context, name, email string) (*platform.OTPChallenge, error) {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Signup"))

	svcToken, err := s.serviceToken(ctx)
	if err != nil {
		return nil, err
	}

	ch, err := s.users.GenerateOTP(ctx, svcToken, email)
	if err != nil {
		log.Error("otp generation failed", logger.Err(err))
		return nil, fmt.Errorf("signup: %w", err)
	}

	ttl := time.Until(ch.Expiry)
	if ttl <= 0 {
		// Backend expiry already in the past (clock skew or an
		// instantly expiring policy). A transaction the user can never
		// complete is worse than a clean failure.
		log.Warn("otp challenge expired on arrival",
			logger.TxnID(ch.TransactionID), logger.Err(ErrChallengeExpired))
		return nil, ErrChallengeExpired
	}

	pending := platform.PendingSignup{
		TransactionID: ch.TransactionID,
		Name:          name,
		Email:         email,
	}
	b, err := json.Marshal(pending)
	if err != nil {
		return nil, fmt.Errorf("signup: marshal pending state: %w", err)
	}
	s.cache.Set(signupKeyPrefix+ch.TransactionID, b, ttl)

	log.Info("signup challenge issued", logger.TxnID(ch.TransactionID), logger.Email(email))
	return ch, nil
}

// Validate completes sign-up: it verifies the OTP against the backend,
// consumes the pending transaction, and exchanges a signed assertion for an
// end-user token.
//
// The cache entry is deleted before the token exchange so a crash between
// the two steps leaves the transaction consumed rather than replayable.
func (s *Service) Validate(ctx context.Context, transactionID, otp string) (*platform.Token, error) {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Validate"), logger.TxnID(transactionID))

	raw, ok := s.cache.Get(signupKeyPrefix + transactionID)
	if !ok {
		log.Info("unknown or expired transaction")
		return nil, ErrChallengeNotFound
	}
	var pending platform.PendingSignup
	if err := json.Unmarshal(raw, &pending); err != nil {
		log.Warn("corrupt pending state", logger.Err(err))
		return nil, ErrChallengeNotFound
	}

	svcToken, err := s.serviceToken(ctx)
	if err != nil {
		return nil, err
	}

	userID, err := s.users.VerifyUser(ctx, svcToken, transactionID, otp, pending)
	if err != nil {
		log.Error("otp verification failed", logger.Err(err))
		return nil, fmt.Errorf("validate: %w", err)
	}

	// Best-effort: the entry's own TTL is the backstop if this misses.
	s.cache.Delete(signupKeyPrefix + transactionID)

	assertion, err := s.tokens.SignedAssertion(userID, s.issuer)
	if err != nil {
		log.Error("assertion build failed", logger.Err(err))
		return nil, fmt.Errorf("validate: %w", err)
	}
	tk, err := s.tokens.JWTBearerGrant(ctx, assertion)
	if err != nil {
		log.Error("jwt-bearer grant failed", logger.Grant("jwt-bearer"), logger.Err(err))
		return nil, fmt.Errorf("validate: %w", err)
	}

	log.Info("signup completed")
	return tk, nil
}

// Challenge generates WebAuthn ceremony options. Attestation requires a
// caller bearer token; assertion is pre-authentication and falls back to
// the service-level token. displayName only applies to attestation.
func (s *Service) Challenge(ctx context.Context, typ platform.ChallengeType, displayName, bearer string) (*platform.FIDO2Challenge, error) {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Challenge"), logger.ChallengeType(string(typ)))

	if typ == platform.Attestation && bearer == "" {
		return nil, ErrUnauthorized
	}
	if typ != platform.Attestation {
		displayName = ""
	}

	auth := bearer
	if auth == "" {
		var err error
		auth, err = s.serviceToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	ch, err := s.webauthn.GenerateChallenge(ctx, auth, displayName, typ)
	if err != nil {
		log.Error("challenge generation failed", logger.Err(err))
		return nil, fmt.Errorf("challenge: %w", err)
	}
	return ch, nil
}

// Register stores a new WebAuthn credential for the caller. A bearer token
// is mandatory; no backend call is made without one.
func (s *Service) Register(ctx context.Context, bearer string, in platform.CredentialCreation) error {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Register"))

	if bearer == "" {
		return ErrUnauthorized
	}
	if err := s.webauthn.CreateCredential(ctx, bearer, in); err != nil {
		log.Error("credential creation failed", logger.Err(err))
		return fmt.Errorf("register: %w", err)
	}

	log.Info("credential registered")
	return nil
}

// Signin verifies a WebAuthn assertion and normalizes the backend response
// into a token. Sign-in is pre-authentication, so the service-level token
// authorizes the backend call.
func (s *Service) Signin(ctx context.Context, in platform.CredentialVerification) (*platform.Token, error) {
	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Signin"))

	svcToken, err := s.serviceToken(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.webauthn.VerifyCredential(ctx, svcToken, in)
	if err != nil {
		log.Error("credential verification failed", logger.Err(err))
		return nil, fmt.Errorf("signin: %w", err)
	}
	return s.normalizeSignin(ctx, raw)
}
