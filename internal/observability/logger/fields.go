package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Standard fields — HTTP.

// RequestID creates a field for the request id.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method creates a field for the HTTP method.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path creates a field for the request path.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status creates a field for the HTTP status code.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Duration creates a field for the request duration.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Standard fields — domain.

// Platform creates a field for the active identity platform.
func Platform(v string) zap.Field { return zap.String("platform", v) }

// TxnID creates a field for an OTP transaction id.
func TxnID(v string) zap.Field { return zap.String("txn_id", v) }

// Grant creates a field for the OAuth grant type in use.
func Grant(v string) zap.Field { return zap.String("grant", v) }

// ChallengeType creates a field for the FIDO2 challenge type.
func ChallengeType(v string) zap.Field { return zap.String("challenge_type", v) }

// Email creates a field for an email address, masked. Addresses are PII
// and never reach the logs in the clear.
func Email(v string) zap.Field { return zap.String("email", maskEmail(v)) }

func maskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexByte(s, '@')
	if i <= 0 {
		if s == "" {
			return ""
		}
		if len(s) <= 3 {
			return "***"
		}
		return s[:1] + "…" + s[len(s)-1:]
	}
	user, dom := s[:i], s[i+1:]
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	dparts := strings.Split(dom, ".")
	if len(dparts) > 0 && len(dparts[0]) > 1 {
		dparts[0] = dparts[0][:1] + "…"
	}
	return user + "@" + strings.Join(dparts, ".")
}

// Standard fields — system.

// Component creates a field for the component/module emitting the log.
func Component(v string) zap.Field { return zap.String("component", v) }

// Op creates a field for the current operation.
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer creates a field for the architectural layer (controller, service, client).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Err creates a field for an error.
func Err(err error) zap.Field { return zap.Error(err) }
