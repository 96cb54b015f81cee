// Package platform defines the backend identity-platform contract: the
// closed platform enum, the shared wire types, and the three client roles
// the gateway orchestrates (user, WebAuthn, token).
package platform

import "fmt"

// Platform is the backend identity platform the gateway fronts. Resolved
// once from configuration at startup and immutable for the process lifetime.
type Platform string

const (
	// ISV is IBM Security Verify (SaaS).
	ISV Platform = "isv"
	// ISVA is IBM Security Verify Access (on-prem).
	ISVA Platform = "isva"
)

// Parse converts a configuration string into a Platform.
func Parse(s string) (Platform, error) {
	switch Platform(s) {
	case ISV:
		return ISV, nil
	case ISVA:
		return ISVA, nil
	default:
		return "", fmt.Errorf("platform: unknown platform %q (want %q or %q)", s, ISV, ISVA)
	}
}

func (p Platform) String() string { return string(p) }
