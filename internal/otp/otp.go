package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// TTL is how long a freshly issued code stays valid.
	TTL = 15 * time.Minute

	min = 100000
	max = 999999
)

// Generate returns a uniformly random 6-digit numeric code. Codes are
// scoped per user, so collisions across users are fine.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+min), nil
}

// Expiry returns the expiration timestamp for a code issued now.
func Expiry() time.Time {
	return time.Now().Add(TTL)
}

// IsExpired reports whether now is strictly after the given expiry.
// A nil expiry counts as expired: a user without OTP fields has no
// valid code by definition.
func IsExpired(expires *time.Time) bool {
	if expires == nil {
		return true
	}
	return time.Now().After(*expires)
}
