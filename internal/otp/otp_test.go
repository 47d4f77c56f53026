package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_SixDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := Generate()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestExpiry_FifteenMinutes(t *testing.T) {
	expires := Expiry()
	delta := time.Until(expires)

	assert.Greater(t, delta, 14*time.Minute)
	assert.LessOrEqual(t, delta, 15*time.Minute)
}

func TestIsExpired_Boundary(t *testing.T) {
	past := time.Now().Add(-1 * time.Second)
	future := time.Now().Add(1 * time.Second)

	assert.True(t, IsExpired(&past))
	assert.False(t, IsExpired(&future))
	assert.True(t, IsExpired(nil))
}
