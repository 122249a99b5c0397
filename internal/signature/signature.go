// Package signature computes and verifies the HMAC-SHA256 digest that
// authenticates outbound webhook payloads.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the hex-encoded HMAC-SHA256 digest of payload keyed by
// secret. The payload bytes must be exactly the bytes transmitted;
// re-serializing on the receiving side breaks verification.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the expected digest for payload and compares it to
// sig in constant time. A signature of the wrong length or with
// invalid hex is reported as invalid, never as an error.
func Verify(payload []byte, sig string, secret string) bool {
	provided, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	// hmac.Equal is constant time and handles mismatched lengths safely.
	return hmac.Equal(provided, expected)
}
