package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSignProducesHexDigest(t *testing.T) {
	sig := Sign([]byte(`{"order_id":"abc"}`), "topsecret")
	assert.Len(t, sig, sha256.Size*2)

	_, err := hex.DecodeString(sig)
	require.NoError(t, err)
}

func TestSignDeterministic(t *testing.T) {
	payload := []byte("same bytes")
	assert.Equal(t, Sign(payload, "k"), Sign(payload, "k"))
	assert.NotEqual(t, Sign(payload, "k"), Sign(payload, "other"))
}

func TestVerifyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := rapid.SliceOf(rapid.Byte()).Draw(t, "payload")
		secret := rapid.String().Draw(t, "secret")

		sig := Sign(payload, secret)
		assert.True(t, Verify(payload, sig, secret))
	})
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"total":28.15}`)
	sig := Sign(payload, "secret")

	tampered := append([]byte(nil), payload...)
	tampered[10] ^= 0x01
	assert.False(t, Verify(tampered, sig, "secret"))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	payload := []byte("payload")
	sig := Sign(payload, "secret")

	flipped := []byte(sig)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	assert.False(t, Verify(payload, string(flipped), "secret"))
}

func TestVerifyWrongLengthDoesNotPanic(t *testing.T) {
	payload := []byte("payload")

	assert.False(t, Verify(payload, "", "secret"))
	assert.False(t, Verify(payload, "abcd", "secret"))
	assert.False(t, Verify(payload, Sign(payload, "secret")+"00", "secret"))
	assert.False(t, Verify(payload, "not hex at all!!", "secret"))
}
