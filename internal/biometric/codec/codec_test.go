package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
)

var testKDF = WithKDFParams(KDFParams{Time: 1, MemoryKiB: 1024, Threads: 1})

func newCodec(t *testing.T, secret string) *Codec {
	t.Helper()
	c, err := New(secret, "test-salt", testKDF)
	require.NoError(t, err)
	return c
}

func randomDescriptor(r *rand.Rand) models.Descriptor {
	d := make(models.Descriptor, models.DescriptorLength)
	for i := range d {
		d[i] = r.NormFloat64() / 3
	}
	return d
}

func TestRoundTrip(t *testing.T) {
	c := newCodec(t, "secret")
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		d := randomDescriptor(r)
		payload, err := c.Encrypt(d)
		require.NoError(t, err)

		got, err := c.Decrypt(payload)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	c := newCodec(t, "secret")
	d := make(models.Descriptor, models.DescriptorLength)

	a, err := c.Encrypt(d)
	require.NoError(t, err)
	b, err := c.Encrypt(d)
	require.NoError(t, err)

	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	assert.Len(t, a.IV, 24, "12-byte nonce, hex encoded")
}

func TestDecrypt_Failures(t *testing.T) {
	c := newCodec(t, "secret")
	payload, err := c.Encrypt(make(models.Descriptor, models.DescriptorLength))
	require.NoError(t, err)

	tampered := []byte(payload.Ciphertext)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	tests := []struct {
		name    string
		codec   *Codec
		payload models.EncryptedPayload
	}{
		{"wrong key", newCodec(t, "other-secret"), payload},
		{"tampered ciphertext", c, models.EncryptedPayload{Ciphertext: string(tampered), IV: payload.IV}},
		{"non-hex iv", c, models.EncryptedPayload{Ciphertext: payload.Ciphertext, IV: "zz"}},
		{"short iv", c, models.EncryptedPayload{Ciphertext: payload.Ciphertext, IV: "abcd"}},
		{"non-hex ciphertext", c, models.EncryptedPayload{Ciphertext: "not hex", IV: payload.IV}},
		{"truncated ciphertext", c, models.EncryptedPayload{Ciphertext: "00", IV: payload.IV}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decrypt(tt.payload)
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

func TestNew_RequiresSecretAndSalt(t *testing.T) {
	_, err := New("", "salt", testKDF)
	assert.Error(t, err)
	_, err = New("secret", "", testKDF)
	assert.Error(t, err)
}
