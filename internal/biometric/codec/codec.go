// Package codec encrypts face descriptors at rest with AES-256-GCM under a
// key derived once from the configured secret.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

const keyLength = 32

// ErrDecryption covers every way a stored payload can fail to open.
var ErrDecryption = dErrors.New(dErrors.CodeCrypto, "face template could not be decrypted")

// KDFParams tunes the Argon2id derivation.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams follows the Argon2id recommendation for interactive use.
var DefaultKDFParams = KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 2}

type Option func(*options)

type options struct {
	kdf KDFParams
}

func WithKDFParams(p KDFParams) Option {
	return func(o *options) { o.kdf = p }
}

// Codec is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// New derives the key from secret and salt. The derivation runs here only.
func New(secret, salt string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("codec: secret is required")
	}
	if salt == "" {
		return nil, errors.New("codec: salt is required")
	}
	o := options{kdf: DefaultKDFParams}
	for _, opt := range opts {
		opt(&o)
	}

	key := argon2.IDKey([]byte(secret), []byte(salt), o.kdf.Time, o.kdf.MemoryKiB, o.kdf.Threads, keyLength)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("codec: cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("codec: gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encrypt serializes d as a JSON number array and seals it under a fresh nonce.
func (c *Codec) Encrypt(d models.Descriptor) (models.EncryptedPayload, error) {
	plaintext, err := json.Marshal([]float64(d))
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("codec: encode descriptor: %w", err)
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("codec: nonce: %w", err)
	}
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	return models.EncryptedPayload{
		Ciphertext: hex.EncodeToString(sealed),
		IV:         hex.EncodeToString(nonce),
	}, nil
}

// Decrypt opens a payload produced by Encrypt. Any malformed field, key
// mismatch or tampering yields ErrDecryption.
func (c *Codec) Decrypt(p models.EncryptedPayload) (models.Descriptor, error) {
	nonce, err := hex.DecodeString(p.IV)
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return nil, ErrDecryption
	}
	sealed, err := hex.DecodeString(p.Ciphertext)
	if err != nil || len(sealed) < c.aead.Overhead() {
		return nil, ErrDecryption
	}
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryption
	}
	var values []float64
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, ErrDecryption
	}
	return models.Descriptor(values), nil
}
