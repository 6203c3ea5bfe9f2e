package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

const (
	// KeyPrefix is the scheme tag carried by every key this service issues,
	// so downstream systems can cheaply tell the format apart from other
	// credentials.
	KeyPrefix = "sk_live_"

	// KeySecretBytes is the random payload size: 32 bytes = 256 bits of
	// entropy, 64 hex chars on the wire.
	KeySecretBytes = 32

	maskedHead = 6
	maskedTail = 4
)

// ErrGenerationUnavailable is returned when the system random source fails.
// Callers must not fall back to a weaker source.
var ErrGenerationUnavailable = errors.New("key generation unavailable")

var randomRead = rand.Read

// GeneratedKey is the transient output of key generation. Plaintext exists
// only here; only Hash and Masked are ever persisted.
type GeneratedKey struct {
	Plaintext string
	Masked    string
	Hash      string
}

// GenerateKey produces a fresh API key from the system CSPRNG together with
// its stored representations.
func GenerateKey() (*GeneratedKey, error) {
	buf := make([]byte, KeySecretBytes)
	if _, err := randomRead(buf); err != nil {
		return nil, ErrGenerationUnavailable
	}

	plaintext := KeyPrefix + hex.EncodeToString(buf)
	return &GeneratedKey{
		Plaintext: plaintext,
		Masked:    MaskKey(plaintext),
		Hash:      HashKey(plaintext),
	}, nil
}

// HashKey returns the hex-encoded SHA-256 digest of a plaintext key. The
// digest is the only credential representation stored durably and is also
// the verifier's lookup column.
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// MaskKey derives the display form shown on every listing: first 6 and last
// 4 characters with a fixed ellipsis between. The scheme is fixed because
// the plaintext cannot be re-derived once the key is stored.
func MaskKey(plaintext string) string {
	if len(plaintext) <= maskedHead+maskedTail {
		return plaintext
	}
	return plaintext[:maskedHead] + "..." + plaintext[len(plaintext)-maskedTail:]
}
