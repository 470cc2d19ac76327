package cryptoutil

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher defines an interface for hashing and verifying secrets
// (user passwords, the admin PIN).
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

// Argon2idParams holds the argon2id cost parameters.
type Argon2idParams struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// DefaultArgon2idParams returns the cost parameters used for new hashes.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		SaltLen:     16,
		KeyLen:      32,
	}
}

// Argon2idHasher implements Hasher using argon2id with PHC-encoded output.
type Argon2idHasher struct {
	params Argon2idParams
}

// NewArgon2idHasher constructs an Argon2idHasher with the given parameters.
func NewArgon2idHasher(params Argon2idParams) (*Argon2idHasher, error) {
	if params.KeyLen != 32 {
		return nil, fmt.Errorf("argon2id key length must be 32 bytes, got %d", params.KeyLen)
	}
	if params.SaltLen < 8 {
		return nil, fmt.Errorf("argon2id salt length must be at least 8 bytes, got %d", params.SaltLen)
	}
	return &Argon2idHasher{params: params}, nil
}

// Hash derives an argon2id key from secret with a random salt and returns
// a PHC-format string: $argon2id$v=19$m=...,t=...,p=...$<salt>$<key>.
func (h *Argon2idHasher) Hash(secret string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.params.Time, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether secret matches the PHC-encoded hash. The comparison
// of the derived key is constant time. Parameters are taken from the encoded
// string so older hashes remain verifiable after a cost change.
func (h *Argon2idHasher) Verify(secret, encoded string) (bool, error) {
	params, salt, key, err := decodePHC(encoded)
	if err != nil {
		return false, err
	}

	derived := argon2.IDKey([]byte(secret), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1, nil
}

// decodePHC parses a $argon2id$ PHC string into parameters, salt, and key.
func decodePHC(encoded string) (Argon2idParams, []byte, []byte, error) {
	var params Argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return params, nil, nil, errors.New("malformed argon2id hash")
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("unsupported hash algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.New("malformed argon2id version")
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Time, &params.Parallelism); err != nil {
		return params, nil, nil, errors.New("malformed argon2id parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errors.New("malformed argon2id salt")
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, errors.New("malformed argon2id key")
	}
	if len(key) == 0 {
		return params, nil, nil, errors.New("empty argon2id key")
	}

	return params, salt, key, nil
}

var _ Hasher = (*Argon2idHasher)(nil)
