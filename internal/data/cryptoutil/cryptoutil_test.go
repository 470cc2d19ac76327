package cryptoutil

import (
	"strings"
	"testing"
)

func newTestHasher(t *testing.T) *Argon2idHasher {
	t.Helper()
	// Lighter cost for tests; verification reads params from the hash.
	h, err := NewArgon2idHasher(Argon2idParams{
		Time:        1,
		MemoryKiB:   8 * 1024,
		Parallelism: 1,
		SaltLen:     16,
		KeyLen:      32,
	})
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return h
}

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("1234")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("expected PHC prefix, got %q", encoded)
	}

	ok, err := h.Verify("1234", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("expected matching secret to verify")
	}
}

func TestArgon2idHasher_Verify_WrongSecret(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := h.Verify("wrong horse", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("expected mismatched secret to fail verification")
	}
}

func TestArgon2idHasher_Hash_SaltsDiffer(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("same secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := h.Hash("same secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("expected distinct salts to produce distinct hashes")
	}
}

func TestArgon2idHasher_Verify_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not phc", encoded: "plaintext"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$a2V5"},
		{name: "bad params", encoded: "$argon2id$v=19$nope$c2FsdA$a2V5"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.Verify("secret", tt.encoded); err == nil {
				t.Error("expected error for malformed hash")
			}
		})
	}
}

func TestNewArgon2idHasher_RejectsBadParams(t *testing.T) {
	if _, err := NewArgon2idHasher(Argon2idParams{KeyLen: 16, SaltLen: 16}); err == nil {
		t.Error("expected error for non-32-byte key length")
	}
	if _, err := NewArgon2idHasher(Argon2idParams{KeyLen: 32, SaltLen: 4}); err == nil {
		t.Error("expected error for short salt")
	}
}
