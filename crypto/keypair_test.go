package crypto

import (
	"bytes"
	"testing"
)

func TestGenerateKeyPairProducesDistinctKeys(t *testing.T) {
	a, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	if a.Public == b.Public {
		t.Fatalf("two generated key pairs must not share a public key")
	}
	if isZeroKey(a.Private) {
		t.Fatalf("generated private key must not be all zeros")
	}
}

func TestFromSecretKeyDerivesMatchingPublicKey(t *testing.T) {
	original, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	derived, err := FromSecretKey(original.Private)
	if err != nil {
		t.Fatalf("FromSecretKey failed: %v", err)
	}

	if !bytes.Equal(derived.Public[:], original.Public[:]) {
		t.Fatalf("derived public key does not match: got %x, want %x", derived.Public, original.Public)
	}
}

func TestFromSecretKeyRejectsZeroKey(t *testing.T) {
	var zero [32]byte
	if _, err := FromSecretKey(zero); err == nil {
		t.Fatalf("expected error for all-zero secret key")
	}
}
