package crypto

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestStreamCipherRoundTrip(t *testing.T) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	ciphertext := make([]byte, len(plaintext))

	enc := NewStreamCipher(key)
	if err := enc.Encrypt(ciphertext, plaintext); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Equal(ciphertext, plaintext) {
		t.Fatalf("ciphertext must differ from plaintext")
	}

	decrypted := make([]byte, len(ciphertext))
	dec := NewStreamCipher(key)
	if err := dec.Decrypt(decrypted, ciphertext); err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("round trip mismatch: got %x, want %x", decrypted, plaintext)
	}
}

func TestStreamCipherSameKeyProducesSameKeystream(t *testing.T) {
	var key [32]byte
	copy(key[:], bytes.Repeat([]byte{0x42}, 32))

	plaintext := bytes.Repeat([]byte{0x00}, 64)

	out1 := make([]byte, len(plaintext))
	out2 := make([]byte, len(plaintext))

	if err := NewStreamCipher(key).Encrypt(out1, plaintext); err != nil {
		t.Fatalf("Encrypt 1 failed: %v", err)
	}
	if err := NewStreamCipher(key).Encrypt(out2, plaintext); err != nil {
		t.Fatalf("Encrypt 2 failed: %v", err)
	}

	if !bytes.Equal(out1, out2) {
		t.Fatalf("same key must produce the same keystream given the fixed nonce")
	}
}

func TestStreamCipherDestinationTooSmall(t *testing.T) {
	var key [32]byte
	cipher := NewStreamCipher(key)

	src := make([]byte, 16)
	dst := make([]byte, 8)

	if err := cipher.Encrypt(dst, src); err == nil {
		t.Fatalf("expected error when destination buffer is smaller than source")
	}
}
