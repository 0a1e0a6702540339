package crypto

import (
	"errors"

	"golang.org/x/crypto/chacha20"
)

// chachaNonceSize is the size of the nonce consumed by golang.org/x/crypto/chacha20's
// IETF construction. The codec never varies this nonce: every message uses a fresh
// ephemeral key pair, so the derived shared key is one-shot and a zero nonce cannot
// cause keystream reuse.
const chachaNonceSize = chacha20.NonceSize

// zeroNonce is the fixed all-zero nonce used for every ChaCha20 stream. Safe only
// because the key itself is never reused across messages (see StreamCipher).
var zeroNonce = [chachaNonceSize]byte{}

// StreamCipher wraps an unauthenticated ChaCha20 keystream over a single
// one-shot shared key. It provides no integrity protection by itself; the
// codec relies on the trailing Ed25519 signature for authentication.
//
//export DHTCodecStreamCipher
type StreamCipher struct {
	key [32]byte
}

// NewStreamCipher creates a ChaCha20 façade bound to a one-shot shared key.
// The key MUST be freshly derived (e.g. from a per-message ephemeral X25519
// agreement) and never reused across two encryptions.
//
//export DHTCodecNewStreamCipher
func NewStreamCipher(sharedKey [32]byte) *StreamCipher {
	return &StreamCipher{key: sharedKey}
}

// Encrypt XORs plaintext with the ChaCha20 keystream, writing into dst.
// dst and src may overlap only if they are the same slice. dst must be at
// least len(src) bytes.
//
//export DHTCodecStreamCipherEncrypt
func (c *StreamCipher) Encrypt(dst, src []byte) error {
	return c.xor(dst, src, "encrypt")
}

// Decrypt reverses Encrypt; ChaCha20 is its own inverse.
//
//export DHTCodecStreamCipherDecrypt
func (c *StreamCipher) Decrypt(dst, src []byte) error {
	return c.xor(dst, src, "decrypt")
}

func (c *StreamCipher) xor(dst, src []byte, op string) error {
	if len(dst) < len(src) {
		return errors.New("crypto: destination buffer smaller than source")
	}

	cipher, err := chacha20.NewUnauthenticatedCipher(c.key[:], zeroNonce[:])
	if err != nil {
		NewLogger("StreamCipher."+op).WithError(err, "crypto_failure", op).Error("failed to initialize ChaCha20 keystream")
		return err
	}

	cipher.XORKeyStream(dst[:len(src)], src)
	return nil
}
