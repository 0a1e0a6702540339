package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// DeriveSharedSecret computes a shared secret between two parties using
// Elliptic Curve Diffie-Hellman (ECDH) on Curve25519. Per the 0-RTT rule,
// callers pass the recipient's static public key (= PeerId) for a request,
// or the peer's ephemeral public key for a reply.
//
//export DHTCodecDeriveSharedSecret
func DeriveSharedSecret(peerPublicKey, privateKey [32]byte) ([32]byte, error) {
	log := NewLogger("DeriveSharedSecret").WithFields(SecureFieldHash(peerPublicKey[:], "peer_key"))
	log.Debug("computing shared secret using X25519")

	var publicKeyCopy [32]byte
	var privateKeyCopy [32]byte
	copy(publicKeyCopy[:], peerPublicKey[:])
	copy(privateKeyCopy[:], privateKey[:])

	sharedSecret, err := curve25519.X25519(privateKeyCopy[:], publicKeyCopy[:])
	if err != nil {
		log.WithError(err, "crypto_failure", "x25519").Error("X25519 computation failed")
		ZeroBytes(privateKeyCopy[:])
		return [32]byte{}, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	var result [32]byte
	copy(result[:], sharedSecret)

	ZeroBytes(privateKeyCopy[:])
	ZeroBytes(sharedSecret)

	log.Debug("shared secret computed, intermediates wiped")
	return result, nil
}
