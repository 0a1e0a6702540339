package crypto

import (
	"crypto/ed25519"
	"errors"
)

// SignatureSize is the size of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// Signature represents an Ed25519 signature.
//
//export DHTCodecSignature
type Signature [SignatureSize]byte

// Sign creates an Ed25519 signature for a message using the private key.
//
//export DHTCodecSign
func Sign(message []byte, privateKey [32]byte) (Signature, error) {
	if len(message) == 0 {
		return Signature{}, errors.New("empty message")
	}

	// Convert the 32-byte private key to the format expected by ed25519
	// Ed25519 private keys are 64 bytes (32 bytes seed + 32 bytes public key)
	edPrivateKey := ed25519.NewKeyFromSeed(privateKey[:])

	// Sign the message
	signatureBytes := ed25519.Sign(edPrivateKey, message)

	var signature Signature
	copy(signature[:], signatureBytes)

	return signature, nil
}

// DeriveSigningPublicKey returns the Ed25519 public key for a private
// seed. Curve25519 and Ed25519 are different encodings of birationally
// equivalent curves: the Curve25519 public key derived from the same
// seed (see FromSecretKey) is NOT this value, and the two must not be
// confused when resolving a verification key for a signature.
//
//export DHTCodecDeriveSigningPublicKey
func DeriveSigningPublicKey(privateKey [32]byte) [32]byte {
	edPrivateKey := ed25519.NewKeyFromSeed(privateKey[:])

	var publicKey [32]byte
	copy(publicKey[:], edPrivateKey[32:])
	return publicKey
}

// Verify checks if a signature is valid for a message and public key.
//
//export DHTCodecVerify
func Verify(message []byte, signature Signature, publicKey [32]byte) (bool, error) {
	if len(message) == 0 {
		return false, errors.New("empty message")
	}

	// Convert the 32-byte public key to the format expected by ed25519
	var edPublicKey [ed25519.PublicKeySize]byte
	copy(edPublicKey[:], publicKey[:])

	// Verify the signature
	return ed25519.Verify(edPublicKey[:], message, signature[:]), nil
}
