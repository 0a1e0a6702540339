// Package crypto implements the cryptographic primitives backing the DHT
// wire codec: Curve25519 key agreement, an unauthenticated ChaCha20
// keystream, and Ed25519 signatures, plus memory-safe key handling.
//
// The codec fixes this cipher suite; this package does not negotiate or
// select among alternatives.
//
// # Core Types
//
//   - [KeyPair]: Curve25519 key pair used both for a peer's long-term
//     identity (the public half doubles as the PeerId) and for the
//     per-message ephemeral key.
//   - [Signature]: an Ed25519 signature.
//   - [StreamCipher]: a one-shot ChaCha20 keystream over a shared secret.
//
// # Key Agreement and Encryption
//
//	shared, _ := crypto.DeriveSharedSecret(peerPublicKey, myPrivateKey)
//	cipher := crypto.NewStreamCipher(shared)
//	_ = cipher.Encrypt(dst, plaintext)
//	crypto.ZeroBytes(shared[:])
//
// Every shared key MUST be derived from a freshly generated ephemeral
// key pair; the zero nonce used internally by [StreamCipher] is only safe
// because the key itself is never reused.
//
// # Digital Signatures
//
//	signature, _ := crypto.Sign(message, privateKey)
//	ok, _ := crypto.Verify(message, signature, publicKey)
//
// # Key Generation
//
//	keyPair, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer crypto.WipeKeyPair(keyPair)
//
// # At-Rest Storage
//
// EncryptedKeyStore persists a peer's long-term private key and cached
// address catalog entries under AES-256-GCM, keyed by a PBKDF2-derived
// passphrase:
//
//	store, _ := crypto.NewEncryptedKeyStore("/path/to/data", passphrase)
//	_ = store.WriteEncrypted("identity", keyPair.Private[:])
//
// # Secure Memory Handling
//
//	defer crypto.WipeKeyPair(keyPair)
//	defer crypto.ZeroBytes(sharedSecret[:])
//
// [SecureWipe] overwrites memory in a way the compiler cannot elide,
// guarding against the shared secret or ephemeral private key lingering
// past its one-message lifetime.
package crypto
