package dht

import "errors"

// Error kinds surfaced by Codec and PeerAddressManager. None are retried
// inside the codec; the caller decides policy (abort vs. drop datagram).
var (
	// ErrBufferTooSmall: encode/decode buffer shorter than HeaderSizeMin.
	ErrBufferTooSmall = errors.New("dht: buffer smaller than minimum header size")

	// ErrUnknownRecipient: decodeHeader could not resolve a short id.
	// The datagram is not for us, or we lost the matching key material.
	ErrUnknownRecipient = errors.New("dht: unknown recipient")

	// ErrUnknownSender: encode could not find the sender's private key.
	ErrUnknownSender = errors.New("dht: unknown sender")

	// ErrCryptoFailure: an X25519, ChaCha20, or Ed25519 primitive failed.
	ErrCryptoFailure = errors.New("dht: cryptographic primitive failed")

	// ErrMalformedPeerAddress: the inner PeerAddress failed to decode.
	ErrMalformedPeerAddress = errors.New("dht: malformed peer address")

	// ErrPeerShutdown is returned by Send when the local peer's lifecycle
	// has already moved to shut down. It replaces a shared singleton
	// failure future with a stable, comparable error value.
	ErrPeerShutdown = errors.New("dht: peer is shutting down")

	// ErrMalformedIdentity: a stored private key did not decrypt to
	// exactly 32 bytes. The key store file is corrupt, was written by an
	// incompatible version, or was opened with the wrong passphrase and
	// happened to pass GCM authentication on truncated ciphertext.
	ErrMalformedIdentity = errors.New("dht: malformed stored identity")
)

// SignatureInvalid is not an error return: a verification failure is
// surfaced through Message.Done = false, not through an error value, so
// that tampered-but-parsed contents still propagate to policy layers
// above the codec.
