// Package dht implements the wire-level message codec for a peer-to-peer
// DHT transport: encoding an in-memory Message into a single datagram and
// decoding a datagram back into a Message, with confidentiality,
// integrity, and sender authentication built into the frame itself.
//
// # Wire format
//
// Every datagram is laid out, big-endian, as:
//
//	0       4   versionAndType (2-bit protocol type, 30-bit version)
//	4       4   message id
//	8       36  XOR-overlapped sender/recipient id pack
//	44      32  sender ephemeral Curve25519 public key
//	76      var ChaCha20-encrypted region: inner sender address, type/options
//	            byte, command byte, payload
//	end-64  64  Ed25519 signature over bytes [0, end-64)
//
// A datagram is always at least HeaderSizeMin bytes. Codec.Encode builds
// this layout; Codec.DecodeHeader parses the unencrypted prefix far
// enough to resolve a local recipient and route the datagram to a
// worker; Codec.DecodePayload finishes the job, decrypting and verifying
// the signature.
//
// # Key agreement
//
// Every encode generates a fresh ephemeral Curve25519 key pair. A
// request (no prior exchange) agrees using the recipient's static
// public key, which in this system is simply its peer.ID. A reply agrees
// using the ephemeral public key that arrived with the original
// request — the 0-RTT rule. The resulting shared secret is used directly
// as a ChaCha20 key with a fixed all-zero nonce; this is safe only
// because each message derives a fresh, one-shot key, never reused.
//
// The derived shared key is zeroized immediately after the cipher or
// signature operation that consumes it. A reply's ephemeral private key
// is zeroized at the end of Encode, since the replier never needs it
// again; a request's is left alone for the caller to keep alive until
// the matching reply is decoded, at which point DecodePayload zeroizes
// the caller-supplied ephLocal.
//
// # Identity resolution
//
// PeerAddressManager is the injected lookup the codec depends on to turn
// the wire's short ids and full ids into addresses and private key
// material. Catalog is this package's concurrency-safe, in-memory
// implementation, built from Node entries.
//
// A peer's id (the value exchanged on the wire and used for Curve25519
// key agreement) is not its Ed25519 verification key: the two are
// different curve encodings of the same seed and are not
// interchangeable. PeerAddressManager.GetSigningKey resolves the
// verification key separately; Node carries both.
//
// # Example
//
//	codec := dht.NewCodec()
//	datagram, err := codec.Encode(nil, msg, catalog, nil, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	header, err := codec.DecodeHeader(datagram, catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var out dht.Message
//	err = codec.DecodePayload(datagram, header, &out, catalog, nil, localAddr, remoteAddr)
package dht
