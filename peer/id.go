package peer

import (
	"encoding/binary"
	"encoding/hex"
)

// IDSize is the length in bytes of a PeerId.
const IDSize = 32

// PackedSize is the length in bytes of an XOR-overlapped id pack.
const PackedSize = 36

// ID (Number256 in the reference design) is a 32-byte peer identifier.
// In this system an ID is also the peer's static Curve25519 public key:
// key agreement for request messages uses it directly as the recipient's
// public half.
//
//export DHTCodecPeerID
type ID [IDSize]byte

// String renders the id as lowercase hex.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether every byte of the id is zero.
func (id ID) IsZero() bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}

// XOROverlappedBy4 packs the sender and recipient ids (id is the sender)
// into the 36-byte wire form. Bytes 0..3 carry the sender's leading 4
// bytes in clear; bytes 32..35 carry the recipient's trailing 4 bytes in
// clear; bytes 4..31 carry the 28-byte overlap XORed together.
func (id ID) XOROverlappedBy4(recipient ID) [PackedSize]byte {
	var out [PackedSize]byte

	copy(out[:], id[:])
	for i := 0; i < IDSize; i++ {
		out[4+i] ^= recipient[i]
	}

	return out
}

// DeXOROverlappedBy4 recovers the sender id from a 36-byte XOR pack given
// the local recipient id the pack was built against.
func DeXOROverlappedBy4(recipient ID, packed [PackedSize]byte) ID {
	var sender ID

	copy(sender[:4], packed[:4])
	for i := 4; i < IDSize; i++ {
		sender[i] = packed[i] ^ recipient[i-4]
	}

	return sender
}

// SenderShortID extracts the sender demux hint (offset 0..3) from a pack.
func SenderShortID(packed [PackedSize]byte) uint32 {
	return binary.BigEndian.Uint32(packed[0:4])
}

// RecipientShortID extracts the recipient demux hint (offset 32..35) from
// a pack.
func RecipientShortID(packed [PackedSize]byte) uint32 {
	return binary.BigEndian.Uint32(packed[32:36])
}
