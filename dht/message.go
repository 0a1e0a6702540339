package dht

import (
	"net"

	"github.com/opd-ai/dhtcodec/crypto"
	"github.com/opd-ai/dhtcodec/peer"
)

// ProtocolType is the 2-bit type field in versionAndType. UDP is the
// only type this codec fully processes; KCP variants are delegated to a
// separate framing layer not implemented here.
type ProtocolType uint8

const (
	ProtocolUDP  ProtocolType = 0
	ProtocolKCP  ProtocolType = 1
	ProtocolKCP2 ProtocolType = 2
	ProtocolKCP3 ProtocolType = 3
)

// HeaderSizeMin is the smallest a valid datagram can be: 4 (versionAndType)
// + 4 (message id) + 36 (XOR pack) + 32 (ephemeral pubkey) + 64
// (signature) + 16 for the encrypted region of a null-payload message
// with an elided-peer-id IPv4 inner address (1 flag + 7 reserved + 4 IP
// + 2 port = 14 bytes) plus the type/options and command bytes.
const HeaderSizeMin = 156

// SignatureSize is the trailing signature length, always the last 64
// bytes of a datagram regardless of payload size.
const SignatureSize = crypto.SignatureSize

// Type is the 4-bit message type field (request/ack/ok/...).
type Type uint8

const (
	TypeRequest Type = 0
	TypeAck     Type = 1
	TypeOK      Type = 2
)

// Message is the mutable carrier populated by encode inputs or decode
// outputs. Message is the sole owner of its sender/recipient addresses;
// PeerAddressManager keeps its own catalog indexed by short and full id,
// never referenced from a Message, to avoid cyclic ownership.
type Message struct {
	ProtocolType ProtocolType
	Version      uint32 // low 30 bits significant
	MessageID    uint32

	Sender    peer.Address
	Recipient peer.Address

	Type    Type
	Options uint8 // low 4 bits significant
	Command uint8

	Payload []byte

	// EphemeralKeyPair is generated fresh on every encode; only the
	// public half survives a decode round-trip on the peer that
	// receives the message.
	EphemeralKeyPair *crypto.KeyPair

	// EphemeralPublicKey is populated on decode from the wire.
	EphemeralPublicKey [32]byte

	// Done is set by signature verification on decode. A tampered
	// message still has all other fields populated; Done = false is
	// the seam through which verification failure propagates as data
	// rather than as an error.
	Done bool

	RecipientSocket net.Addr
	SenderSocket    net.Addr
}

// VersionAndType packs ProtocolType and Version into the wire's first
// 4-byte big-endian field: high 2 bits = type, low 30 bits = version.
func (m *Message) VersionAndType() uint32 {
	return (uint32(m.ProtocolType) << 30) | (m.Version & 0x3FFFFFFF)
}

// TypeOptionsByte packs Type and Options into the wire's single byte:
// high 4 bits = type, low 4 bits = options.
func (m *Message) TypeOptionsByte() byte {
	return byte(m.Type)<<4 | (m.Options & 0x0F)
}

// Header is the triage-only view produced by Codec.DecodeHeader: just
// enough to route a datagram to a worker without any cryptographic work.
// It is consumed once by DecodePayload, then discarded.
type Header struct {
	Version     uint32
	MessageID   uint32
	Recipient   peer.Address
	PrivateKey  [32]byte
	SenderID    peer.ID
	SenderShort uint32
}

// PeekProtocolType extracts the protocol type from a full versionAndType
// word without consuming any buffer position.
func PeekProtocolType(versionAndType uint32) ProtocolType {
	return ProtocolType(versionAndType >> 30)
}

// PeekProtocolTypeByte extracts the protocol type from only the first
// byte of versionAndType — used for pre-triage before the remaining 3
// bytes have even arrived. The byte MUST be treated as unsigned before
// shifting; a signed right shift on a byte with bit 7 set would smear
// sign bits into the result.
func PeekProtocolTypeByte(b byte) ProtocolType {
	return ProtocolType(uint8(b) >> 6)
}
