package peer

import (
	"encoding/binary"
	"errors"
	"net"
)

// Address pairs a peer ID with an IP endpoint and the feature flags the
// wire codec needs to elide parts of the encoding it can recover from
// context (the outer datagram's own IP family, or a short-id lookup).
//
//export DHTCodecPeerAddress
type Address struct {
	PeerID ID
	IP     net.IP
	Port   uint16

	// SkipPeerID suppresses the 32-byte id on encode; the decoder must
	// already know the id from elsewhere (the XOR-overlap pack).
	SkipPeerID bool

	// IPv4, IPv6: exactly one is expected to be true for any address
	// that actually carries an IP; both false means "no IP encoded"
	// (the outer transport supplies it).
	IPv4 bool
	IPv6 bool
}

// flag bits for the single header byte preceding a non-elided address body.
const (
	flagIPv4     = 1 << 0
	flagIPv6     = 1 << 1
	flagSkipPeer = 1 << 2
)

// reservedSize is a block of zero bytes carried after the flags (and
// peer id, when present) on every encoded Address, mirroring the spare
// high bits left in versionAndType's 30-bit version field: room for a
// future feature flag or relay hint without shifting any other offset.
const reservedSize = 7

// MaxSizeNoPeerID is an upper bound on the encoded size of an Address
// with SkipPeerID set: 1 flag byte + reserved + 16 bytes (IPv6) + 2 port.
const MaxSizeNoPeerID = 1 + reservedSize + 16 + 2

// MaxSize is an upper bound on the encoded size of an Address carrying
// its full peer id: MaxSizeNoPeerID plus the 32-byte id.
const MaxSize = MaxSizeNoPeerID + IDSize

// ErrMalformed indicates a PeerAddress could not be decoded from the
// supplied bytes — truncated buffer or an invalid flag combination.
var ErrMalformed = errors.New("peer: malformed address")

// Encode appends the wire form of a to dst and returns the result.
func (a Address) Encode(dst []byte) []byte {
	flags := byte(0)
	if a.IPv4 {
		flags |= flagIPv4
	}
	if a.IPv6 {
		flags |= flagIPv6
	}
	if a.SkipPeerID {
		flags |= flagSkipPeer
	}
	dst = append(dst, flags)

	if !a.SkipPeerID {
		dst = append(dst, a.PeerID[:]...)
	}

	var reserved [reservedSize]byte
	dst = append(dst, reserved[:]...)

	switch {
	case a.IPv4:
		var ipBuf [net.IPv4len]byte
		copy(ipBuf[:], a.IP.To4())
		dst = append(dst, ipBuf[:]...)
	case a.IPv6:
		var ipBuf [net.IPv6len]byte
		copy(ipBuf[:], a.IP.To16())
		dst = append(dst, ipBuf[:]...)
	}

	var portBuf [2]byte
	binary.BigEndian.PutUint16(portBuf[:], a.Port)
	dst = append(dst, portBuf[:]...)

	return dst
}

// Decode reads a wire-form Address from the front of src, returning the
// address and the unconsumed remainder.
func Decode(src []byte) (Address, []byte, error) {
	if len(src) < 1 {
		return Address{}, nil, ErrMalformed
	}

	flags := src[0]
	rest := src[1:]
	var a Address
	a.IPv4 = flags&flagIPv4 != 0
	a.IPv6 = flags&flagIPv6 != 0
	a.SkipPeerID = flags&flagSkipPeer != 0

	if !a.SkipPeerID {
		if len(rest) < IDSize {
			return Address{}, nil, ErrMalformed
		}
		copy(a.PeerID[:], rest[:IDSize])
		rest = rest[IDSize:]
	}

	if len(rest) < reservedSize {
		return Address{}, nil, ErrMalformed
	}
	rest = rest[reservedSize:]

	switch {
	case a.IPv4 && a.IPv6:
		return Address{}, nil, ErrMalformed
	case a.IPv4:
		if len(rest) < net.IPv4len {
			return Address{}, nil, ErrMalformed
		}
		a.IP = net.IP(append([]byte{}, rest[:net.IPv4len]...)).To4()
		rest = rest[net.IPv4len:]
	case a.IPv6:
		if len(rest) < net.IPv6len {
			return Address{}, nil, ErrMalformed
		}
		a.IP = net.IP(append([]byte{}, rest[:net.IPv6len]...))
		rest = rest[net.IPv6len:]
	}

	if len(rest) < 2 {
		return Address{}, nil, ErrMalformed
	}
	a.Port = binary.BigEndian.Uint16(rest[:2])
	rest = rest[2:]

	return a, rest, nil
}

// WithIPSocket returns a copy of a with its IP/port taken from addr and
// the matching family flag set, the other cleared.
func (a Address) WithIPSocket(addr *net.UDPAddr) Address {
	out := a
	out.IP = addr.IP
	out.Port = uint16(addr.Port)

	if addr.IP.To4() != nil {
		out.IPv4 = true
		out.IPv6 = false
	} else {
		out.IPv4 = false
		out.IPv6 = true
	}

	return out
}

// WithPeerID returns a copy of a carrying id, with SkipPeerID cleared.
func (a Address) WithPeerID(id ID) Address {
	out := a
	out.PeerID = id
	out.SkipPeerID = false
	return out
}

// UDPAddr returns a's endpoint as a *net.UDPAddr.
func (a Address) UDPAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: a.IP, Port: int(a.Port)}
}
