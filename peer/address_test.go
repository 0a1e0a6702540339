package peer

import (
	"net"
	"testing"
)

func TestAddressRoundTripIPv4WithPeerID(t *testing.T) {
	var id ID
	id[0] = 0x42

	a := Address{
		PeerID: id,
		IP:     net.ParseIP("127.0.0.1").To4(),
		Port:   9999,
		IPv4:   true,
	}

	encoded := a.Encode(nil)
	decoded, rest, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no leftover bytes, got %d", len(rest))
	}
	if decoded.PeerID != id {
		t.Fatalf("peer id mismatch: got %x, want %x", decoded.PeerID, id)
	}
	if !decoded.IP.Equal(a.IP) {
		t.Fatalf("ip mismatch: got %v, want %v", decoded.IP, a.IP)
	}
	if decoded.Port != a.Port {
		t.Fatalf("port mismatch: got %d, want %d", decoded.Port, a.Port)
	}
	if !decoded.IPv4 || decoded.IPv6 {
		t.Fatalf("expected ipv4 flag set and ipv6 flag clear, got ipv4=%v ipv6=%v", decoded.IPv4, decoded.IPv6)
	}
}

func TestAddressSkipPeerIDElidesIdentity(t *testing.T) {
	a := Address{
		IP:         net.ParseIP("::1"),
		Port:       1234,
		IPv6:       true,
		SkipPeerID: true,
	}

	encoded := a.Encode(nil)
	decoded, _, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.SkipPeerID {
		t.Fatalf("expected SkipPeerID to round-trip true")
	}
	if !decoded.PeerID.IsZero() {
		t.Fatalf("expected zero peer id when elided, got %x", decoded.PeerID)
	}
}

func TestAddressIPv4SizeIsMinimal(t *testing.T) {
	a := Address{IP: net.ParseIP("127.0.0.1").To4(), Port: 1, IPv4: true, SkipPeerID: true}
	encoded := a.Encode(nil)
	// flag(1) + reserved(7) + ipv4(4) + port(2) = 14 bytes.
	if len(encoded) != 14 {
		t.Fatalf("encoded IPv4 address length = %d, want 14", len(encoded))
	}
}

func TestAddressIPv6IsTwelveBytesLargerThanIPv4(t *testing.T) {
	v4 := Address{IP: net.ParseIP("127.0.0.1").To4(), Port: 1, IPv4: true, SkipPeerID: true}
	v6 := Address{IP: net.ParseIP("::1"), Port: 1, IPv6: true, SkipPeerID: true}

	if got, want := len(v6.Encode(nil))-len(v4.Encode(nil)), 12; got != want {
		t.Fatalf("ipv6-ipv4 size delta = %d, want %d", got, want)
	}
}

func TestDecodeRejectsTruncatedBuffer(t *testing.T) {
	a := Address{IP: net.ParseIP("127.0.0.1").To4(), Port: 1, IPv4: true}
	encoded := a.Encode(nil)

	if _, _, err := Decode(encoded[:len(encoded)-3]); err == nil {
		t.Fatalf("expected error decoding truncated address")
	}
}

func TestDecodeRejectsBothFamilyFlagsSet(t *testing.T) {
	a := Address{IP: net.ParseIP("127.0.0.1").To4(), Port: 1, IPv4: true, SkipPeerID: true}
	encoded := a.Encode(nil)
	encoded[0] |= flagIPv6

	if _, _, err := Decode(encoded); err == nil {
		t.Fatalf("expected error when both family flags are set")
	}
}

func TestWithIPSocketSetsFamilyFlags(t *testing.T) {
	a := Address{SkipPeerID: true}

	v4 := a.WithIPSocket(&net.UDPAddr{IP: net.ParseIP("10.0.0.1"), Port: 80})
	if !v4.IPv4 || v4.IPv6 {
		t.Fatalf("expected ipv4 flag for IPv4 address")
	}

	v6 := a.WithIPSocket(&net.UDPAddr{IP: net.ParseIP("fe80::1"), Port: 80})
	if v6.IPv4 || !v6.IPv6 {
		t.Fatalf("expected ipv6 flag for IPv6 address")
	}
}

func TestWithPeerIDClearsSkip(t *testing.T) {
	var id ID
	id[0] = 0x7

	a := Address{SkipPeerID: true}
	withID := a.WithPeerID(id)

	if withID.SkipPeerID {
		t.Fatalf("expected SkipPeerID cleared after WithPeerID")
	}
	if withID.PeerID != id {
		t.Fatalf("peer id not attached")
	}
}
