package transport

import "net"

// DatagramHandler processes a raw inbound datagram. The codec's decode path
// is the intended consumer: pass the buffer to dht.Codec.DecodeHeader first
// to triage, then to DecodePayload once the packet has been routed.
type DatagramHandler func(datagram []byte, addr net.Addr)

// Transport defines the interface for network transports the DHT codec can
// be layered on top of. The codec does not depend on this interface; it is
// provided so a sender/receiver can be assembled around encode/decode.
type Transport interface {
	// Send transmits a raw datagram to the given address.
	Send(datagram []byte, addr net.Addr) error

	// RegisterHandler installs the callback invoked for every inbound
	// datagram. Only one handler may be registered at a time.
	RegisterHandler(handler DatagramHandler)

	// LocalAddr returns the local address the transport is bound to.
	LocalAddr() net.Addr

	// Close shuts down the transport.
	Close() error
}
