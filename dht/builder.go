package dht

import "sync/atomic"

// SendConfig configures a single outbound message the way the original
// fluent SendBuilder did, re-expressed as a plain record instead of a
// chain of mutators. IsRaw is derived, not stored: a config is raw iff
// Object is nil.
type SendConfig struct {
	Buffer         []byte
	Object         interface{}
	CancelOnFinish bool
	Streaming      bool
	LocationKey    peerLocationKey
}

// peerLocationKey is opaque to the codec; it exists only so SendConfig
// has a concrete field to carry whatever routing key the layer above
// uses to pick a destination. The codec itself never reads it.
type peerLocationKey = [32]byte

// IsRaw reports whether c carries a raw byte buffer rather than an
// object the builder still needs to serialize.
func (c SendConfig) IsRaw() bool {
	return c.Object == nil
}

// SendResult is the outcome of a Send call: either a successfully
// encoded datagram, ready for the transport, or an error.
type SendResult struct {
	Datagram []byte
	Err      error
}

// lifecycleState values for Peer.
const (
	lifecycleRunning uint32 = iota
	lifecycleShutdown
)

// Peer tracks whether the local peer has begun shutting down. Send
// checks this before doing any work; once shut down, every call returns
// ErrPeerShutdown instead of the shared singleton failure future the
// source used.
type Peer struct {
	state atomic.Uint32
	codec *Codec
	mgr   PeerAddressManager
}

// NewPeer creates a Peer that sends through codec using mgr to resolve
// sender key material.
func NewPeer(codec *Codec, mgr PeerAddressManager) *Peer {
	return &Peer{codec: codec, mgr: mgr}
}

// Shutdown marks the peer as shutting down. Safe to call more than once;
// subsequent calls are no-ops.
func (p *Peer) Shutdown() {
	p.state.Store(lifecycleShutdown)
}

// Send encodes msg per config and returns the resulting datagram, unless
// the peer has already shut down, in which case it returns ErrPeerShutdown
// without touching the codec.
func (p *Peer) Send(msg *Message, config SendConfig, ephRemote *[32]byte, encodeForIPv4 bool) SendResult {
	if p.state.Load() == lifecycleShutdown {
		return SendResult{Err: ErrPeerShutdown}
	}

	if config.Streaming {
		msg.Options |= optionStreaming
	}

	datagram, err := p.codec.Encode(nil, msg, p.mgr, ephRemote, encodeForIPv4)
	return SendResult{Datagram: datagram, Err: err}
}

// optionStreaming is the bit SendConfig.Streaming maps onto Message's
// 4-bit Options field; it carries no codec meaning beyond being visible
// to the layer that decodes it.
const optionStreaming = 0x08
