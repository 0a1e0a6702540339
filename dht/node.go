package dht

import (
	"net"
	"time"

	"github.com/opd-ai/dhtcodec/crypto"
	"github.com/opd-ai/dhtcodec/peer"
)

// Status represents the liveness state of a catalog entry.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBad
	StatusGood
)

// PingStats tracks liveness ping history for a catalog entry.
type PingStats struct {
	LastPingSent     time.Time
	LastPingReceived time.Time
	PingCount        uint32
	SuccessCount     uint32
	FailureCount     uint32
}

// Node is a PeerAddressManager catalog entry: a peer's id, its last known
// socket address, its static private key (when the manager holds key
// material for it), and liveness bookkeeping. The codec itself never sees
// a Node — it only sees the (peer.Address, privateKey) pair a lookup
// returns.
type Node struct {
	ID         peer.ID
	PrivateKey [32]byte
	HasKey     bool

	// SigningKey is the Ed25519 verification key for this node. It is
	// NOT the same bytes as ID: ID is a Curve25519 public key, and
	// Curve25519/Ed25519 keys derived from the same seed are different
	// points on birationally equivalent curves. See
	// crypto.DeriveSigningPublicKey.
	SigningKey    [32]byte
	HasSigningKey bool

	Address   net.Addr
	LastSeen  time.Time
	Status    Status
	PingStats PingStats
}

// NewNode creates a catalog entry for id at addr with no key material
// attached — a remote peer the manager has observed but does not hold
// the private key for.
func NewNode(id peer.ID, addr net.Addr) *Node {
	return &Node{
		ID:       id,
		Address:  addr,
		LastSeen: time.Now(),
		Status:   StatusUnknown,
	}
}

// NewRemoteNode creates a catalog entry for a peer whose static public
// identity and Ed25519 signing key are both known (learned from a prior
// datagram or out-of-band), but whose private key the manager does not
// hold. Such a node is never eligible as an Encode sender or
// DecodeHeader recipient, but its SigningKey can still be resolved to
// verify a datagram it sent.
func NewRemoteNode(id peer.ID, signingKey [32]byte, addr net.Addr) *Node {
	n := NewNode(id, addr)
	n.SigningKey = signingKey
	n.HasSigningKey = true
	return n
}

// NewLocalNode creates a catalog entry for a peer whose private key the
// manager holds, making it eligible to answer GetPeerAddressFromID and
// GetPeerAddressFromShortID lookups as a sender or recipient. Its
// Ed25519 signing key is derived from the same seed via
// crypto.DeriveSigningPublicKey, not reused from the Curve25519 id.
func NewLocalNode(id peer.ID, privateKey [32]byte, addr net.Addr) *Node {
	n := NewNode(id, addr)
	n.PrivateKey = privateKey
	n.HasKey = true
	n.SigningKey = crypto.DeriveSigningPublicKey(privateKey)
	n.HasSigningKey = true
	return n
}

// IsActive reports whether the node has been seen within timeout.
func (n *Node) IsActive(timeout time.Duration) bool {
	return time.Since(n.LastSeen) < timeout
}

// Touch marks the node as recently seen and updates its status.
func (n *Node) Touch(status Status) {
	n.LastSeen = time.Now()
	n.Status = status
}

// RecordPingSent marks that a ping was sent to this node.
func (n *Node) RecordPingSent() {
	n.PingStats.LastPingSent = time.Now()
	n.PingStats.PingCount++
}

// RecordPingResponse marks that a ping response was received from this
// node, or that one was expected and did not arrive.
func (n *Node) RecordPingResponse(success bool) {
	if success {
		n.PingStats.LastPingReceived = time.Now()
		n.PingStats.SuccessCount++
		n.Touch(StatusGood)
		return
	}

	n.PingStats.FailureCount++
	if n.PingStats.FailureCount > n.PingStats.SuccessCount {
		n.Touch(StatusBad)
	}
}
