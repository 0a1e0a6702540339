package dht

import (
	"encoding/binary"
	"net"
	"sync"

	"github.com/opd-ai/dhtcodec/peer"
	"github.com/sirupsen/logrus"
)

// PeerAddressManager resolves the identity hints the codec carries on the
// wire into full addresses and the private key material needed to
// complete a key agreement. It is read-mostly and MUST be safe for
// concurrent reads; the codec never mutates it and holds no reference to
// it beyond the lifetime of a single Encode/DecodeHeader/DecodePayload
// call.
type PeerAddressManager interface {
	// GetPeerAddressFromShortID resolves the 32-bit demux hint carried
	// in clear in the XOR-overlap pack to a full address and the
	// matching private key. Used by DecodeHeader to find the local
	// recipient. A miss is ErrUnknownRecipient.
	GetPeerAddressFromShortID(shortID uint32) (peer.Address, [32]byte, error)

	// GetPeerAddressFromID resolves a full peer id to its address and
	// private key. Used by Encode to find the sender's signing key. A
	// miss is ErrUnknownSender.
	GetPeerAddressFromID(id peer.ID) (peer.Address, [32]byte, error)

	// GetSigningKey resolves a peer id to its Ed25519 verification key.
	// This is distinct from the private key GetPeerAddressFromID
	// returns: that key agrees a ChaCha20 stream key over Curve25519,
	// this one verifies the trailing Ed25519 signature, and the two are
	// different curve encodings of the same seed. Used by DecodePayload
	// to verify an inbound datagram's sender. A miss reports ok == false.
	GetSigningKey(id peer.ID) (signingKey [32]byte, ok bool)
}

// Catalog is a concurrency-safe, in-memory PeerAddressManager. It indexes
// entries two ways — by the full 32-byte id and by the 32-bit short id
// derived from it — mirroring the two lookups the wire format needs.
// Catalog holds no reference to any Message; ownership of identity data
// flows one way, from Catalog into the values a lookup returns.
type Catalog struct {
	mu      sync.RWMutex
	byID    map[peer.ID]*Node
	byShort map[uint32]*Node
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:    make(map[peer.ID]*Node),
		byShort: make(map[uint32]*Node),
	}
}

// shortIDOf derives the 32-bit demux hint for id: the trailing 4 bytes.
// DecodeHeader looks up a recipient by peer.RecipientShortID, which reads
// offset 32..35 of the XOR pack — the recipient id's own trailing 4 bytes,
// carried there in clear by XOROverlappedBy4. The catalog's short-id index
// must be keyed the same way or a legitimate recipient never resolves.
func shortIDOf(id peer.ID) uint32 {
	return binary.BigEndian.Uint32(id[28:32])
}

// Put registers or refreshes a catalog entry. Only entries created via
// NewLocalNode carry key material and are eligible recipients/senders for
// the codec's lookups.
func (c *Catalog) Put(n *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID[n.ID] = n
	c.byShort[shortIDOf(n.ID)] = n
}

// Remove deletes a catalog entry by id.
func (c *Catalog) Remove(id peer.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.byID, id)
	delete(c.byShort, shortIDOf(id))
}

// GetPeerAddressFromShortID implements PeerAddressManager.
func (c *Catalog) GetPeerAddressFromShortID(shortID uint32) (peer.Address, [32]byte, error) {
	c.mu.RLock()
	n, ok := c.byShort[shortID]
	c.mu.RUnlock()

	if !ok || !n.HasKey {
		logrus.WithFields(logrus.Fields{
			"function": "GetPeerAddressFromShortID",
			"short_id": shortID,
		}).Debug("no local key material for short id")
		return peer.Address{}, [32]byte{}, ErrUnknownRecipient
	}

	return n.toAddress(), n.PrivateKey, nil
}

// GetPeerAddressFromID implements PeerAddressManager.
func (c *Catalog) GetPeerAddressFromID(id peer.ID) (peer.Address, [32]byte, error) {
	c.mu.RLock()
	n, ok := c.byID[id]
	c.mu.RUnlock()

	if !ok || !n.HasKey {
		logrus.WithFields(logrus.Fields{
			"function": "GetPeerAddressFromID",
			"peer_id":  id.String(),
		}).Debug("no local key material for peer id")
		return peer.Address{}, [32]byte{}, ErrUnknownSender
	}

	return n.toAddress(), n.PrivateKey, nil
}

// GetSigningKey implements PeerAddressManager. It resolves for both
// local nodes (whose signing key was derived in NewLocalNode) and
// remote nodes registered with NewRemoteNode, unlike
// GetPeerAddressFromID/GetPeerAddressFromShortID which require key
// material the manager can sign or decrypt with.
func (c *Catalog) GetSigningKey(id peer.ID) ([32]byte, bool) {
	c.mu.RLock()
	n, ok := c.byID[id]
	c.mu.RUnlock()

	if !ok || !n.HasSigningKey {
		return [32]byte{}, false
	}
	return n.SigningKey, true
}

func (n *Node) toAddress() peer.Address {
	a := peer.Address{PeerID: n.ID}

	if udpAddr, ok := n.Address.(*net.UDPAddr); ok {
		a = a.WithIPSocket(udpAddr)
	}

	return a
}
