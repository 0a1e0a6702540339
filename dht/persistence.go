package dht

import (
	"net"

	"github.com/opd-ai/dhtcodec/crypto"
	"github.com/opd-ai/dhtcodec/peer"
	"github.com/sirupsen/logrus"
)

// SaveIdentity persists the local node registered under id to store under
// filename, so the node's private key survives a process restart. id must
// have been registered with NewLocalNode; a remote or unknown node has no
// private key to persist and the call fails with ErrUnknownSender.
func (c *Catalog) SaveIdentity(store *crypto.EncryptedKeyStore, filename string, id peer.ID) error {
	c.mu.RLock()
	n, ok := c.byID[id]
	c.mu.RUnlock()

	if !ok || !n.HasKey {
		logrus.WithFields(logrus.Fields{
			"function": "Catalog.SaveIdentity",
			"peer_id":  id.String(),
		}).Debug("no local key material to persist")
		return ErrUnknownSender
	}

	return store.WriteEncrypted(filename, n.PrivateKey[:])
}

// LoadIdentity restores a local node's private key from store, re-derives
// its PeerId via the Curve25519 base point, registers it in the catalog
// at addr as a NewLocalNode entry, and returns the recovered id.
func (c *Catalog) LoadIdentity(store *crypto.EncryptedKeyStore, filename string, addr net.Addr) (peer.ID, error) {
	raw, err := store.ReadEncrypted(filename)
	if err != nil {
		return peer.ID{}, err
	}
	defer crypto.ZeroBytes(raw)

	if len(raw) != 32 {
		logrus.WithFields(logrus.Fields{
			"function": "Catalog.LoadIdentity",
			"size":     len(raw),
		}).Error("decrypted identity file has the wrong length")
		return peer.ID{}, ErrMalformedIdentity
	}

	var privateKey [32]byte
	copy(privateKey[:], raw)

	kp, err := crypto.FromSecretKey(privateKey)
	if err != nil {
		crypto.ZeroBytes(privateKey[:])
		return peer.ID{}, err
	}

	var id peer.ID
	copy(id[:], kp.Public[:])

	c.Put(NewLocalNode(id, privateKey, addr))
	crypto.ZeroBytes(privateKey[:])

	return id, nil
}
