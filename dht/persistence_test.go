package dht

import (
	"net"
	"os"
	"testing"

	"github.com/opd-ai/dhtcodec/crypto"
	"github.com/opd-ai/dhtcodec/peer"
)

func TestCatalogSaveAndLoadIdentityRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-identity-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := crypto.NewEncryptedKeyStore(dir, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}
	defer store.Close()

	addr := &net.UDPAddr{IP: net.ParseIP("203.0.113.5"), Port: 33445}
	cat := NewCatalog()
	id := newTestPeer(t, cat, addr)

	if err := cat.SaveIdentity(store, "identity", id); err != nil {
		t.Fatalf("SaveIdentity failed: %v", err)
	}

	loadedCat := NewCatalog()
	loadedID, err := loadedCat.LoadIdentity(store, "identity", addr)
	if err != nil {
		t.Fatalf("LoadIdentity failed: %v", err)
	}
	if loadedID != id {
		t.Fatalf("recovered id mismatch: got %x, want %x", loadedID, id)
	}

	_, priv, err := cat.GetPeerAddressFromID(id)
	if err != nil {
		t.Fatalf("GetPeerAddressFromID on the original catalog failed: %v", err)
	}
	_, loadedPriv, err := loadedCat.GetPeerAddressFromID(loadedID)
	if err != nil {
		t.Fatalf("GetPeerAddressFromID on the restored catalog failed: %v", err)
	}
	if priv != loadedPriv {
		t.Fatalf("restored private key does not match the original")
	}
}

func TestCatalogSaveIdentityUnknownIDFails(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-identity-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := crypto.NewEncryptedKeyStore(dir, []byte("another passphrase"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}
	defer store.Close()

	var unregistered peer.ID
	unregistered[0] = 0x42

	cat := NewCatalog()

	if err := cat.SaveIdentity(store, "identity", unregistered); err != ErrUnknownSender {
		t.Fatalf("expected ErrUnknownSender, got %v", err)
	}
}

func TestCatalogLoadIdentityRejectsWrongLength(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-identity-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := crypto.NewEncryptedKeyStore(dir, []byte("yet another passphrase"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}
	defer store.Close()

	if err := store.WriteEncrypted("identity", []byte("too short")); err != nil {
		t.Fatalf("WriteEncrypted failed: %v", err)
	}

	cat := NewCatalog()
	if _, err := cat.LoadIdentity(store, "identity", &net.UDPAddr{}); err != ErrMalformedIdentity {
		t.Fatalf("expected ErrMalformedIdentity, got %v", err)
	}
}
