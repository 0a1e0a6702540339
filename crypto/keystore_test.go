package crypto

import (
	"bytes"
	"os"
	"testing"
)

func TestEncryptedKeyStoreRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-keystore-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewEncryptedKeyStore(dir, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}
	defer store.Close()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	if err := store.WriteEncrypted("identity", kp.Private[:]); err != nil {
		t.Fatalf("WriteEncrypted failed: %v", err)
	}

	loaded, err := store.ReadEncrypted("identity")
	if err != nil {
		t.Fatalf("ReadEncrypted failed: %v", err)
	}

	if !bytes.Equal(loaded, kp.Private[:]) {
		t.Fatalf("round trip mismatch: got %x, want %x", loaded, kp.Private)
	}
}

func TestEncryptedKeyStoreWrongPassphraseFails(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-keystore-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewEncryptedKeyStore(dir, []byte("passphrase-one"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}
	if err := store.WriteEncrypted("identity", []byte("secret material")); err != nil {
		t.Fatalf("WriteEncrypted failed: %v", err)
	}

	other, err := NewEncryptedKeyStore(dir, []byte("passphrase-two"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}

	if _, err := other.ReadEncrypted("identity"); err == nil {
		t.Fatalf("expected decryption failure with wrong passphrase")
	}
}

func TestEncryptedKeyStoreDeleteEncrypted(t *testing.T) {
	dir, err := os.MkdirTemp("", "dhtcodec-keystore-")
	if err != nil {
		t.Fatalf("MkdirTemp failed: %v", err)
	}
	defer os.RemoveAll(dir)

	store, err := NewEncryptedKeyStore(dir, []byte("passphrase"))
	if err != nil {
		t.Fatalf("NewEncryptedKeyStore failed: %v", err)
	}

	if err := store.WriteEncrypted("identity", []byte("secret material")); err != nil {
		t.Fatalf("WriteEncrypted failed: %v", err)
	}
	if err := store.DeleteEncrypted("identity"); err != nil {
		t.Fatalf("DeleteEncrypted failed: %v", err)
	}
	if _, err := store.ReadEncrypted("identity"); err == nil {
		t.Fatalf("expected read to fail after deletion")
	}
}
