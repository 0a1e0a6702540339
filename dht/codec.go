package dht

import (
	"encoding/binary"
	"net"

	"github.com/opd-ai/dhtcodec/crypto"
	"github.com/opd-ai/dhtcodec/peer"
	"github.com/sirupsen/logrus"
)

// Codec assembles and parses the wire datagram described by the package
// doc comment. It is stateless and pure per call: no shared mutable
// state, safe to invoke concurrently from many goroutines provided each
// call owns its buffers and Message instance.
type Codec struct{}

// NewCodec returns a ready-to-use Codec. Codec has no fields; the type
// exists to give the three operations a common receiver and a place to
// hang documentation.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode assembles a datagram for msg into dst and returns the full
// encoded slice. ephRemote is nil for a request (key agreement uses the
// recipient's static PeerId) or the peer's ephemeral public key for a
// reply (the 0-RTT rule). encodeForIPv4 selects which family flag the
// inner sender address carries; the outer transport already carries the
// real IP, so the inner address never carries more than a hint of it.
//
// dst may be nil; if it has a fixed, insufficient capacity the call
// fails with ErrBufferTooSmall rather than silently reallocating past
// the caller's buffer budget.
func (c *Codec) Encode(dst []byte, msg *Message, mgr PeerAddressManager, ephRemote *[32]byte, encodeForIPv4 bool) ([]byte, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.Encode"}).WithError(err).Error("ephemeral key pair generation failed")
		return nil, ErrCryptoFailure
	}
	msg.EphemeralKeyPair = kp

	plaintext := c.buildPlaintext(msg, encodeForIPv4)

	total := 4 + 4 + peer.PackedSize + 32 + len(plaintext) + SignatureSize
	if dst != nil && cap(dst) < total {
		return nil, ErrBufferTooSmall
	}
	if total < HeaderSizeMin {
		return nil, ErrBufferTooSmall
	}

	out := dst[:0]
	out = c.appendHeaderFields(out, msg)

	sharedKey, err := c.encodeSharedKey(msg, ephRemote)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	cipher := crypto.NewStreamCipher(sharedKey)
	if err := cipher.Encrypt(ciphertext, plaintext); err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.Encode"}).WithError(err).Error("ChaCha20 encryption failed")
		crypto.ZeroBytes(sharedKey[:])
		c.wipeEphemeralIfSpent(msg, ephRemote)
		return nil, ErrCryptoFailure
	}
	out = append(out, ciphertext...)

	senderAddr, senderPriv, err := mgr.GetPeerAddressFromID(msg.Sender.PeerID)
	if err != nil {
		crypto.ZeroBytes(sharedKey[:])
		c.wipeEphemeralIfSpent(msg, ephRemote)
		return nil, ErrUnknownSender
	}
	_ = senderAddr

	sig, err := crypto.Sign(out, senderPriv)
	crypto.ZeroBytes(sharedKey[:])
	c.wipeEphemeralIfSpent(msg, ephRemote)
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.Encode"}).WithError(err).Error("Ed25519 signing failed")
		return nil, ErrCryptoFailure
	}
	out = append(out, sig[:]...)

	return out, nil
}

// wipeEphemeralIfSpent zeroizes msg's ephemeral private key once Encode
// has no further use for it. A request (ephRemote == nil) is the
// exception: the caller must keep EphemeralKeyPair.Private alive to
// complete the 0-RTT agreement when the matching reply arrives, so
// Encode leaves it untouched and the caller is responsible for wiping it
// after DecodePayload consumes it. A reply's ephemeral key pair is never
// needed again after this call and is wiped immediately.
func (c *Codec) wipeEphemeralIfSpent(msg *Message, ephRemote *[32]byte) {
	if ephRemote != nil {
		crypto.WipeKeyPair(msg.EphemeralKeyPair)
	}
}

// buildPlaintext assembles the ChaCha20-encrypted region: the inner
// sender address (id elided, family matching encodeForIPv4), the packed
// type/options byte, the command byte, and the payload.
func (c *Codec) buildPlaintext(msg *Message, encodeForIPv4 bool) []byte {
	inner := msg.Sender
	inner.SkipPeerID = true
	inner.IPv4 = encodeForIPv4
	inner.IPv6 = !encodeForIPv4

	plaintext := inner.Encode(nil)
	plaintext = append(plaintext, msg.TypeOptionsByte(), msg.Command)
	plaintext = append(plaintext, msg.Payload...)
	return plaintext
}

// appendHeaderFields writes versionAndType, messageId, and the XOR-pack
// and ephemeral public key fields, in that order.
func (c *Codec) appendHeaderFields(out []byte, msg *Message) []byte {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], msg.VersionAndType())
	out = append(out, word[:]...)

	binary.BigEndian.PutUint32(word[:], msg.MessageID)
	out = append(out, word[:]...)

	packed := msg.Sender.PeerID.XOROverlappedBy4(msg.Recipient.PeerID)
	out = append(out, packed[:]...)

	out = append(out, msg.EphemeralKeyPair.Public[:]...)
	return out
}

// encodeSharedKey implements the 0-RTT rule for the sending side:
// requests (ephRemote == nil) agree using the recipient's static PeerId;
// replies agree using the ephemeral public key that arrived with the
// original request.
func (c *Codec) encodeSharedKey(msg *Message, ephRemote *[32]byte) ([32]byte, error) {
	var remotePublic [32]byte
	if ephRemote != nil {
		remotePublic = *ephRemote
	} else {
		remotePublic = msg.Recipient.PeerID
	}

	sharedKey, err := crypto.DeriveSharedSecret(remotePublic, msg.EphemeralKeyPair.Private)
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.encodeSharedKey"}).WithError(err).Error("X25519 agreement failed")
		return [32]byte{}, ErrCryptoFailure
	}
	return sharedKey, nil
}

// DecodeHeader parses the fixed, unencrypted prefix of an inbound
// datagram and resolves the local recipient, without performing any
// cryptographic work. Callers use this to triage a packet — routing it
// to the worker that owns the matching key material — before paying the
// cost of DecodePayload.
func (c *Codec) DecodeHeader(datagram []byte, mgr PeerAddressManager) (*Header, error) {
	if len(datagram) < HeaderSizeMin {
		return nil, ErrBufferTooSmall
	}

	versionAndType := binary.BigEndian.Uint32(datagram[0:4])
	messageID := binary.BigEndian.Uint32(datagram[4:8])

	var packed [peer.PackedSize]byte
	copy(packed[:], datagram[8:44])

	recipientShort := peer.RecipientShortID(packed)
	senderShort := peer.SenderShortID(packed)

	recipientAddr, recipientPriv, err := mgr.GetPeerAddressFromShortID(recipientShort)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Codec.DecodeHeader",
			"short_id": recipientShort,
		}).Debug("dropping datagram for unknown recipient")
		return nil, ErrUnknownRecipient
	}

	senderID := peer.DeXOROverlappedBy4(recipientAddr.PeerID, packed)

	return &Header{
		Version:     versionAndType & 0x3FFFFFFF,
		MessageID:   messageID,
		Recipient:   recipientAddr,
		PrivateKey:  recipientPriv,
		SenderID:    senderID,
		SenderShort: senderShort,
	}, nil
}

// DecodePayload decrypts and parses the region of datagram that follows
// the 44-byte prefix DecodeHeader already consumed, verifies the trailing
// signature, and populates msg. ephLocal is non-nil iff the local peer
// issued the matching outbound request and holds its ephemeral private
// key; it mirrors the 0-RTT rule from the receiving side.
//
// A signature failure does not return an error: msg.Done is set false
// and every other field is still populated, so policy above the codec
// can inspect a tampered message's contents before discarding it.
func (c *Codec) DecodePayload(datagram []byte, header *Header, msg *Message, mgr PeerAddressManager, ephLocal *[32]byte, localSock, remoteSock net.Addr) error {
	if len(datagram) < HeaderSizeMin {
		return ErrBufferTooSmall
	}

	msg.RecipientSocket = localSock
	msg.SenderSocket = remoteSock
	msg.Version = header.Version
	msg.MessageID = header.MessageID
	msg.Recipient = header.Recipient

	copy(msg.EphemeralPublicKey[:], datagram[44:76])

	priv := header.PrivateKey
	if ephLocal != nil {
		priv = *ephLocal
	}

	sharedKey, err := crypto.DeriveSharedSecret(msg.EphemeralPublicKey, priv)
	// ephLocal, when present, is the caller's own ephemeral private key
	// from the original request — this is its final use under the 0-RTT
	// rule, so it is wiped here regardless of outcome. header.PrivateKey
	// is the recipient's long-term static key, owned by the catalog, and
	// is never wiped by the codec.
	if ephLocal != nil {
		crypto.ZeroBytes(ephLocal[:])
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.DecodePayload"}).WithError(err).Error("X25519 agreement failed")
		return ErrCryptoFailure
	}

	sigStart := len(datagram) - SignatureSize
	if sigStart < 76 {
		crypto.ZeroBytes(sharedKey[:])
		return ErrBufferTooSmall
	}

	plaintext := make([]byte, sigStart-76)
	cipher := crypto.NewStreamCipher(sharedKey)
	decErr := cipher.Decrypt(plaintext, datagram[76:sigStart])
	crypto.ZeroBytes(sharedKey[:])
	if decErr != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.DecodePayload"}).WithError(decErr).Error("ChaCha20 decryption failed")
		return ErrCryptoFailure
	}

	if err := c.parsePlaintext(plaintext, header, msg, remoteSock); err != nil {
		return err
	}

	signingKey, ok := mgr.GetSigningKey(header.SenderID)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "Codec.DecodePayload",
			"peer_id":  header.SenderID.String(),
		}).Debug("no signing key on file for sender, treating as unverified")
		msg.Done = false
		return nil
	}

	var sig crypto.Signature
	copy(sig[:], datagram[sigStart:])
	verified, err := crypto.Verify(datagram[:sigStart], sig, signingKey)
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.DecodePayload"}).WithError(err).Error("Ed25519 verification errored")
		msg.Done = false
		return nil
	}
	msg.Done = verified

	return nil
}

// parsePlaintext decodes the inner sender address, type/options byte,
// command byte, and payload from the decrypted region.
func (c *Codec) parsePlaintext(plaintext []byte, header *Header, msg *Message, remoteSock net.Addr) error {
	senderAddr, rest, err := peer.Decode(plaintext)
	if err != nil {
		logrus.WithFields(logrus.Fields{"function": "Codec.parsePlaintext"}).WithError(err).Debug("inner peer address decode failed")
		return ErrMalformedPeerAddress
	}

	if udpAddr, ok := remoteSock.(*net.UDPAddr); ok {
		senderAddr = senderAddr.WithIPSocket(udpAddr)
	}
	senderAddr = senderAddr.WithPeerID(header.SenderID)
	msg.Sender = senderAddr

	if len(rest) < 2 {
		return ErrMalformedPeerAddress
	}

	typeOptions := rest[0]
	msg.Type = Type(typeOptions >> 4)
	msg.Options = typeOptions & 0x0F
	msg.Command = rest[1]
	msg.Payload = append([]byte{}, rest[2:]...)

	return nil
}
