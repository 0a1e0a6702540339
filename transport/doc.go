// Package transport provides the minimal datagram I/O contract the DHT wire
// codec is built against. The codec itself is transport-agnostic: it reads
// and writes a single contiguous buffer and never touches a socket.
//
// This package exists only to show the boundary of that contract — an
// implementation delivers raw datagrams to a handler and sends raw
// datagrams back out; everything about framing, encryption, and signing
// happens inside the codec, not here.
//
//	t, err := transport.NewUDPTransport(":33445")
//	t.RegisterHandler(func(datagram []byte, addr net.Addr) {
//	    // hand the datagram to dht.Codec's decode path
//	})
//	err = t.Send(datagram, remoteAddr)
package transport
