package transport

import (
	"context"
	"net"
	"sync"
)

// UDPTransport implements the Transport interface over a UDP socket. It
// ferries raw datagrams in and out and never interprets their contents —
// that is the codec's job.
type UDPTransport struct {
	conn       net.PacketConn
	listenAddr net.Addr

	mu      sync.RWMutex
	handler DatagramHandler

	ctx    context.Context
	cancel context.CancelFunc
}

// NewUDPTransport binds a UDP socket at listenAddr and starts the read loop.
func NewUDPTransport(listenAddr string) (Transport, error) {
	conn, err := net.ListenPacket("udp", listenAddr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	t := &UDPTransport{
		conn:       conn,
		listenAddr: conn.LocalAddr(),
		ctx:        ctx,
		cancel:     cancel,
	}

	go t.processDatagrams()

	return t, nil
}

// RegisterHandler installs the callback invoked for every inbound datagram.
func (t *UDPTransport) RegisterHandler(handler DatagramHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handler = handler
}

// Send transmits a raw datagram to addr.
func (t *UDPTransport) Send(datagram []byte, addr net.Addr) error {
	_, err := t.conn.WriteTo(datagram, addr)
	return err
}

// Close shuts down the transport and stops the read loop.
func (t *UDPTransport) Close() error {
	t.cancel()
	return t.conn.Close()
}

// LocalAddr returns the local address the transport is bound to.
func (t *UDPTransport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

// datagramBufferSize is larger than HEADER_SIZE_MIN plus any realistic
// payload; oversized reads are simply truncated by ReadFrom. A truncated
// datagram still passes the codec's length checks; it surfaces downstream
// as a failed signature check (Message.Done = false).
const datagramBufferSize = 2048

func (t *UDPTransport) processDatagrams() {
	buffer := make([]byte, datagramBufferSize)

	for {
		select {
		case <-t.ctx.Done():
			return
		default:
		}

		n, addr, err := t.conn.ReadFrom(buffer)
		if err != nil {
			select {
			case <-t.ctx.Done():
				return
			default:
				continue
			}
		}

		t.processOneDatagram(buffer[:n], addr)
	}
}

func (t *UDPTransport) processOneDatagram(data []byte, addr net.Addr) {
	t.mu.RLock()
	handler := t.handler
	t.mu.RUnlock()

	if handler == nil {
		return
	}

	// Copy out of the shared read buffer before handing off, since the
	// handler runs concurrently with the next ReadFrom.
	datagram := make([]byte, len(data))
	copy(datagram, data)

	go handler(datagram, addr)
}
