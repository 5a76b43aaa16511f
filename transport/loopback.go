package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned by Loopback.Recv once the transport has been
// closed, so a blocked driver goroutine unblocks rather than hanging.
var ErrClosed = errors.New("transport: loopback closed")

// Loopback is an in-memory Transport used by tests to exercise the
// discovery driver's state machine without a real network interface. Two
// Loopbacks created with NewLoopbackPair feed each other's Send directly
// into the peer's Recv channel, simulating a client and an access
// concentrator sharing a segment.
type Loopback struct {
	hwAddr [6]byte
	out    chan<- []byte
	in     <-chan []byte
	closed chan struct{}
}

// NewLoopbackPair returns two connected Loopback transports: frames sent on
// a are delivered to b's Recv, and vice versa.
func NewLoopbackPair(hwAddrA, hwAddrB [6]byte) (a, b *Loopback) {
	toA := make(chan []byte, 16)
	toB := make(chan []byte, 16)
	a = &Loopback{hwAddr: hwAddrA, out: toB, in: toA, closed: make(chan struct{})}
	b = &Loopback{hwAddr: hwAddrB, out: toA, in: toB, closed: make(chan struct{})}
	return a, b
}

// Send implements Transport.
func (l *Loopback) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	select {
	case l.out <- cp:
		return nil
	case <-l.closed:
		return ErrClosed
	}
}

// Recv implements Transport.
func (l *Loopback) Recv(ctx context.Context, b []byte) (int, error) {
	select {
	case frame := <-l.in:
		n := copy(b, frame)
		return n, nil
	case <-l.closed:
		return 0, ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// HWAddr implements Transport.
func (l *Loopback) HWAddr() [6]byte {
	return l.hwAddr
}

// Close implements Transport.
func (l *Loopback) Close() error {
	select {
	case <-l.closed:
		// already closed
	default:
		close(l.closed)
	}
	return nil
}
