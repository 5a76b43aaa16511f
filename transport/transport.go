package transport

import "context"

// Transport is the narrow interface the discovery driver depends on. It
// deliberately says nothing about sockets or interfaces: production code
// gets a *RawSocket, tests get a *Loopback pair.
type Transport interface {
	// Send transmits a single raw Ethernet frame.
	Send(b []byte) error

	// Recv blocks until a frame arrives, ctx is cancelled, or an error
	// occurs. It returns the number of bytes written into b.
	Recv(ctx context.Context, b []byte) (int, error)

	// HWAddr returns the Ethernet address frames are sent from.
	HWAddr() [6]byte

	// Close releases the underlying resource. Recv calls blocked on the
	// transport return an error once Close runs.
	Close() error
}
