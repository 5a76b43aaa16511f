package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// htons converts a uint16 from host to network byte order, needed because
// the Linux AF_PACKET protocol argument and SockaddrLinklayer.Protocol field
// are both expected in network byte order.
func htons(v uint16) uint16 {
	return (v << 8) | (v >> 8)
}

// RawSocket is a Transport backed by a Linux AF_PACKET raw socket bound to
// a single interface, filtering on the given EtherType.
type RawSocket struct {
	iface *net.Interface
	file  *os.File
}

// NewRawSocket opens and binds a raw discovery socket on ifname, filtering
// for frames carrying etherType (typically wire.EtherTypeDiscovery).
func NewRawSocket(ifname string, etherType uint16) (*RawSocket, error) {
	iface, err := net.InterfaceByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interface %q: %w", ifname, err)
	}

	proto := htons(etherType)

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(proto))
	if err != nil {
		return nil, fmt.Errorf("socket: %w", err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to set socket nonblocking: %w", err)
	}

	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("fcntl(F_GETFD): %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, flags|unix.FD_CLOEXEC); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("fcntl(F_SETFD, FD_CLOEXEC): %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt(SO_BROADCAST): %w", err)
	}

	sa := unix.SockaddrLinklayer{
		Protocol: proto,
		Ifindex:  iface.Index,
	}
	if err := unix.Bind(fd, &sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to bind socket to %q: %w", ifname, err)
	}

	file := os.NewFile(uintptr(fd), "pppoe-discovery")

	return &RawSocket{iface: iface, file: file}, nil
}

// Send implements Transport.
func (c *RawSocket) Send(b []byte) error {
	_, err := c.file.Write(b)
	return err
}

// Recv implements Transport. A deadline derived from ctx, if any, is
// applied to the underlying socket, and a cancellation of ctx moves the
// read deadline to the present, so a cancelled context unblocks the read
// promptly. The goroutine watching ctx exits before Recv returns.
func (c *RawSocket) Recv(ctx context.Context, b []byte) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		if err := c.file.SetReadDeadline(dl); err != nil {
			return 0, fmt.Errorf("failed to set read deadline: %w", err)
		}
	} else {
		c.file.SetReadDeadline(time.Time{})
	}

	stop := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		select {
		case <-ctx.Done():
			c.file.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		<-watcherDone
	}()

	n, err := c.file.Read(b)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	return n, nil
}

// HWAddr implements Transport.
func (c *RawSocket) HWAddr() (addr [6]byte) {
	if len(c.iface.HardwareAddr) >= 6 {
		copy(addr[:], c.iface.HardwareAddr[:6])
	}
	return addr
}

// Close implements Transport.
func (c *RawSocket) Close() error {
	return c.file.Close()
}
