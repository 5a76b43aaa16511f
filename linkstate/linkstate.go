// Package linkstate performs a minimal netlink query to find out whether an
// Ethernet interface is administratively and operationally up before the
// discovery driver wastes a PADI retry cycle sending into a dead link.
//
// Link state is a plain rtnetlink concept, not a generic netlink family, so
// package mdlayher/genetlink has no role here: only the non-generic
// mdlayher/netlink connection is needed to send an RTM_GETLINK request and
// parse its reply.
package linkstate

import (
	"encoding/binary"
	"fmt"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// rtmGetLink and the ifinfomsg layout are defined by linux/rtnetlink.h and
// linux/if_link.h; mdlayher/netlink only provides the generic message
// envelope, so the route-specific payload is built and parsed by hand here.
const rtmGetLink = 18

type ifinfomsg struct {
	Family uint8
	_      uint8
	Type   uint16
	Index  int32
	Flags  uint32
	Change uint32
}

// IsUp reports whether the named interface currently has IFF_UP and
// IFF_RUNNING set, i.e. it is administratively enabled and has a carrier.
func IsUp(ifname string) (bool, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return false, fmt.Errorf("failed to dial rtnetlink: %w", err)
	}
	defer conn.Close()

	ae := netlink.NewAttributeEncoder()
	ae.String(unix.IFLA_IFNAME, ifname)
	attrs, err := ae.Encode()
	if err != nil {
		return false, fmt.Errorf("failed to encode IFLA_IFNAME: %w", err)
	}

	// Family, Type and Index are left zero: the kernel resolves the
	// interface from the IFLA_IFNAME attribute instead.
	hdr := make([]byte, 16)
	payload := append(hdr, attrs...)

	req := netlink.Message{
		Header: netlink.Header{
			Type:  rtmGetLink,
			Flags: netlink.Request | netlink.Acknowledge,
		},
		Data: payload,
	}

	msgs, err := conn.Execute(req)
	if err != nil {
		return false, fmt.Errorf("RTM_GETLINK for %q failed: %w", ifname, err)
	}
	if len(msgs) == 0 {
		return false, fmt.Errorf("RTM_GETLINK for %q returned no reply", ifname)
	}
	if len(msgs[0].Data) < 16 {
		return false, fmt.Errorf("RTM_GETLINK for %q returned a short reply", ifname)
	}

	flags := binary.LittleEndian.Uint32(msgs[0].Data[8:12])
	up := flags&unix.IFF_UP != 0
	running := flags&unix.IFF_RUNNING != 0
	return up && running, nil
}
