package discovery

import "github.com/katalix/pppoe-discovery/wire"

// packetIsForMe rejects frames not addressed to the local interface, and,
// if a Host-Uniq is configured, demands a byte-exact match on that tag
// before any code-specific interpretation runs.
func (c *connection) packetIsForMe(pkt *wire.Packet) bool {
	if pkt.DstHWAddr != c.localHWAddr {
		return false
	}
	if len(c.cfg.HostUniq) == 0 {
		return true
	}
	for _, tag := range pkt.GetTags(wire.TagTypeHostUniq) {
		if bytesEqual(tag.Data, c.cfg.HostUniq) {
			return true
		}
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
