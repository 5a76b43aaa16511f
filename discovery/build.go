package discovery

import "github.com/katalix/pppoe-discovery/wire"

// buildPADI assembles a PADI carrying Service-Name (possibly omitted
// entirely for the non-RFC-compliant sentinel), an optional Host-Uniq,
// and an optional PPP-Max-Payload tag.
func (c *connection) buildPADI() *wire.Packet {
	addServiceNameTag := c.cfg.ServiceName != NoServiceNameSentinel
	pkt := wire.NewPADI(c.localHWAddr, c.cfg.ServiceName, addServiceNameTag)
	c.addCommonTags(pkt)
	return pkt
}

// buildPADR assembles a PADR carrying Service-Name (always present), an
// optional Host-Uniq, the AC-Cookie and Relay-Session-Id tags echoed
// verbatim from the accepted PADO, and an optional PPP-Max-Payload tag.
// The caller must have already latched peerHWAddr, acCookie and relayID
// from exactly one accepted PADO before calling this.
func (c *connection) buildPADR() *wire.Packet {
	serviceName := c.cfg.ServiceName
	if serviceName == NoServiceNameSentinel {
		// PADR always carries a Service-Name tag, possibly zero-length;
		// the sentinel only controls whether PADI omits the tag entirely.
		serviceName = ""
	}
	pkt := wire.NewPADR(c.localHWAddr, c.peerHWAddr, serviceName)
	c.addHostUniqTag(pkt)
	if c.acCookie != nil {
		pkt.AddTag(c.acCookie.Type, c.acCookie.Data)
	}
	if c.relayID != nil {
		pkt.AddTag(c.relayID.Type, c.relayID.Data)
	}
	c.addMaxPayloadTag(pkt)
	return pkt
}

func (c *connection) addCommonTags(pkt *wire.Packet) {
	c.addHostUniqTag(pkt)
	c.addMaxPayloadTag(pkt)
}

func (c *connection) addHostUniqTag(pkt *wire.Packet) {
	if len(c.cfg.HostUniq) > 0 {
		pkt.AddTag(wire.TagTypeHostUniq, c.cfg.HostUniq)
	}
}

func (c *connection) addMaxPayloadTag(pkt *wire.Packet) {
	if mru, ok := c.wantMaxPayloadTag(); ok {
		pkt.AddTag(wire.TagTypePPPMaxPayload, []byte{byte(mru >> 8), byte(mru)})
	}
}
