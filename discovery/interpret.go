package discovery

import "github.com/katalix/pppoe-discovery/wire"

// interpretPADO populates a fresh evalRecord from a PADO's tags and
// latches the AC-Cookie/Relay-Session-Id into the connection for later
// verbatim echo in PADR.
//
// acNameOK and serviceNameOK start true when the corresponding filter is
// unconfigured, i.e. "accept anything".
func (c *connection) interpretPADO(pkt *wire.Packet) *evalRecord {
	ev := &evalRecord{
		acNameOK:      c.cfg.ACName == "",
		serviceNameOK: c.cfg.ServiceName == "" || c.cfg.ServiceName == NoServiceNameSentinel,
	}

	for _, tag := range pkt.Tags {
		switch tag.Type {
		case wire.TagTypeACName:
			ev.seenACName = true
			if c.cfg.ACName != "" {
				ev.acNameOK = string(tag.Data) == c.cfg.ACName
			}
		case wire.TagTypeServiceName:
			ev.seenServiceName = true
			// A received zero-length Service-Name always matches,
			// regardless of whether a name was configured. Some access
			// concentrators echo an empty Service-Name tag as a wildcard
			// accept; this is deliberately not tightened into a strict
			// equality check.
			if len(tag.Data) == 0 {
				ev.serviceNameOK = true
			} else if c.cfg.ServiceName != "" && c.cfg.ServiceName != NoServiceNameSentinel {
				ev.serviceNameOK = string(tag.Data) == c.cfg.ServiceName
			}
		case wire.TagTypeACCookie:
			cookie := *tag
			c.acCookie = &cookie
		case wire.TagTypeRelaySessionID:
			relay := *tag
			c.relayID = &relay
		case wire.TagTypePPPMaxPayload:
			if len(tag.Data) == 2 {
				mru := uint16(tag.Data[0])<<8 | uint16(tag.Data[1])
				if mru >= wire.StandardMTU {
					c.maxPayloadSeen = true
					c.cfg.Negotiator.ApplyPeerMRU(mru)
				}
			}
		default:
			if tag.Type.IsError() {
				ev.gotError = true
				ev.errTag = tag.Type
				ev.errMessage = string(tag.Data)
			}
		}
	}

	return ev
}

// padoAccepted reports whether a PADO passed every configured filter and
// carried no error tag.
func (ev *evalRecord) padoAccepted() bool {
	return ev.seenACName && ev.seenServiceName && !ev.gotError && ev.acNameOK && ev.serviceNameOK
}

// interpretPADS populates a fresh evalRecord from a PADS's tags and
// captures a fresh Relay-Session-Id if the AC supplied one.
func (c *connection) interpretPADS(pkt *wire.Packet) *evalRecord {
	ev := &evalRecord{}
	for _, tag := range pkt.Tags {
		switch {
		case tag.Type == wire.TagTypeRelaySessionID:
			relay := *tag
			c.relayID = &relay
		case tag.Type.IsError():
			ev.gotError = true
			ev.errTag = tag.Type
			ev.errMessage = string(tag.Data)
			ev.padsHadError = true
		}
	}
	return ev
}
