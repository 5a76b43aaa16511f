package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/katalix/pppoe-discovery/transport"
	"github.com/katalix/pppoe-discovery/wire"
)

// ProbeResult describes one access concentrator seen during a probe.
type ProbeResult struct {
	PeerHWAddr  [6]byte
	ACName      string
	ServiceName string
	Cookie      []byte
}

// String renders a probe result the way an operator running -probe from a
// terminal would want to read it.
func (r ProbeResult) String() string {
	return fmt.Sprintf("AC %q (mac %02x:%02x:%02x:%02x:%02x:%02x) offers service %q, cookie=%x",
		r.ACName, r.PeerHWAddr[0], r.PeerHWAddr[1], r.PeerHWAddr[2], r.PeerHWAddr[3],
		r.PeerHWAddr[4], r.PeerHWAddr[5], r.ServiceName, r.Cookie)
}

// Probe sends a single PADI, collects every PADO that passes the filters
// until the deadline, and returns without ever sending a PADR. The caller
// is expected to print each result as it arrives via onResult; Probe
// itself only accumulates and returns the full list once the timeout
// (held constant across the probe, not doubled) has elapsed.
func Probe(ctx context.Context, xport transport.Transport, logger log.Logger, cfg Config, timeout time.Duration, onResult func(ProbeResult)) ([]ProbeResult, error) {
	cfg.Probe = true
	c := newConnection(xport.HWAddr(), cfg)

	var results []ProbeResult
	collect := func(pkt *wire.Packet) {
		r := ProbeResult{PeerHWAddr: pkt.SrcHWAddr}
		if tag := pkt.GetTag(wire.TagTypeACName); tag != nil {
			r.ACName = string(tag.Data)
		}
		if tag := pkt.GetTag(wire.TagTypeServiceName); tag != nil {
			r.ServiceName = string(tag.Data)
		}
		if tag := pkt.GetTag(wire.TagTypeACCookie); tag != nil {
			// Copy out of the receive buffer: probe mode keeps
			// draining after accepting a PADO, and the next Recv
			// call reuses the same backing array.
			r.Cookie = append([]byte(nil), tag.Data...)
		}
		results = append(results, r)
		if onResult != nil {
			onResult(r)
		}
	}

	padi := c.buildPADI()
	b, err := padi.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode PADI: %w", err)
	}
	level.Debug(logger).Log("message", "sending PADI for probe")
	if err := xport.Send(b); err != nil {
		return nil, fmt.Errorf("failed to send PADI: %w", err)
	}

	if _, err := c.waitForPADO(ctx, xport, logger, timeout, collect); err != nil {
		return results, err
	}

	level.Info(logger).Log("message", "probe complete", "acs_seen", len(results))
	return results, nil
}
