package discovery

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/katalix/pppoe-discovery/transport"
	"github.com/katalix/pppoe-discovery/wire"
)

var broadcastHWAddr = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// waitForPADO blocks until an acceptable PADO arrives or timeout elapses.
// In probe mode every accepted PADO is reported via onAccept and the loop
// keeps draining until the deadline instead of returning on first
// acceptance, so a probe run can enumerate every access concentrator on
// the segment.
//
// A nil packet with a nil error means the deadline expired without an
// acceptable PADO; the caller (the driver) decides what to do next. If ctx
// itself is cancelled or expires first, ctx's error is returned.
func (c *connection) waitForPADO(ctx context.Context, xport transport.Transport, logger log.Logger, timeout time.Duration, onAccept func(*wire.Packet)) (*wire.Packet, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 2048)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}

		recvCtx, cancel := context.WithDeadline(ctx, deadline)
		n, err := xport.Recv(recvCtx, buf)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, nil
			}
			return nil, err
		}

		pkt, err := wire.ParseFrame(buf[:n])
		if err != nil {
			level.Warn(logger).Log("message", "dropping malformed frame while waiting for PADO", "error", err)
			continue
		}

		if pkt.Code != wire.CodePADO {
			continue
		}
		if pkt.SrcHWAddr == broadcastHWAddr {
			level.Warn(logger).Log("message", "dropping PADO from broadcast source")
			continue
		}
		if !c.packetIsForMe(pkt) {
			continue
		}

		ev := c.interpretPADO(pkt)
		if !ev.padoAccepted() {
			if ev.gotError {
				level.Warn(logger).Log("message", "PADO carried an error tag", "tag", ev.errTag, "value", ev.errMessage)
				if !c.cfg.Persist {
					return nil, &ACError{Tag: ev.errTag, Message: ev.errMessage}
				}
				continue
			}
			// Rejected on AC-Name/Service-Name filters rather than an
			// error tag: remembered so the driver can report
			// ErrNoPADOAccepted instead of a bare timeout once the PADI
			// cycle is exhausted.
			c.sawRejectedPADO = true
			continue
		}

		c.numPADOs++
		if onAccept != nil {
			onAccept(pkt)
		}
		if !c.cfg.Probe {
			c.peerHWAddr = pkt.SrcHWAddr
			c.state = stateReceivedPADO
			return pkt, nil
		}
		// probe mode: keep draining until the deadline
	}
}

// waitForPADS blocks until a PADS matching the latched peer arrives or
// timeout elapses. A nil packet with a nil error means the deadline
// expired. If ctx itself is cancelled or expires first, ctx's error is
// returned.
func (c *connection) waitForPADS(ctx context.Context, xport transport.Transport, logger log.Logger, timeout time.Duration) (*wire.Packet, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 2048)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}

		recvCtx, cancel := context.WithDeadline(ctx, deadline)
		n, err := xport.Recv(recvCtx, buf)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, nil
			}
			return nil, err
		}

		pkt, err := wire.ParseFrame(buf[:n])
		if err != nil {
			level.Warn(logger).Log("message", "dropping malformed frame while waiting for PADS", "error", err)
			continue
		}

		if pkt.Code != wire.CodePADS {
			continue
		}
		if pkt.SrcHWAddr != c.peerHWAddr {
			continue
		}
		if !c.packetIsForMe(pkt) {
			continue
		}

		ev := c.interpretPADS(pkt)
		if ev.padsHadError {
			level.Warn(logger).Log("message", "PADS carried an error tag", "tag", ev.errTag, "value", ev.errMessage)
			return pkt, &ACError{Tag: ev.errTag, Message: ev.errMessage}
		}

		if pkt.SessionID == 0 || pkt.SessionID == 0xffff {
			level.Warn(logger).Log("message", "PADS carried a non-RFC-compliant session id", "session", pkt.SessionID)
		}

		c.sessionID = pkt.SessionID
		c.state = stateSession
		return pkt, nil
	}
}
