package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/katalix/pppoe-discovery/transport"
	"github.com/katalix/pppoe-discovery/wire"
)

// Result is what Run returns on success: the session parameters a PPP
// session collaborator needs to continue.
type Result struct {
	SessionID  wire.SessionID
	PeerHWAddr [6]byte
}

// Run drives the PADI/PADR discovery handshake to completion. Send and
// receive for a given attempt happen concurrently under a single
// cancellable context, coordinated with an errgroup, so a transport
// failure on either side unblocks the other promptly instead of leaving
// the driver to wait out the full per-attempt timeout.
func Run(ctx context.Context, xport transport.Transport, logger log.Logger, cfg Config) (Result, error) {
	c := newConnection(xport.HWAddr(), cfg)

	if cfg.SkipDiscovery && cfg.KillSession {
		if err := sendPADT(xport, c.localHWAddr, cfg.KillPeerHWAddr, cfg.KillSessionID); err != nil {
			return Result{}, fmt.Errorf("failed to send PADT: %w", err)
		}
		level.Info(logger).Log("message", "sent PADT, exiting", "session", cfg.KillSessionID)
		return Result{}, nil
	}

	timeout := cfg.DiscoveryTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	for {
		pado, err := c.runPADIPhase(ctx, xport, logger, timeout)
		if err != nil {
			return Result{}, err
		}
		if pado == nil {
			// attempts exhausted without an acceptable PADO
			if !cfg.Persist {
				if c.sawRejectedPADO {
					return Result{}, ErrNoPADOAccepted
				}
				return Result{}, ErrDiscoveryTimedOut
			}
			level.Warn(logger).Log("message", "giving up on PADI cycle, restarting", "persist", true)
			c.resetPADICycle()
			continue
		}

		pads, err := c.runPADRPhase(ctx, xport, logger, timeout)
		if err != nil {
			if !cfg.Persist {
				return Result{}, err
			}
			level.Warn(logger).Log("message", "PADR phase failed, restarting at PADI", "error", err)
			c.resetFullCycle()
			continue
		}
		if pads == nil {
			// PADR attempts exhausted: restart the full cycle at PADI
			// rather than retrying PADR against a possibly-stale AC.
			if !cfg.Persist {
				return Result{}, ErrDiscoveryTimedOut
			}
			level.Warn(logger).Log("message", "giving up on PADR cycle, restarting at PADI", "persist", true)
			c.resetFullCycle()
			continue
		}

		return Result{SessionID: c.sessionID, PeerHWAddr: c.peerHWAddr}, nil
	}
}

// runPADIPhase sends PADI up to MaxPADIAttempts times, doubling the
// per-attempt timeout after each unsuccessful wait, and returns the first
// accepted PADO or nil if the cycle is exhausted.
func (c *connection) runPADIPhase(ctx context.Context, xport transport.Transport, logger log.Logger, initialTimeout time.Duration) (*wire.Packet, error) {
	timeout := initialTimeout
	for c.padiAttempts = 0; c.padiAttempts < MaxPADIAttempts; c.padiAttempts++ {
		c.state = stateSentPADI
		pado, err := c.sendAndWait(ctx, xport, logger, timeout, c.buildPADI(), func(ctx context.Context, xport transport.Transport, logger log.Logger, timeout time.Duration) (*wire.Packet, error) {
			return c.waitForPADO(ctx, xport, logger, timeout, nil)
		})
		if err != nil {
			return nil, err
		}
		if pado != nil {
			return pado, nil
		}
		if !c.cfg.Probe {
			timeout *= 2
		}
	}
	return nil, nil
}

// runPADRPhase sends PADR up to MaxPADIAttempts times, doubling the
// per-attempt timeout after each unsuccessful wait, and returns the PADS
// on success or nil if the cycle is exhausted.
func (c *connection) runPADRPhase(ctx context.Context, xport transport.Transport, logger log.Logger, initialTimeout time.Duration) (*wire.Packet, error) {
	timeout := initialTimeout
	for c.padrAttempts = 0; c.padrAttempts < MaxPADIAttempts; c.padrAttempts++ {
		c.state = stateSentPADR
		pads, err := c.sendAndWait(ctx, xport, logger, timeout, c.buildPADR(), c.waitForPADS)
		if err != nil {
			return nil, err
		}
		if pads != nil {
			return pads, nil
		}
		timeout *= 2
	}
	return nil, nil
}

// sendAndWait transmits pkt and runs wait concurrently under one
// cancellable context via errgroup, so either side failing unblocks the
// other.
func (c *connection) sendAndWait(ctx context.Context, xport transport.Transport, logger log.Logger, timeout time.Duration, pkt *wire.Packet, wait func(context.Context, transport.Transport, log.Logger, time.Duration) (*wire.Packet, error)) (*wire.Packet, error) {
	b, err := pkt.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v: %w", pkt.Code, err)
	}

	level.Debug(logger).Log("message", "sending", "code", pkt.Code)

	g, gctx := errgroup.WithContext(ctx)
	var result *wire.Packet
	g.Go(func() error {
		return xport.Send(b)
	})
	g.Go(func() error {
		var err error
		result, err = wait(gctx, xport, logger, timeout)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *connection) resetPADICycle() {
	c.padiAttempts = 0
	c.numPADOs = 0
	c.sawRejectedPADO = false
}

func (c *connection) resetFullCycle() {
	c.resetPADICycle()
	c.padrAttempts = 0
	c.acCookie = nil
	c.relayID = nil
	c.peerHWAddr = [6]byte{}
	c.state = stateInitial
}

func sendPADT(xport transport.Transport, localHWAddr, peerHWAddr [6]byte, sid wire.SessionID) error {
	pkt := wire.NewPADT(localHWAddr, peerHWAddr, sid)
	b, err := pkt.ToBytes()
	if err != nil {
		return fmt.Errorf("failed to encode PADT: %w", err)
	}
	return xport.Send(b)
}
