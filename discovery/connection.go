package discovery

import (
	"time"

	"github.com/katalix/pppoe-discovery/lcp"
	"github.com/katalix/pppoe-discovery/wire"
)

// NoServiceNameSentinel, when used as Config.ServiceName, tells the driver
// to omit the Service-Name tag from PADI entirely. Some access
// concentrators misbehave when handed a zero-length Service-Name tag; this
// sentinel is the documented workaround.
const NoServiceNameSentinel = "NO-SERVICE-NAME-NON-RFC-COMPLIANT"

// state is the discovery connection's position in the handshake.
type state int

const (
	stateInitial state = iota
	stateSentPADI
	stateReceivedPADO
	stateSentPADR
	stateSession
)

func (s state) String() string {
	switch s {
	case stateInitial:
		return "INITIAL"
	case stateSentPADI:
		return "SENT_PADI"
	case stateReceivedPADO:
		return "RECEIVED_PADO"
	case stateSentPADR:
		return "SENT_PADR"
	case stateSession:
		return "SESSION"
	}
	return "UNKNOWN"
}

// MaxPADIAttempts bounds both the PADI and PADR retry cycles.
const MaxPADIAttempts = 3

// Config carries everything the driver needs to know before the first
// PADI is sent. Zero values are valid: an empty ServiceName means "accept
// any service", an empty ACName means "accept any AC", a nil HostUniq
// means "do not filter or send a Host-Uniq tag".
type Config struct {
	ServiceName      string
	ACName           string
	HostUniq         []byte
	DiscoveryTimeout time.Duration
	Persist          bool
	Probe            bool
	Negotiator       lcp.Negotiator

	// SkipDiscovery and KillSession together select the kill-session
	// shortcut: when both are set, Run sends a single
	// PADT for KillSessionID/KillPeerHWAddr and returns immediately
	// without running the PADI/PADR handshake at all.
	SkipDiscovery  bool
	KillSession    bool
	KillSessionID  wire.SessionID
	KillPeerHWAddr [6]byte
}

// evalRecord is the per-frame scratch record the PADO/PADS interpreters
// populate.
type evalRecord struct {
	seenACName      bool
	seenServiceName bool
	acNameOK        bool
	serviceNameOK   bool
	gotError        bool
	errTag          wire.TagType
	errMessage      string
	padsHadError    bool
}

// connection is the single long-lived record owned exclusively by the
// driver for one discovery run.
type connection struct {
	cfg Config

	localHWAddr [6]byte
	peerHWAddr  [6]byte

	acCookie *wire.Tag
	relayID  *wire.Tag

	sessionID wire.SessionID
	state     state

	numPADOs     int
	padiAttempts int
	padrAttempts int

	maxPayloadSeen bool

	// sawRejectedPADO is set when a PADO passed the packet filter and
	// carried no error tag but still failed the configured AC-Name or
	// Service-Name match. It distinguishes "no AC ever replied" from "an
	// AC replied but wasn't an acceptable match" once a PADI cycle is
	// exhausted.
	sawRejectedPADO bool
}

func newConnection(localHWAddr [6]byte, cfg Config) *connection {
	if cfg.Negotiator == nil {
		cfg.Negotiator = lcp.NopNegotiator{}
	}
	return &connection{
		cfg:         cfg,
		localHWAddr: localHWAddr,
		state:       stateInitial,
	}
}

// wantMaxPayloadTag reports whether a PPP-Max-Payload tag should be added
// to an outgoing PADI/PADR: only when the negotiator's wanted MRU exceeds
// the standard PPPoE MTU.
func (c *connection) wantMaxPayloadTag() (uint16, bool) {
	want := c.cfg.Negotiator.WantMRU()
	if want > wire.StandardMTU {
		return want, true
	}
	return 0, false
}
