// Package lcp defines the narrow interface the discovery driver uses to
// collaborate with a PPP Link Control Protocol implementation over the
// RFC4638 PPP-Max-Payload tag. Actual LCP negotiation happens in the
// session phase, out of scope for a discovery-only client; this package
// exists so the driver can be built and tested independently of whichever
// PPP daemon eventually drives the session.
package lcp

// Negotiator lets the discovery driver advertise an MRU to the access
// concentrator during discovery (RFC4638 section 3.1) and learn what the
// peer is willing to accept, without discovery needing to know anything
// about PPP option negotiation itself.
type Negotiator interface {
	// WantMRU returns the MRU the client would like to use for the PPP
	// session, or 0 if the client has no preference beyond the standard
	// PPPoE MTU.
	WantMRU() uint16

	// ApplyPeerMRU records the PPP-Max-Payload value echoed back by the
	// access concentrator in its PADO, if any. A PPP-Max-Payload tag in a
	// PADS is not passed on.
	ApplyPeerMRU(mru uint16)
}

// NopNegotiator is the default Negotiator: it never asks for a non-standard
// MRU and discards whatever the peer offers. Used whenever the caller has
// no PPP session collaborator wired up yet, e.g. in tests of the discovery
// driver alone.
type NopNegotiator struct{}

// WantMRU implements Negotiator.
func (NopNegotiator) WantMRU() uint16 { return 0 }

// ApplyPeerMRU implements Negotiator.
func (NopNegotiator) ApplyPeerMRU(mru uint16) {}

// FixedNegotiator is a Negotiator that always requests the same
// operator-configured MRU and remembers whatever PPP-Max-Payload value the
// access concentrator echoes back. It stands in for a real PPP LCP
// implementation until the session-phase collaborator is wired up: the
// driver only needs to know what to ask for and a place to record the
// answer, not how to run LCP itself.
type FixedNegotiator struct {
	Want uint16

	// PeerMRU is set by ApplyPeerMRU once the access concentrator has
	// replied with its own PPP-Max-Payload value.
	PeerMRU uint16
}

// NewFixedNegotiator returns a FixedNegotiator requesting want as the PPP
// session MRU.
func NewFixedNegotiator(want uint16) *FixedNegotiator {
	return &FixedNegotiator{Want: want}
}

// WantMRU implements Negotiator.
func (n *FixedNegotiator) WantMRU() uint16 { return n.Want }

// ApplyPeerMRU implements Negotiator.
func (n *FixedNegotiator) ApplyPeerMRU(mru uint16) { n.PeerMRU = mru }
