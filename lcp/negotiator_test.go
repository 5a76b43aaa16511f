package lcp

import "testing"

func TestNopNegotiator(t *testing.T) {
	var n Negotiator = NopNegotiator{}
	if mru := n.WantMRU(); mru != 0 {
		t.Errorf("got %d, want 0", mru)
	}
	n.ApplyPeerMRU(1500) // must not panic
}

func TestFixedNegotiator(t *testing.T) {
	var n Negotiator = NewFixedNegotiator(1500)
	if mru := n.WantMRU(); mru != 1500 {
		t.Errorf("got WantMRU %d, want 1500", mru)
	}
	n.ApplyPeerMRU(1492)
	fn := n.(*FixedNegotiator)
	if fn.PeerMRU != 1492 {
		t.Errorf("got PeerMRU %d, want 1492", fn.PeerMRU)
	}
}
