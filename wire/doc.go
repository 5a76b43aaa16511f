/*
Package wire implements the on-the-wire format of the PPPoE Discovery
protocol specified by RFC2516, plus the PPP-Max-Payload tag added by
RFC4638.

This package only concerns itself with encoding and decoding; it knows
nothing about sockets, retransmission, or the discovery state machine.
Those live in package discovery.

Usage

	padi := wire.NewPADI(srcHWAddr, "", false)
	padi.AddTag(wire.TagTypeHostUniq, hostUniq)
	b, err := padi.ToBytes()

	pkt, err := wire.ParseFrame(received)
	if err != nil {
		// drop the frame; err wraps ErrBogusLength or ErrNotDiscovery
	}
*/
package wire
