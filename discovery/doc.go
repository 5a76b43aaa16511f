/*
Package discovery implements the client side of the PPPoE Discovery
handshake: PADI -> PADO -> PADR -> PADS, including the packet filter, tag
interpreters, the timed wait loop, and the retry/backoff driver that ties
them together.

Run drives a normal discovery session to completion or failure. Probe
implements the AC-enumeration entry point used by the -probe CLI flag,
which sends a single PADI, collects every acceptable PADO until a
deadline, and never sends a PADR.

This package depends only on the narrow transport.Transport interface, so
it can be exercised end to end in tests against transport.Loopback
without root privileges or a real network interface.
*/
package discovery
