/*
Package transport abstracts the raw Ethernet frame I/O the discovery driver
needs: send one frame, receive one frame (optionally bounded by a
context.Context deadline), and report the local hardware address frames
are sent from.

RawSocket is the production implementation, backed by a Linux AF_PACKET
socket bound to a single interface. Loopback is an in-memory pair used by
tests.
*/
package transport
