package wire

import "errors"

// ErrBogusLength is returned by ParseFrame when a received frame's
// declared PPPoE payload length is inconsistent with the number of bytes
// actually read from the transport.
var ErrBogusLength = errors.New("pppoe: bogus frame length")

// ErrNotDiscovery is returned by ParseFrame for frames carrying an
// EtherType other than EtherTypeDiscovery.
var ErrNotDiscovery = errors.New("pppoe: not a discovery frame")
