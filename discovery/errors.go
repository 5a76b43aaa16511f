package discovery

import (
	"errors"
	"fmt"

	"github.com/katalix/pppoe-discovery/wire"
)

// ErrDiscoveryTimedOut is returned by Run when no acceptable reply arrived
// before the final attempt's deadline and persist mode is not enabled.
var ErrDiscoveryTimedOut = errors.New("discovery: timed out waiting for access concentrator")

// ErrNoPADOAccepted is returned when at least one PADO arrived but none
// passed the configured AC-Name/Service-Name filters.
var ErrNoPADOAccepted = errors.New("discovery: no acceptable PADO received")

// ACError represents a protocol-level error reported by the access
// concentrator via a Service-Name-Error, AC-System-Error or Generic-Error
// tag. In non-persist mode the driver returns it to the caller; in persist
// mode it is logged and the retry loop continues.
type ACError struct {
	Tag     wire.TagType
	Message string
}

func (e *ACError) Error() string {
	return fmt.Sprintf("discovery: access concentrator reported %v: %q", e.Tag, e.Message)
}
