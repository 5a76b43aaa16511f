/*
Package config implements a parser for PPPoE discovery client configuration
represented in the TOML format: https://github.com/toml-lang/toml.

Please refer to the TOML repo for an in-depth description of the syntax.

Unlike a tunnel/session hierarchy, a discovery client configuration is a
single flat table of parameters describing one discovery run:

	# interface_name is the network interface the client will listen on
	# for PPPoE discovery packets. It must be specified.
	interface_name = "eth0"

	# service_name requests a specific service from the access
	# concentrator. Leave unset (or empty) to accept any service. The
	# sentinel value "NO-SERVICE-NAME-NON-RFC-COMPLIANT" omits the
	# Service-Name tag from PADI entirely, a workaround some
	# non-compliant access concentrators require.
	service_name = "myISPService"

	# ac_name, if set, rejects PADOs from any access concentrator whose
	# AC-Name does not match exactly.
	ac_name = "isp-gateway-1"

	# host_uniq, if set, is sent as the Host-Uniq tag in outgoing frames
	# and required to appear byte-exact in replies. Useful when multiple
	# client instances share a segment.
	host_uniq = [ 0x70, 0x69, 0x64, 0x3d, 0x34, 0x32 ]

	# discovery_timeout sets the initial per-attempt timeout for the PADI
	# and PADR wait loops. It doubles after each unsuccessful attempt.
	# The default is 3000ms.
	discovery_timeout = 3000 # milliseconds

	# persist, if true, never gives up: once all retry attempts for a
	# phase are exhausted, counters and timeouts reset and discovery
	# restarts from PADI instead of returning failure.
	persist = false

	# probe, if true, enumerates access concentrators instead of
	# completing the handshake: it sends one PADI, reports every
	# acceptable PADO until discovery_timeout elapses, and never sends a
	# PADR.
	probe = false

	# kill_session, if true (together with kill_session_id and
	# kill_peer_hwaddr), skips discovery entirely and sends a single PADT
	# to terminate an existing session.
	kill_session = false
	kill_session_id = 0x1234
	kill_peer_hwaddr = [ 0x02, 0x00, 0x00, 0x00, 0x00, 0x02 ]

	# max_payload, if true, advertises a PPP-Max-Payload tag (RFC4638)
	# requesting a jumbo-frame MRU from the PPP session collaborator.
	max_payload = false

	# max_payload_mru sets the MRU advertised when max_payload is true.
	# Defaults to 1500 (the full Ethernet payload RFC4638 exists to
	# unlock) when max_payload is true and this is left unset.
	max_payload_mru = 1500

	# verbose toggles debug-level logging.
	verbose = false
*/
package config

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/katalix/pppoe-discovery/discovery"
	"github.com/katalix/pppoe-discovery/lcp"
	"github.com/katalix/pppoe-discovery/wire"
)

// Config holds one discovery client's configuration, as loaded from a
// TOML file or string.
type Config struct {
	InterfaceName    string
	ServiceName      string
	ACName           string
	HostUniq         []byte
	DiscoveryTimeout time.Duration
	Persist          bool
	Probe            bool
	KillSession      bool
	KillSessionID    uint16
	KillPeerHWAddr   [6]byte
	EnableMaxPayload bool
	MaxPayloadMRU    uint16
	Verbose          bool
}

// defaultMaxPayloadMRU is the MRU advertised when max_payload is enabled
// but max_payload_mru is left unset: the full Ethernet payload size that
// RFC4638 exists to let a PPPoE session reach, above the standard PPPoE
// MTU's 8 bytes of PPPoE/PPP header overhead.
const defaultMaxPayloadMRU = 1500

// ToDiscoveryConfig adapts the loaded file configuration into the
// discovery package's Config, including a concrete lcp.FixedNegotiator
// requesting MaxPayloadMRU when EnableMaxPayload is set.
func (cfg *Config) ToDiscoveryConfig() discovery.Config {
	dcfg := discovery.Config{
		ServiceName:      cfg.ServiceName,
		ACName:           cfg.ACName,
		HostUniq:         cfg.HostUniq,
		DiscoveryTimeout: cfg.DiscoveryTimeout,
		Persist:          cfg.Persist,
		Probe:            cfg.Probe,
		SkipDiscovery:    cfg.KillSession,
		KillSession:      cfg.KillSession,
		KillSessionID:    wire.SessionID(cfg.KillSessionID),
		KillPeerHWAddr:   cfg.KillPeerHWAddr,
	}
	if cfg.EnableMaxPayload {
		dcfg.Negotiator = lcp.NewFixedNegotiator(cfg.MaxPayloadMRU)
	}
	return dcfg
}

func toBool(v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("supplied value could not be parsed as a bool")
}

func toString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("supplied value could not be parsed as a string")
}

// go-toml's ToMap function represents numbers as either uint64 or int64,
// so callers need to check for both and range-check against the
// destination type's width.
func toByte(v interface{}) (byte, error) {
	if b, ok := v.(int64); ok {
		if b < 0x0 || b > 0xff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return byte(b), nil
	} else if b, ok := v.(uint64); ok {
		if b > 0xff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return byte(b), nil
	}
	return 0, fmt.Errorf("unexpected %T value %v", v, v)
}

func toUint16(v interface{}) (uint16, error) {
	if b, ok := v.(int64); ok {
		if b < 0x0 || b > 0xffff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return uint16(b), nil
	} else if b, ok := v.(uint64); ok {
		if b > 0xffff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return uint16(b), nil
	}
	return 0, fmt.Errorf("unexpected %T value %v", v, v)
}

func toUint32(v interface{}) (uint32, error) {
	if b, ok := v.(int64); ok {
		if b < 0x0 || b > 0xffffffff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return uint32(b), nil
	} else if b, ok := v.(uint64); ok {
		if b > 0xffffffff {
			return 0, fmt.Errorf("value %x out of range", b)
		}
		return uint32(b), nil
	}
	return 0, fmt.Errorf("unexpected %T value %v", v, v)
}

func toDurationMs(v interface{}) (time.Duration, error) {
	u, err := toUint32(v)
	return time.Duration(u) * time.Millisecond, err
}

func toBytes(v interface{}) ([]byte, error) {
	out := []byte{}

	numbers, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected array value")
	}

	for _, number := range numbers {
		b, err := toByte(number)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func toHWAddr(v interface{}) (addr [6]byte, err error) {
	b, err := toBytes(v)
	if err != nil {
		return addr, err
	}
	if len(b) != 6 {
		return addr, fmt.Errorf("expected a 6 byte hardware address, got %d bytes", len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

func newConfig(m map[string]interface{}) (*Config, error) {
	cfg := &Config{
		DiscoveryTimeout: 3 * time.Second,
	}
	for k, v := range m {
		var err error
		switch k {
		case "interface_name":
			cfg.InterfaceName, err = toString(v)
		case "service_name":
			cfg.ServiceName, err = toString(v)
		case "ac_name":
			cfg.ACName, err = toString(v)
		case "host_uniq":
			cfg.HostUniq, err = toBytes(v)
		case "discovery_timeout":
			cfg.DiscoveryTimeout, err = toDurationMs(v)
		case "persist":
			cfg.Persist, err = toBool(v)
		case "probe":
			cfg.Probe, err = toBool(v)
		case "kill_session":
			cfg.KillSession, err = toBool(v)
		case "kill_session_id":
			cfg.KillSessionID, err = toUint16(v)
		case "kill_peer_hwaddr":
			cfg.KillPeerHWAddr, err = toHWAddr(v)
		case "max_payload":
			cfg.EnableMaxPayload, err = toBool(v)
		case "max_payload_mru":
			cfg.MaxPayloadMRU, err = toUint16(v)
		case "verbose":
			cfg.Verbose, err = toBool(v)
		default:
			return nil, fmt.Errorf("unrecognised parameter %q", k)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to process %v: %v", k, err)
		}
	}
	if cfg.InterfaceName == "" {
		return nil, fmt.Errorf("interface_name must be specified")
	}
	if cfg.EnableMaxPayload && cfg.MaxPayloadMRU == 0 {
		cfg.MaxPayloadMRU = defaultMaxPayloadMRU
	}
	return cfg, nil
}

// LoadFile loads configuration from the specified file.
func LoadFile(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %v", err)
	}
	return newConfig(tree.ToMap())
}

// LoadString loads configuration from the specified string.
func LoadString(content string) (*Config, error) {
	tree, err := toml.Load(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load config string: %v", err)
	}
	return newConfig(tree.ToMap())
}
