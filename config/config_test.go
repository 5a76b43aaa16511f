package config

import (
	"testing"

	"github.com/katalix/pppoe-discovery/lcp"
)

func TestLoadStringHappyPath(t *testing.T) {
	cfg, err := LoadString(`
interface_name = "eth0"
service_name = "myISPService"
ac_name = "isp-gateway-1"
host_uniq = [ 0x70, 0x69, 0x64 ]
discovery_timeout = 1500
persist = true
max_payload = true
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if cfg.InterfaceName != "eth0" {
		t.Errorf("got InterfaceName %q, want eth0", cfg.InterfaceName)
	}
	if cfg.ServiceName != "myISPService" {
		t.Errorf("got ServiceName %q, want myISPService", cfg.ServiceName)
	}
	if cfg.ACName != "isp-gateway-1" {
		t.Errorf("got ACName %q, want isp-gateway-1", cfg.ACName)
	}
	if string(cfg.HostUniq) != "pid" {
		t.Errorf("got HostUniq %q, want pid", cfg.HostUniq)
	}
	if cfg.DiscoveryTimeout.Milliseconds() != 1500 {
		t.Errorf("got DiscoveryTimeout %v, want 1500ms", cfg.DiscoveryTimeout)
	}
	if !cfg.Persist {
		t.Errorf("got Persist false, want true")
	}
	if !cfg.EnableMaxPayload {
		t.Errorf("got EnableMaxPayload false, want true")
	}
	if cfg.MaxPayloadMRU != defaultMaxPayloadMRU {
		t.Errorf("got MaxPayloadMRU %d, want the default of %d", cfg.MaxPayloadMRU, defaultMaxPayloadMRU)
	}

	dcfg := cfg.ToDiscoveryConfig()
	neg, ok := dcfg.Negotiator.(*lcp.FixedNegotiator)
	if !ok {
		t.Fatalf("got Negotiator of type %T, want *lcp.FixedNegotiator", dcfg.Negotiator)
	}
	if neg.WantMRU() != defaultMaxPayloadMRU {
		t.Errorf("got WantMRU %d, want %d", neg.WantMRU(), defaultMaxPayloadMRU)
	}
}

// TestLoadStringExplicitMaxPayloadMRU confirms an explicit max_payload_mru
// overrides the default rather than being clobbered by it.
func TestLoadStringExplicitMaxPayloadMRU(t *testing.T) {
	cfg, err := LoadString(`
interface_name = "eth0"
max_payload = true
max_payload_mru = 9000
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if cfg.MaxPayloadMRU != 9000 {
		t.Errorf("got MaxPayloadMRU %d, want 9000", cfg.MaxPayloadMRU)
	}
}

// TestLoadStringMaxPayloadDisabledNoNegotiator confirms that leaving
// max_payload unset (or false) carries through no Negotiator at all, so
// discovery.newConnection falls back to its own lcp.NopNegotiator default.
func TestLoadStringMaxPayloadDisabledNoNegotiator(t *testing.T) {
	cfg, err := LoadString(`interface_name = "eth0"`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	dcfg := cfg.ToDiscoveryConfig()
	if dcfg.Negotiator != nil {
		t.Errorf("got Negotiator %v, want nil when max_payload is disabled", dcfg.Negotiator)
	}
}

func TestLoadStringMissingInterfaceName(t *testing.T) {
	if _, err := LoadString(`service_name = "x"`); err == nil {
		t.Fatalf("expected an error for missing interface_name")
	}
}

func TestLoadStringUnrecognisedParameter(t *testing.T) {
	if _, err := LoadString(`interface_name = "eth0"
bogus_parameter = true
`); err == nil {
		t.Fatalf("expected an error for an unrecognised parameter")
	}
}

func TestLoadStringKillSessionParameters(t *testing.T) {
	cfg, err := LoadString(`
interface_name = "eth0"
kill_session = true
kill_session_id = 4660
kill_peer_hwaddr = [ 0x02, 0x00, 0x00, 0x00, 0x00, 0x02 ]
`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if !cfg.KillSession {
		t.Errorf("got KillSession false, want true")
	}
	if cfg.KillSessionID != 4660 {
		t.Errorf("got KillSessionID %d, want 4660", cfg.KillSessionID)
	}
	want := [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x02}
	if cfg.KillPeerHWAddr != want {
		t.Errorf("got KillPeerHWAddr %v, want %v", cfg.KillPeerHWAddr, want)
	}

	dcfg := cfg.ToDiscoveryConfig()
	if !dcfg.SkipDiscovery || !dcfg.KillSession {
		t.Errorf("expected ToDiscoveryConfig to carry the kill-session flags through")
	}
}

func TestLoadStringBadHostUniqRange(t *testing.T) {
	if _, err := LoadString(`
interface_name = "eth0"
host_uniq = [ 0x100 ]
`); err == nil {
		t.Fatalf("expected an error for an out-of-range byte value")
	}
}
