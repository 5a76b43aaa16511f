/*
The pppoedisc command is a PPPoE Discovery client for Linux systems.

Given a configured Ethernet interface, it negotiates with an access
concentrator on the local broadcast segment, selects an AC and service,
and reports the bound session identifier a downstream PPP daemon would
use to send session-phase frames.

pppoedisc is configured using a simple TOML file; see package config for
the full set of accepted parameters. Command-line flags override the
handful of options an operator commonly wants to flip per run.

	pppoedisc -config /etc/pppoedisc/pppoedisc.toml
	pppoedisc -config /etc/pppoedisc/pppoedisc.toml -probe
	pppoedisc -config /etc/pppoedisc/pppoedisc.toml -verbose
*/
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"golang.org/x/sys/unix"

	"github.com/katalix/pppoe-discovery/config"
	"github.com/katalix/pppoe-discovery/discovery"
	"github.com/katalix/pppoe-discovery/linkstate"
	"github.com/katalix/pppoe-discovery/transport"
	"github.com/katalix/pppoe-discovery/wire"
)

func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(os.Stderr)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// autoHostUniq generates an 8-byte random Host-Uniq so that multiple
// concurrent client instances sharing a segment don't cross-accept each
// other's PADOs, mirroring rp-pppoe's practice of defaulting Host-Uniq to
// the process PID.
func autoHostUniq() ([]byte, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to generate a random Host-Uniq: %w", err)
	}
	return b, nil
}

func run(ctx context.Context, logger log.Logger, cfg *config.Config) int {
	if cfg.KillSession {
		xport, err := transport.NewRawSocket(cfg.InterfaceName, wire.EtherTypeDiscovery)
		if err != nil {
			level.Error(logger).Log("message", "failed to open discovery socket", "error", err)
			return 1
		}
		defer xport.Close()

		if _, err := discovery.Run(ctx, xport, logger, cfg.ToDiscoveryConfig()); err != nil {
			level.Error(logger).Log("message", "failed to send PADT", "error", err)
			return 1
		}
		return 0
	}

	if up, err := linkstate.IsUp(cfg.InterfaceName); err != nil {
		level.Warn(logger).Log("message", "failed to query link state, proceeding anyway", "error", err)
	} else if !up {
		level.Error(logger).Log("message", "interface is not up", "interface", cfg.InterfaceName)
		return 1
	}

	if len(cfg.HostUniq) == 0 {
		hu, err := autoHostUniq()
		if err != nil {
			level.Error(logger).Log("message", "failed to generate Host-Uniq", "error", err)
			return 1
		}
		cfg.HostUniq = hu
	}

	xport, err := transport.NewRawSocket(cfg.InterfaceName, wire.EtherTypeDiscovery)
	if err != nil {
		level.Error(logger).Log("message", "failed to open discovery socket", "error", err)
		return 1
	}
	defer xport.Close()

	dcfg := cfg.ToDiscoveryConfig()

	if cfg.Probe {
		results, err := discovery.Probe(ctx, xport, logger, dcfg, cfg.DiscoveryTimeout, func(r discovery.ProbeResult) {
			fmt.Println(r.String())
		})
		if err != nil {
			level.Error(logger).Log("message", "probe failed", "error", err)
			return 1
		}
		if len(results) == 0 {
			return 1
		}
		return 0
	}

	result, err := discovery.Run(ctx, xport, logger, dcfg)
	if err != nil {
		level.Error(logger).Log("message", "discovery failed", "error", err)
		return 1
	}

	level.Info(logger).Log("message", "discovery complete", "session", result.SessionID, "peer", fmt.Sprintf("%x", result.PeerHWAddr))
	fmt.Printf("session established: session=0x%04x peer=%02x:%02x:%02x:%02x:%02x:%02x\n",
		result.SessionID, result.PeerHWAddr[0], result.PeerHWAddr[1], result.PeerHWAddr[2],
		result.PeerHWAddr[3], result.PeerHWAddr[4], result.PeerHWAddr[5])
	return 0
}

func main() {
	cfgPathPtr := flag.String("config", "/etc/pppoedisc/pppoedisc.toml", "specify configuration file path")
	verbosePtr := flag.Bool("verbose", false, "toggle verbose log output")
	ifNamePtr := flag.String("interface", "", "override the interface_name configuration parameter")
	probePtr := flag.Bool("probe", false, "override the probe configuration parameter")
	flag.Parse()

	cfg, err := config.LoadFile(*cfgPathPtr)
	if err != nil {
		stdlog.Fatalf("failed to load configuration: %v", err)
	}

	if *ifNamePtr != "" {
		cfg.InterfaceName = *ifNamePtr
	}
	if *probePtr {
		cfg.Probe = true
	}
	if cfg.Verbose {
		*verbosePtr = true
	}

	logger := newLogger(*verbosePtr)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)
	go func() {
		<-sigChan
		level.Info(logger).Log("message", "received signal, shutting down")
		cancel()
	}()

	os.Exit(run(ctx, logger, cfg))
}
