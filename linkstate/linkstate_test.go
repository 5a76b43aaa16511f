package linkstate

import (
	"os/user"
	"testing"
)

// TestIsUpLoopback needs root permissions to open an rtnetlink socket on
// some distributions, so skip when running unprivileged rather than fail.
func TestIsUpLoopback(t *testing.T) {
	u, err := user.Current()
	if err != nil {
		t.Fatalf("unable to obtain current user: %v", err)
	}
	if u.Uid != "0" {
		t.Skip("skipping test because we don't have root permissions")
	}

	up, err := IsUp("lo")
	if err != nil {
		t.Fatalf("IsUp(lo): %v", err)
	}
	if !up {
		t.Errorf("expected the loopback interface to report up")
	}
}

func TestIsUpUnknownInterface(t *testing.T) {
	u, err := user.Current()
	if err != nil {
		t.Fatalf("unable to obtain current user: %v", err)
	}
	if u.Uid != "0" {
		t.Skip("skipping test because we don't have root permissions")
	}

	if _, err := IsUp("this-interface-does-not-exist-0"); err == nil {
		t.Errorf("expected an error querying a nonexistent interface")
	}
}
