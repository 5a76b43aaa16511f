package transport

import (
	"context"
	"testing"
	"time"
)

func TestLoopbackSendRecv(t *testing.T) {
	a, b := NewLoopbackPair([6]byte{1, 2, 3, 4, 5, 6}, [6]byte{6, 5, 4, 3, 2, 1})
	defer a.Close()
	defer b.Close()

	if err := a.Send([]byte("hello")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	buf := make([]byte, 64)
	n, err := b.Recv(ctx, buf)
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if string(buf[:n]) != "hello" {
		t.Errorf("got %q, want %q", buf[:n], "hello")
	}
}

func TestLoopbackRecvContextCancel(t *testing.T) {
	a, b := NewLoopbackPair([6]byte{1, 2, 3, 4, 5, 6}, [6]byte{6, 5, 4, 3, 2, 1})
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := make([]byte, 64)
	if _, err := a.Recv(ctx, buf); err == nil {
		t.Fatalf("expected Recv to return an error once ctx is cancelled")
	}
}

func TestLoopbackCloseUnblocksRecv(t *testing.T) {
	a, b := NewLoopbackPair([6]byte{1, 2, 3, 4, 5, 6}, [6]byte{6, 5, 4, 3, 2, 1})
	defer a.Close()

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		_, err := b.Recv(context.Background(), buf)
		done <- err
	}()

	b.Close()

	select {
	case err := <-done:
		if err != ErrClosed {
			t.Errorf("got %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv did not unblock after Close")
	}
}

func TestLoopbackHWAddr(t *testing.T) {
	want := [6]byte{1, 2, 3, 4, 5, 6}
	a, b := NewLoopbackPair(want, [6]byte{6, 5, 4, 3, 2, 1})
	defer a.Close()
	defer b.Close()
	if got := a.HWAddr(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
