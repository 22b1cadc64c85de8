package rtclient

import (
	"io"
	"net"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %s", err)
	}
	defer ln.Close()

	want := []byte{1, 2, 3, 4, 5, 6}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 4)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		conn.Write(want)
	}()

	got, err := RoundTrip(ln.Addr().String(), []byte{0xAA, 0xBB, 0xCC, 0xDD}, len(want))
	if err != nil {
		t.Fatalf("RoundTrip: %s", err)
	}
	if string(got) != string(want) {
		t.Fatalf("RoundTrip() = %v, want %v", got, want)
	}
}

func TestRoundTripConnectFailure(t *testing.T) {
	if _, err := RoundTrip("127.0.0.1:1", nil, 0); err == nil {
		t.Fatalf("expected connect failure on port 1")
	}
}
