// Package rtclient implements the host side of the raytrace round trip:
// a single blocking connect, one send of the serialized scene, and one
// blocking receive of the framebuffer it produces.
package rtclient

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/achilleasa/go-pathtrace/log"
)

var logger = log.New("rtclient")

// RoundTrip connects to hostPort, sends payload in full, then blocks until
// exactly wantBytes have been received. There is no retry or cancellation;
// any I/O failure is returned immediately, matching the reference TCP test
// harness's single accept/recv/send contract.
func RoundTrip(hostPort string, payload []byte, wantBytes int) ([]byte, error) {
	logger.Noticef("connecting to %s", hostPort)

	conn, err := net.Dial("tcp", hostPort)
	if err != nil {
		return nil, fmt.Errorf("rtclient: %s", err.Error())
	}
	defer conn.Close()

	start := time.Now()
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("rtclient: send failed: %s", err.Error())
	}
	logger.Debugf("sent %d bytes", len(payload))

	out := make([]byte, wantBytes)
	if _, err := io.ReadFull(conn, out); err != nil {
		return nil, fmt.Errorf("rtclient: receive failed: %s", err.Error())
	}

	logger.Noticef("round trip completed in %d ms", time.Since(start).Nanoseconds()/1e6)
	return out, nil
}
