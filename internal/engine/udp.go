package engine

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
	"github.com/arclight-net/swiftscan/internal/payloads"
)

// UDPProber performs the UDP send/recv probe.
type UDPProber struct {
	Registry *payloads.Registry
}

func localUDPAddr(ip net.IP) string {
	if ip.To4() == nil {
		return "[::]:0"
	}
	return "0.0.0.0:0"
}

func (p UDPProber) Probe(ctx context.Context, sock model.Socket, timeout time.Duration, tries int) (model.Outcome, error) {
	payload := p.Registry.Payload(sock.Port)

	var lastReason string
	for attempt := 0; attempt < tries; attempt++ {
		open, timedOut, err := p.attempt(sock, payload, timeout)
		if open {
			return model.Outcome{Socket: sock, Open: true}, nil
		}
		if err != nil {
			// Non-timeout I/O error: reported immediately, no further
			// retries.
			reason := fmt.Sprintf("%s: %v", sock.IP, err)
			return model.Outcome{Socket: sock, Open: false, Reason: reason}, nil
		}
		if timedOut {
			lastReason = fmt.Sprintf("%s: udp probe timed out", sock.IP)
			continue
		}
	}
	return model.Outcome{Socket: sock, Open: false, Reason: lastReason}, nil
}

// attempt performs a single bind/connect/send/recv cycle. It reports
// open, whether the failure was a plain timeout (eligible for retry),
// and a non-timeout I/O error (never retried).
func (p UDPProber) attempt(sock model.Socket, payload []byte, timeout time.Duration) (open, timedOut bool, err error) {
	localAddr, err := net.ResolveUDPAddr("udp", localUDPAddr(sock.IP))
	if err != nil {
		return false, false, err
	}

	remote := &net.UDPAddr{IP: sock.IP, Port: int(sock.Port)}
	conn, err := net.DialUDP("udp", localAddr, remote)
	if err != nil {
		return false, false, err
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return false, false, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return false, false, err
	}

	buf := make([]byte, 512)
	_, _, err = conn.ReadFromUDP(buf)
	if err == nil {
		return true, false, nil
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return false, true, nil
	}
	return false, false, err
}
