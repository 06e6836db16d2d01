package engine

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
)

// FatalError marks a probe failure that must abort the entire scan: a
// TCP connect failure whose message contains (case insensitively)
// "too many open files" is never retried — it aborts immediately with
// a diagnostic telling the operator to lower batch_size.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("too many open files — lower --batch-size and try again: %v", e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func isTooManyOpenFiles(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "too many open files")
}

// TCPProber performs the TCP-connect probe.
type TCPProber struct{}

func (TCPProber) Probe(ctx context.Context, sock model.Socket, timeout time.Duration, tries int) (model.Outcome, error) {
	addr := sock.String()
	dialer := net.Dialer{Timeout: timeout}

	var lastErr error
	for attempt := 0; attempt < tries; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, timeout)
		conn, err := dialer.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			conn.Close()
			return model.Outcome{Socket: sock, Open: true}, nil
		}

		if isTooManyOpenFiles(err) {
			return model.Outcome{}, &FatalError{Err: err}
		}
		lastErr = err
	}

	reason := fmt.Sprintf("%s: %v", sock.IP, lastErr)
	return model.Outcome{Socket: sock, Open: false, Reason: reason}, nil
}
