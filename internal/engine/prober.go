package engine

import (
	"context"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
)

// Prober performs one protocol's probe semantics against a socket,
// including its own retry policy (TCP retries on any failure, UDP
// retries only on timeout). It returns the aggregated
// outcome for the socket and, separately, a non-nil error only for the
// fatal resource-exhaustion condition that must abort the whole scan.
type Prober interface {
	Probe(ctx context.Context, sock model.Socket, timeout time.Duration, tries int) (model.Outcome, error)
}
