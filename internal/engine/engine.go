// Package engine implements the concurrent probe engine: it consumes
// a socket stream with up to Config.BatchSize probes in flight,
// performs TCP or UDP probes with retries and a per-attempt timeout,
// and returns the sockets that responded.
package engine

import (
	"context"
	"sync"

	"github.com/arclight-net/swiftscan/internal/model"
	"github.com/arclight-net/swiftscan/internal/socketiter"
	"golang.org/x/sync/semaphore"
)

// Sink receives an Open event as soon as the engine observes it,
// mirroring the output formatter's role (invoked on each hit). Hit
// must be safe for concurrent use — the dispatcher
// calls it from the single collector path, never from probe tasks
// directly, but implementations (e.g. the address resolver's Warner)
// may also be called from elsewhere concurrently.
type Sink interface {
	Hit(model.Socket)
}

// Engine is the probe engine. It is constructed once per scan and
// never mutated afterward.
type Engine struct {
	cfg    Config
	prober Prober
	sink   Sink
}

// New builds an Engine. prober is typically a TCPProber or a
// UDPProber depending on Config.UDP.
func New(cfg Config, prober Prober, sink Sink) *Engine {
	return &Engine{cfg: cfg, prober: prober, sink: sink}
}

// Run drains it, dispatching up to Config.BatchSize probes
// concurrently, and returns the open sockets in completion order —
// callers must not assert a particular emission sequence. errs
// accumulates the deduplicated closed-probe reasons.
//
// On cancellation of ctx, no further probes are admitted; in-flight
// probes are allowed to run to completion or their own timeout, and
// the results accumulated so far are returned with a nil error. A
// non-nil error is returned only when a probe reports the fatal
// resource-exhaustion condition, in which case the scan aborts
// without waiting for remaining sockets.
func (e *Engine) Run(ctx context.Context, it *socketiter.Iterator, errs *ErrorSet) ([]model.Socket, error) {
	admit, cancelAdmit := context.WithCancel(ctx)
	defer cancelAdmit()

	sem := semaphore.NewWeighted(int64(e.cfg.BatchSize))
	results := make(chan model.Outcome)
	var wg sync.WaitGroup

	var fatalMu sync.Mutex
	var fatalErr error

	go func() {
		defer func() {
			wg.Wait()
			close(results)
		}()
		for {
			if admit.Err() != nil {
				return
			}
			sock, ok := it.Next()
			if !ok {
				return
			}
			if err := sem.Acquire(admit, 1); err != nil {
				return
			}
			wg.Add(1)
			go func(sock model.Socket) {
				defer wg.Done()
				defer sem.Release(1)

				outcome, err := e.prober.Probe(context.WithoutCancel(ctx), sock, e.cfg.Timeout, e.cfg.Tries)
				if err != nil {
					fatalMu.Lock()
					if fatalErr == nil {
						fatalErr = err
					}
					fatalMu.Unlock()
					cancelAdmit()
					return
				}
				results <- outcome
			}(sock)
		}
	}()

	var open []model.Socket
	for outcome := range results {
		if outcome.Open {
			open = append(open, outcome.Socket)
			if e.sink != nil {
				e.sink.Hit(outcome.Socket)
			}
		} else if outcome.Reason != "" {
			errs.Add(outcome.Reason)
		}
	}

	fatalMu.Lock()
	err := fatalErr
	fatalMu.Unlock()
	return open, err
}
