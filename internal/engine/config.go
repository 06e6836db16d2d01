package engine

import "time"

// Config holds the probe-engine-level options: batch_size, timeout,
// tries, and the UDP/TCP protocol switch. It is immutable once the
// engine starts.
type Config struct {
	BatchSize int
	Timeout   time.Duration
	Tries     int
	UDP       bool
}

// NewConfig clamps tries >= 1 (0 is clamped to 1) and batch_size >= 1.
func NewConfig(batchSize int, timeout time.Duration, tries int, udp bool) Config {
	if tries < 1 {
		tries = 1
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return Config{BatchSize: batchSize, Timeout: timeout, Tries: tries, UDP: udp}
}
