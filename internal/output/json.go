package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arclight-net/swiftscan/internal/model"
)

// JSONRecord is one entry of the JSON export's "open" list: a single
// open socket discovered during the scan.
type JSONRecord struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	FoundAt  string `json:"found_at"`
}

// JSONReport is the terminal export written once the scan completes:
// one self-contained document rather than a line-delimited stream, so
// it can be consumed by a downstream pipeline stage.
type JSONReport struct {
	Open     []JSONRecord `json:"open"`
	Warnings []string     `json:"warnings"`
	Errors   []string     `json:"errors"`
}

// JSON is an engine.Sink + address.Warner implementation that
// accumulates results for a single JSONReport written at the end of
// the scan, instead of streaming lines as Console does.
type JSON struct {
	mu       sync.Mutex
	protocol string
	clock    func() time.Time

	open     []JSONRecord
	warnings []string
}

// NewJSON builds a JSON formatter. protocol is "tcp" or "udp",
// recorded on every hit since a single scan only ever runs one
// protocol. clock defaults to time.Now but can be
// overridden in tests.
func NewJSON(protocol string, clock func() time.Time) *JSON {
	if clock == nil {
		clock = time.Now
	}
	return &JSON{protocol: protocol, clock: clock}
}

func (j *JSON) Hit(sock model.Socket) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.open = append(j.open, JSONRecord{
		IP:       sock.IP.String(),
		Port:     int(sock.Port),
		Protocol: j.protocol,
		FoundAt:  j.clock().UTC().Format(time.RFC3339),
	})
}

func (j *JSON) Warn(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.warnings = append(j.warnings, fmt.Sprintf(format, args...))
}

// Write marshals the accumulated report, including the engine's
// deduplicated closed-probe reasons, to w.
func (j *JSON) Write(w io.Writer, errs []string) error {
	j.mu.Lock()
	report := JSONReport{
		Open:     append([]JSONRecord(nil), j.open...),
		Warnings: append([]string(nil), j.warnings...),
		Errors:   append([]string(nil), errs...),
	}
	j.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
