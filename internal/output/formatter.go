// Package output implements the three-way output policy: greppable,
// accessible, and colorized modes, applied uniformly to probe hits
// and resolver warnings.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/arclight-net/swiftscan/internal/model"
)

// Console is the default C6 formatter: console output honoring
// greppable/accessible flags, safe for concurrent use from the
// resolver's bounded-parallel warnings and the engine's single
// collector path alike.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	greppable  bool
	accessible bool
	color      bool

	hits     []model.Socket
	warnings int
}

// NewConsole builds a Console formatter. Colorized output (the
// default mode, neither greppable nor accessible) is further
// suppressed automatically when out isn't a terminal.
func NewConsole(out *os.File, greppable, accessible bool) *Console {
	useColor := !greppable && !accessible && isatty.IsTerminal(out.Fd())
	return &Console{
		out:        out,
		greppable:  greppable,
		accessible: accessible,
		color:      useColor,
	}
}

// Hit implements engine.Sink: emit (or silently record, in greppable
// mode) a single open socket as soon as the engine observes it.
func (c *Console) Hit(sock model.Socket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = append(c.hits, sock)

	if c.greppable {
		return
	}
	if c.accessible {
		fmt.Fprintf(c.out, "Open %s\n", sock)
		return
	}
	if c.color {
		color.New(color.FgGreen, color.Bold).Fprintf(c.out, "Open %s\n", sock)
		return
	}
	fmt.Fprintf(c.out, "Open %s\n", sock)
}

// Warn implements address.Warner, following the same three-way policy
// with a distinct "[!]" prefix.
func (c *Console) Warn(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings++

	if c.greppable {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if c.accessible || !c.color {
		fmt.Fprintf(c.out, "[!] %s\n", msg)
		return
	}
	color.New(color.FgYellow).Fprintf(c.out, "[!] %s\n", msg)
}

// Summary reports the counters the caller needs for the end-of-scan
// aggregate in greppable mode, and for the human summary line
// otherwise.
type Summary struct {
	OpenSockets int
	Warnings    int
}

func (c *Console) summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{OpenSockets: len(c.hits), Warnings: c.warnings}
}

// Hits returns a snapshot of every open socket observed so far, in
// completion order.
func (c *Console) Hits() []model.Socket {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Socket, len(c.hits))
	copy(out, c.hits)
	return out
}

// PrintSummary writes the end-of-scan line. In greppable mode this is
// the only scan-triggered output the caller will have seen; in other
// modes it follows the per-hit lines already printed.
func (c *Console) PrintSummary(elapsedHuman func() string) {
	s := c.summary()
	if c.greppable {
		for _, sock := range c.Hits() {
			fmt.Fprintf(c.out, "%s\n", sock)
		}
		return
	}
	fmt.Fprintf(c.out, "%s open sockets, %s warnings (%s)\n",
		humanize.Comma(int64(s.OpenSockets)), humanize.Comma(int64(s.Warnings)), elapsedHuman())
}
