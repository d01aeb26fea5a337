// Package progress reports extraction progress. Both reporters treat a
// cancelled context as the operator's request to stop.
package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/selfunzip/pkg/logging"
	"github.com/arthur-debert/selfunzip/pkg/types"
)

// LineReporter writes one line per entry.
type LineReporter struct {
	ctx   context.Context
	out   io.Writer
	total int
}

// NewLineReporter returns a reporter writing to out.
func NewLineReporter(ctx context.Context, out io.Writer) *LineReporter {
	return &LineReporter{ctx: ctx, out: out}
}

func (r *LineReporter) SetTotal(n int) {
	r.total = n
	fmt.Fprintf(r.out, "Extracting %d %s\n", n, files(n))
}

func (r *LineReporter) Advance(i int, note string) {
	logger := logging.GetLogger("ui.progress")
	logger.Debug().Int("index", i).Str("entry", note).Msg("Progress")
	fmt.Fprintf(r.out, "[%d/%d] %s\n", i+1, r.total, note)
}

func (r *LineReporter) IsCancelled() bool {
	return r.ctx.Err() != nil
}

func (r *LineReporter) Close() {}

// BarReporter draws a progress bar. The bar starts on SetTotal.
type BarReporter struct {
	ctx       context.Context
	out       io.Writer
	bar       *pterm.ProgressbarPrinter
	total     int
	last      int
	started   time.Time
	suspended bool
}

// NewBarReporter returns a reporter drawing to out.
func NewBarReporter(ctx context.Context, out io.Writer) *BarReporter {
	return &BarReporter{ctx: ctx, out: out, last: -1}
}

func (r *BarReporter) SetTotal(n int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(n).
		WithTitle("Extracting").
		WithWriter(r.out).
		WithRemoveWhenDone(false).
		Start()
	if err != nil {
		logger := logging.GetLogger("ui.progress")
		logger.Warn().Err(err).Msg("Cannot start progress bar")
		return
	}
	r.bar = bar
	r.total = n
	r.started = time.Now()
}

// Advance marks the entries before i as done.
func (r *BarReporter) Advance(i int, note string) {
	if r.bar == nil {
		return
	}
	r.last = i
	r.bar.UpdateTitle(note)
	if delta := i - r.bar.Current; delta > 0 {
		r.bar.Add(delta)
	}
}

func (r *BarReporter) IsCancelled() bool {
	return r.ctx.Err() != nil
}

// Suspend clears the bar and stops its redraw until Resume.
func (r *BarReporter) Suspend() {
	if r.bar == nil || !r.bar.IsActive {
		return
	}
	r.bar.RemoveWhenDone = true
	if _, err := r.bar.Stop(); err != nil {
		logger := logging.GetLogger("ui.progress")
		logger.Warn().Err(err).Msg("Cannot suspend progress bar")
	}
	r.bar.RemoveWhenDone = false
	r.suspended = true
}

// Resume redraws a suspended bar at its current count.
func (r *BarReporter) Resume() {
	if !r.suspended {
		return
	}
	r.suspended = false
	bar, err := r.bar.Start()
	if err != nil {
		logger := logging.GetLogger("ui.progress")
		logger.Warn().Err(err).Msg("Cannot resume progress bar")
		return
	}
	bar.SetStartedAt(r.started)
	r.bar = bar
}

// Close counts the last advanced entry as done when it was the final one,
// then stops the bar.
func (r *BarReporter) Close() {
	if r.bar == nil {
		return
	}
	r.suspended = false
	if r.total > 0 && r.last == r.total-1 && r.bar.Current < r.total {
		r.bar.Add(r.total - r.bar.Current)
	}
	if _, err := r.bar.Stop(); err != nil {
		logger := logging.GetLogger("ui.progress")
		logger.Warn().Err(err).Msg("Cannot stop progress bar")
	}
}

// Suspender is implemented by reporters that draw over the terminal and
// must step aside while the operator answers a prompt.
type Suspender interface {
	Suspend()
	Resume()
}

// Guard returns p with r suspended during every prompt. p is returned
// unchanged when r does not draw over the terminal.
func Guard(p types.Prompter, r types.ProgressReporter) types.Prompter {
	s, ok := r.(Suspender)
	if !ok {
		return p
	}
	return &guardedPrompter{next: p, s: s}
}

type guardedPrompter struct {
	next types.Prompter
	s    Suspender
}

func (g *guardedPrompter) ConfirmInstall(title, message string) (types.InstallChoice, error) {
	g.s.Suspend()
	defer g.s.Resume()
	return g.next.ConfirmInstall(title, message)
}

func (g *guardedPrompter) PickDirectory(title, startDir string) (string, bool, error) {
	g.s.Suspend()
	defer g.s.Resume()
	return g.next.PickDirectory(title, startDir)
}

func (g *guardedPrompter) ResolveConflict(title string, prompt types.ConflictPrompt) (types.ConflictChoice, error) {
	g.s.Suspend()
	defer g.s.Resume()
	return g.next.ResolveConflict(title, prompt)
}

func (g *guardedPrompter) ShowMessage(title, message string, kind types.MessageKind) error {
	g.s.Suspend()
	defer g.s.Resume()
	return g.next.ShowMessage(title, message, kind)
}

// New returns a bar reporter when rich is set, a line reporter otherwise.
func New(ctx context.Context, out io.Writer, rich bool) types.ProgressReporter {
	if rich {
		return NewBarReporter(ctx, out)
	}
	return NewLineReporter(ctx, out)
}

func files(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

var (
	_ types.ProgressReporter = (*LineReporter)(nil)
	_ types.ProgressReporter = (*BarReporter)(nil)
	_ Suspender              = (*BarReporter)(nil)
	_ types.Prompter         = (*guardedPrompter)(nil)
)
