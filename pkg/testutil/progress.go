package testutil

import "github.com/arthur-debert/selfunzip/pkg/types"

// RecordingProgress implements types.ProgressReporter and records calls.
type RecordingProgress struct {
	Total  int
	Steps  []int
	Notes  []string
	Closed bool

	// CancelAt makes IsCancelled report true once Advance has been called
	// this many times. Zero never cancels.
	CancelAt int
}

func (p *RecordingProgress) SetTotal(n int) {
	p.Total = n
}

func (p *RecordingProgress) Advance(i int, note string) {
	p.Steps = append(p.Steps, i)
	p.Notes = append(p.Notes, note)
}

func (p *RecordingProgress) IsCancelled() bool {
	return p.CancelAt > 0 && len(p.Steps) >= p.CancelAt
}

func (p *RecordingProgress) Close() {
	p.Closed = true
}

var _ types.ProgressReporter = (*RecordingProgress)(nil)
