package main

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/flightreduce/pkg/flightreduce"
)

// progressObserver draws one bar per phase.
type progressObserver struct {
	w io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) PhaseStarted(phase flightreduce.Phase, tasks int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finishLocked()
	if tasks == 0 {
		return
	}

	p.bar = progressbar.NewOptions(tasks,
		progressbar.OptionSetDescription(phaseLabel(phase)),
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionShowCount(),
	)
}

func (p *progressObserver) TaskDone(flightreduce.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		p.bar.Add(1)
	}
}

// Finish completes the current bar, if any.
func (p *progressObserver) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finishLocked()
}

func (p *progressObserver) finishLocked() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	io.WriteString(p.w, "\n")
	p.bar = nil
}

func phaseLabel(phase flightreduce.Phase) string {
	switch phase {
	case flightreduce.PhaseMapped:
		return "map   "
	case flightreduce.PhaseReduced:
		return "reduce"
	default:
		return phase.String()
	}
}
