package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressUI draws the percentage bar of one submission
type ProgressUI struct {
	w          io.Writer
	bar        *progressbar.ProgressBar
	percentage int
}

// NewProgressUI creates a progress UI writing to w
func NewProgressUI(w io.Writer) *ProgressUI {
	return &ProgressUI{w: w}
}

// Show starts an empty bar if none is visible
func (p *ProgressUI) Show() {
	if p.bar != nil {
		return
	}
	p.percentage = 0
	p.bar = progressbar.NewOptions(100,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			io.WriteString(p.w, "\n")
		}),
	)
}

// Update moves the fill and replaces the status label
func (p *ProgressUI) Update(percentage int, label string) {
	if p.bar == nil {
		return
	}
	p.percentage = percentage
	p.bar.Describe(label)
	_ = p.bar.Set(percentage)
}

// Hide removes an unfinished bar; a completed bar stays on screen
func (p *ProgressUI) Hide() {
	if p.bar == nil {
		return
	}
	if p.percentage < 100 {
		_ = p.bar.Clear()
	}
	p.bar = nil
}

// Pending reports whether an unfinished bar owns the current line
func (p *ProgressUI) Pending() bool {
	return p.bar != nil && p.percentage < 100
}
