// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-08

// Package tui renders migration progress as an interactive terminal view.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wodow/google-code-issues-migrator/internal/core/engine"
)

// ChannelReporter bridges migration progress onto the TUI's message channel.
// The migration runs in its own goroutine and blocks on the channel when the
// view falls behind, which is fine: API calls dominate, not rendering.
type ChannelReporter struct {
	ch chan tea.Msg
}

var _ engine.Reporter = (*ChannelReporter)(nil)

// NewChannelReporter creates a reporter and the channel the TUI model reads.
func NewChannelReporter() *ChannelReporter {
	return &ChannelReporter{ch: make(chan tea.Msg, 64)}
}

// Chan returns the message channel for NewModel.
func (r *ChannelReporter) Chan() <-chan tea.Msg {
	return r.ch
}

func (r *ChannelReporter) Printf(format string, args ...any) {
	r.ch <- ProgressMsg{Text: fmt.Sprintf(format, args...)}
}

func (r *ChannelReporter) End() {
	r.ch <- LineDoneMsg{}
}

func (r *ChannelReporter) Infof(format string, args ...any) {
	r.ch <- LogMsg{Text: fmt.Sprintf(format, args...)}
}

func (r *ChannelReporter) Warnf(format string, args ...any) {
	r.ch <- LogMsg{Warning: true, Text: fmt.Sprintf(format, args...)}
}

// Finish reports the terminal result and closes the channel. Call exactly
// once, after the migration goroutine has returned.
func (r *ChannelReporter) Finish(err error) {
	if err != nil {
		r.ch <- DoneMsg{Err: err}
	}
	close(r.ch)
}
