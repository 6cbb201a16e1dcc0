// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-04

package engine

import (
	"fmt"
	"io"
	"log"
)

// Reporter receives migration progress. Printf appends a fragment to the
// current progress line (one line per issue, a dot per comment); End
// terminates the line. Infof and Warnf are out-of-band log messages.
type Reporter interface {
	Printf(format string, args ...any)
	End()
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// StreamReporter writes progress as an incremental text stream, flushing
// each fragment immediately so dots appear as comments are created.
type StreamReporter struct {
	w io.Writer
}

// NewStreamReporter creates a reporter writing to w.
func NewStreamReporter(w io.Writer) *StreamReporter {
	return &StreamReporter{w: w}
}

func (r *StreamReporter) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *StreamReporter) End() {
	fmt.Fprintln(r.w)
}

func (r *StreamReporter) Infof(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

func (r *StreamReporter) Warnf(format string, args ...any) {
	log.Printf("WARNING: "+format, args...)
}
