// Package diag provides the diagnostics sink used by the texture pipeline.
//
// Every failure in the pipeline is local: it is reported here and converted
// into a degraded result instead of aborting the export. The sink counts
// events per severity so a caller can finish the whole run and still exit
// non-zero when something went wrong.
package diag

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Severity of a reported event.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Event is a single reported diagnostic.
type Event struct {
	Severity Severity
	Code     string // machine-readable code, empty for plain messages
	Message  string
	Path     string // affected file or resource, if any
	Depth    int    // nesting level at the time of the report
}

// Handler receives reported events.
type Handler interface {
	Handle(Event)
}

// Sink fans reported events out to its handlers and keeps severity counters.
type Sink struct {
	handlers []Handler
	depth    int
	counts   [3]int
}

// NewSink creates a sink with the given handlers.
func NewSink(handlers ...Handler) *Sink {
	return &Sink{handlers: handlers}
}

// Indent increases the nesting level of subsequent reports.
func (s *Sink) Indent() { s.depth++ }

// Outdent decreases the nesting level.
func (s *Sink) Outdent() {
	if s.depth > 0 {
		s.depth--
	}
}

// Message reports an informational event.
func (s *Sink) Message(format string, args ...any) {
	s.report(Event{Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)})
}

// Warning reports a warning with a machine-readable code.
func (s *Sink) Warning(code, format string, args ...any) {
	s.report(Event{Severity: SeverityWarning, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Error reports an error with a machine-readable code.
func (s *Sink) Error(code, format string, args ...any) {
	s.report(Event{Severity: SeverityError, Code: code, Message: fmt.Sprintf(format, args...)})
}

// WarningPath reports a warning tied to a file or resource path.
func (s *Sink) WarningPath(code, path, format string, args ...any) {
	s.report(Event{Severity: SeverityWarning, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// ErrorPath reports an error tied to a file or resource path.
func (s *Sink) ErrorPath(code, path, format string, args ...any) {
	s.report(Event{Severity: SeverityError, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) report(ev Event) {
	ev.Depth = s.depth
	s.counts[ev.Severity]++
	for _, h := range s.handlers {
		h.Handle(ev)
	}
}

// Warnings returns the number of warnings reported so far.
func (s *Sink) Warnings() int { return s.counts[SeverityWarning] }

// Errors returns the number of errors reported so far.
func (s *Sink) Errors() int { return s.counts[SeverityError] }

// Summary returns a one-line report of the counters.
func (s *Sink) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", s.counts[SeverityError], s.counts[SeverityWarning])
}

// ZapHandler forwards events to a zap logger, rendering the nesting level
// as indentation the way the host tool's message window does.
type ZapHandler struct {
	Log *zap.Logger
}

// Handle implements Handler.
func (h ZapHandler) Handle(ev Event) {
	msg := strings.Repeat("  ", ev.Depth) + ev.Message
	fields := make([]zap.Field, 0, 2)
	if ev.Code != "" {
		fields = append(fields, zap.String("code", ev.Code))
	}
	if ev.Path != "" {
		fields = append(fields, zap.String("path", ev.Path))
	}
	switch ev.Severity {
	case SeverityError:
		h.Log.Error(msg, fields...)
	case SeverityWarning:
		h.Log.Warn(msg, fields...)
	default:
		h.Log.Info(msg, fields...)
	}
}

// Recorder is a Handler that keeps every event in memory. Used by tests and
// by the CLI to build the end-of-run report.
type Recorder struct {
	Events []Event
}

// Handle implements Handler.
func (r *Recorder) Handle(ev Event) {
	r.Events = append(r.Events, ev)
}

// ByCode returns all recorded events carrying the given code.
func (r *Recorder) ByCode(code string) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Code == code {
			out = append(out, ev)
		}
	}
	return out
}

// BySeverity returns all recorded events of the given severity.
func (r *Recorder) BySeverity(sev Severity) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Severity == sev {
			out = append(out, ev)
		}
	}
	return out
}
