package diagnostics

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/inko-lang/inko-sub002/internal/ast"
)

// Severity distinguishes an Error (recoverable, but still a failed
// compile) from a Warning (does not fail the compile).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one reported problem: a kind, a severity, a message, a
// source location, and optional structured data for tooling.
type Diagnostic struct {
	Schema   string         `json:"schema"`
	Kind     Kind           `json:"code"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Location ast.Pos        `json:"location"`
	Data     map[string]any `json:"data,omitempty"`
}

const schemaVersion = "inkoc.diagnostic/v1"

// New builds a Diagnostic of the kind's default severity.
func New(kind Kind, loc ast.Pos, message string) *Diagnostic {
	info := Registry[kind]
	return &Diagnostic{
		Schema:   schemaVersion,
		Kind:     kind,
		Severity: info.DefaultSeverity,
		Message:  message,
		Location: loc,
	}
}

// WithData attaches structured data and returns the same diagnostic, for
// fluent construction at call sites.
func (d *Diagnostic) WithData(key string, value any) *Diagnostic {
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	d.Data[key] = value
	return d
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: [%s] %s (%s)", d.Severity, d.Kind, d.Message, d.Location)
}

// ToJSON renders the diagnostic as deterministic JSON.
func (d *Diagnostic) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(d)
	} else {
		data, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ArgumentCountMessage renders a human-friendly "N argument(s)" phrase
// for arity-mismatch diagnostics, using go-humanize's pluralization the
// way a CLI error reporter formats counts for a human reader.
func ArgumentCountMessage(want, got int) string {
	return fmt.Sprintf("expected %s, got %s",
		humanize.Plural(want, "argument", "arguments"),
		humanize.Plural(got, "argument", "arguments"))
}

// Sink is the ordered diagnostics collector every State owns (§3.5,
// §4.3). Diagnostics are appended in AST-visitation order and never
// removed.
type Sink struct {
	items []*Diagnostic
}

// NewSink creates an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a diagnostic, preserving visitation order.
func (s *Sink) Add(d *Diagnostic) {
	s.items = append(s.items, d)
}

// Emit is a convenience wrapper: build and append a diagnostic in one call.
func (s *Sink) Emit(kind Kind, loc ast.Pos, message string) *Diagnostic {
	d := New(kind, loc, message)
	s.Add(d)
	return d
}

// All returns every diagnostic recorded so far, in order.
func (s *Sink) All() []*Diagnostic {
	return s.items
}

// Errors returns only the error-severity diagnostics.
func (s *Sink) Errors() []*Diagnostic {
	return s.filter(SeverityError)
}

// Warnings returns only the warning-severity diagnostics.
func (s *Sink) Warnings() []*Diagnostic {
	return s.filter(SeverityWarning)
}

func (s *Sink) filter(sev Severity) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range s.items {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any warning-severity diagnostic was recorded.
func (s *Sink) HasWarnings() bool {
	for _, d := range s.items {
		if d.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Len reports the total number of diagnostics recorded (errors and
// warnings), used by the "no cascade amplification" testable property
// (§8): it must stay bounded by program size across a test suite.
func (s *Sink) Len() int {
	return len(s.items)
}
