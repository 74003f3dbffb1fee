// Package diag collects and renders user-facing diagnostics. Internal
// compiler faults are not diagnostics; those panic with typed errors and
// the driver recovers them per unit.
package diag

import "riptide/internal/source"

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New constructs a diagnostic with the given severity, code and primary span.
func New(sev Severity, code Code, span source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Primary: span}
}

// WithNote attaches a secondary note and returns the updated diagnostic.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: msg})
	return d
}
