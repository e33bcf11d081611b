package diag

import (
	"lattice/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported finding: severity, stable code, message and the
// primary span the finding is tagged with.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote returns a copy of d with one more note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}
