package diagnostic

import (
	"fmt"
	"strings"

	"kafkatype/internal/common"
)

//go:generate go tool stringer -type=Code -linecomment -output=code_string.go

// Code identifies the kind of a diagnostic.
type Code int

const (
	CodeUnknown              Code = iota // unknown
	CodeMissingLabel                     // missing_label
	CodeInvalidLabel                     // invalid_label
	CodeLabelCollision                   // label_collision
	CodeUnresolvedType                   // unresolved_type
	CodePackageError                     // package_error
	CodeUnsupportedType                  // unsupported_type
	CodeMisplacedDirective               // misplaced_directive
	CodeExtraDirectiveFields             // extra_directive_fields
	CodeExcluded                         // excluded
)

// Diagnostics holds all diagnostic information from a scan or build.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Subject identifies what a diagnostic is about. Any field may be empty.
type Subject struct {
	// TypeName is the fully-qualified type name, e.g. "kafkatype/examples/model.Order".
	TypeName string
	// Label is the label involved.
	Label string
	// Pos is a source position or another human-readable origin.
	Pos string
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Subject

	// Severity of the diagnostic.
	Severity Severity
	// Code identifies the kind of problem.
	Code Code
	// Message is the human-readable description.
	Message string
	// Cause is the sentinel error an error diagnostic wraps, if any.
	Cause error
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic. cause may be nil.
func (d *Diagnostics) AddError(code Code, cause error, message string, s Subject) {
	d.Errors = append(d.Errors, Diagnostic{
		Subject:  s,
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Cause:    cause,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message string, s Subject) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Subject:  s,
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message string, s Subject) {
	d.Infos = append(d.Infos, Diagnostic{
		Subject:  s,
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Err returns an error combining all error diagnostics, or nil if valid.
// The result unwraps to every error diagnostic and, through them, to
// their causes.
func (d *Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	return &Error{Diagnostics: append([]Diagnostic(nil), d.Errors...)}
}

// Error returns the diagnostic as an error string.
func (d Diagnostic) Error() string {
	return d.String()
}

// Unwrap returns the diagnostic's cause.
func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos)
	}

	if d.TypeName != "" {
		prefix = append(prefix, d.TypeName)
	}

	msg := d.Message
	if d.Code != CodeUnknown {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Error is the error returned by Diagnostics.Err.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "; ")
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		errs = append(errs, d)
	}

	return errs
}
