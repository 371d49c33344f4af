package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"contract-mapper/internal/common"
)

// Diagnostics holds all diagnostic information from an import or export.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Entry locates the document part this relates to (if any),
	// e.g. "schema[1].properties[0]".
	Entry string
	// Field names the key within Entry (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// Codes recorded by the importer and exporter.
const (
	CodeUnknownField        = "unknown_field"
	CodeDefaultApplied      = "default_applied"
	CodeDeprecatedShape     = "deprecated_shape"
	CodeIdentityReplaced    = "identity_replaced"
	CodeIdentityConflict    = "identity_conflict"
	CodeIdentityDerived     = "identity_derived"
	CodeUnresolvedReference = "unresolved_reference"
	CodeUnresolvedColumn    = "unresolved_column"
	CodeAmbiguousReference  = "ambiguous_reference"
	CodeUnknownCardinality  = "unknown_cardinality"
	CodeUnknownDataLevel    = "unknown_data_level"
	CodeDuplicateProperty   = "duplicate_custom_property"
	CodeInvalidValue        = "invalid_value"
	CodeCompoundKeyDropped  = "compound_key_dropped"
	CodeEngineUnavailable   = "engine_unavailable"
	CodeExtraDocuments      = "extra_documents"
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, entry, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Entry:    entry,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, entry, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Entry:    entry,
		Field:    field,
	})
}

// AddSuggestion adds a warning diagnostic carrying suggested alternatives.
func (d *Diagnostics) AddSuggestion(code, message, entry, field string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Entry:       entry,
		Field:       field,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, entry, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Entry:    entry,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// WithCode returns every diagnostic of any severity carrying code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Has reports whether any diagnostic carries code.
func (d *Diagnostics) Has(code string) bool {
	return len(d.WithCode(code)) > 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Entry != "" {
		prefix = append(prefix, d.Entry)
	}

	if d.Field != "" {
		prefix = append(prefix, "("+d.Field+")")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
