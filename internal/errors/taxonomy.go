package errors

import (
	"fmt"
	"strings"
)

// MalformedDocumentError reports text that could not be parsed into a tree.
// Line and Column are 1-based and zero when the parser did not report them.
type MalformedDocumentError struct {
	Line   int
	Column int
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	var b strings.Builder

	b.WriteString("malformed document")

	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)

		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	return b.String()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field absent on a specific entry.
type MissingFieldError struct {
	// Entry locates the entry, e.g. "schema[2]" or "schema[0].properties[3]".
	Entry string
	// Index is the position of the entry within its parent sequence.
	Index int
	// Field is the logical field name that was required.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %q is missing", e.Entry, e.Field)
}

// UnresolvedReferenceError reports a relationship whose target table is not
// declared in the document. Importers record it as a warning and drop the
// relationship.
type UnresolvedReferenceError struct {
	Entry     string
	Reference string
	Table     string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: relationship target %q references unknown table %q", e.Entry, e.Reference, e.Table)
}

// IdentityConflictError reports two entities resolving to the same identifier.
type IdentityConflictError struct {
	ID     string
	First  string
	Second string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("identifier %s claimed by both %s and %s", e.ID, e.First, e.Second)
}

// CapabilityUnavailableError reports that the external transformation engine
// is absent or incompatible. It triggers the fallback path rather than
// failing an import.
type CapabilityUnavailableError struct {
	Reason     string
	Version    string
	Constraint string
	Err        error
}

func (e *CapabilityUnavailableError) Error() string {
	msg := "transformation engine unavailable"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Version != "" && e.Constraint != "" {
		msg += fmt.Sprintf(" (engine %s does not satisfy %s)", e.Version, e.Constraint)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *CapabilityUnavailableError) Unwrap() error { return e.Err }

// SerializationError names the entity that could not be represented on export.
type SerializationError struct {
	Entity string
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	msg := fmt.Sprintf("cannot serialize %s: %s", e.Entity, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SerializationError) Unwrap() error { return e.Err }
