package codec

import (
	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/errors"
)

// Error taxonomy, re-exported so callers can match with errors.As.
type (
	MalformedDocumentError     = errors.MalformedDocumentError
	MissingFieldError          = errors.MissingFieldError
	UnresolvedReferenceError   = errors.UnresolvedReferenceError
	IdentityConflictError      = errors.IdentityConflictError
	CapabilityUnavailableError = errors.CapabilityUnavailableError
	SerializationError         = errors.SerializationError
)

type (
	Diagnostics        = diagnostic.Diagnostics
	Diagnostic         = diagnostic.Diagnostic
	DiagnosticSeverity = diagnostic.DiagnosticSeverity
)

// Diagnostic codes.
const (
	CodeUnknownField        = diagnostic.CodeUnknownField
	CodeDefaultApplied      = diagnostic.CodeDefaultApplied
	CodeDeprecatedShape     = diagnostic.CodeDeprecatedShape
	CodeIdentityReplaced    = diagnostic.CodeIdentityReplaced
	CodeIdentityConflict    = diagnostic.CodeIdentityConflict
	CodeIdentityDerived     = diagnostic.CodeIdentityDerived
	CodeUnresolvedReference = diagnostic.CodeUnresolvedReference
	CodeUnresolvedColumn    = diagnostic.CodeUnresolvedColumn
	CodeAmbiguousReference  = diagnostic.CodeAmbiguousReference
	CodeUnknownCardinality  = diagnostic.CodeUnknownCardinality
	CodeUnknownDataLevel    = diagnostic.CodeUnknownDataLevel
	CodeDuplicateProperty   = diagnostic.CodeDuplicateProperty
	CodeInvalidValue        = diagnostic.CodeInvalidValue
	CodeCompoundKeyDropped  = diagnostic.CodeCompoundKeyDropped
	CodeEngineUnavailable   = diagnostic.CodeEngineUnavailable
	CodeExtraDocuments      = diagnostic.CodeExtraDocuments
)
