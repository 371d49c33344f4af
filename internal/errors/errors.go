// Package errors provides error handling for contract-mapper.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, wrapping, hints and details, and defines the typed error taxonomy
// of the contract engine:
//
//   - MalformedDocumentError: the text could not be parsed
//   - MissingFieldError: a required field is absent on a specific entry
//   - UnresolvedReferenceError: a relationship target is unknown (recoverable)
//   - IdentityConflictError: two entities claim the same identifier
//   - CapabilityUnavailableError: the external engine is missing or incompatible
//   - SerializationError: an entity cannot be represented on export
//
// Check typed errors with errors.As:
//
//	var missing *errors.MissingFieldError
//	if errors.As(err, &missing) {
//	    fmt.Println(missing.Entry, missing.Field)
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is           = crdb.Is
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)
