// Package domain – error taxonomy
//
// Every failure produced by the repo and external layers is tagged with a
// Kind so the HTTP layer can pick a status code without knowing which driver,
// client or syscall produced it. Errors that carry no tag are unclassified.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the dependency and the way it failed.
type Kind int

const (
	// KindUnclassified is any failure nothing else claims.
	KindUnclassified Kind = iota
	// KindExternalAPI covers network, non-2xx and decode failures against a third-party API.
	KindExternalAPI
	// KindDBConnection is a failure to open or reach the database.
	KindDBConnection
	// KindDBQuery is a statement failure such as a missing table.
	KindDBQuery
	// KindDBConstraint is an integrity violation (duplicate key, NOT NULL).
	KindDBConstraint
	// KindFileNotFound is a missing local file.
	KindFileNotFound
	// KindFileRead is any other local file failure (permissions, decoding).
	KindFileRead
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindExternalAPI:
		return "ExternalApiFailure"
	case KindDBConnection:
		return "DatabaseConnectionFailure"
	case KindDBQuery:
		return "DatabaseQueryFailure"
	case KindDBConstraint:
		return "DatabaseConstraintViolation"
	case KindFileNotFound:
		return "FileNotFound"
	case KindFileRead:
		return "FileReadFailure"
	default:
		return "UnclassifiedFailure"
	}
}

// IsDatabase reports whether k originates from the database layer.
func (k Kind) IsDatabase() bool {
	return k == KindDBConnection || k == KindDBQuery || k == KindDBConstraint
}

// Reason narrows a Kind down where one kind covers several causes.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonMissingTable Reason = "missing_table"
	ReasonDuplicateKey Reason = "duplicate_key"
	ReasonNotNull      Reason = "not_null"
	ReasonNotFound     Reason = "not_found"     // upstream 404
	ReasonBadRequest   Reason = "bad_request"   // upstream 400
	ReasonUnreachable  Reason = "unreachable"   // network or timeout
	ReasonBadPayload   Reason = "bad_payload"   // body could not be decoded
	ReasonUpstream     Reason = "upstream_http" // any other non-2xx
)

// Error is a tagged failure. Op names the operation that failed (for logs);
// Err is the underlying cause whose text becomes the response "detalle".
type Error struct {
	Kind   Kind
	Reason Reason
	Op     string
	Err    error
}

// Error returns the underlying cause's text so the diagnostic reaches clients
// unchanged.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return e.Err.Error()
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// E tags err with kind and reason for operation op. A nil err stays nil.
func E(kind Kind, reason Reason, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Reason: reason, Op: op, Err: err}
}

// KindOf returns the Kind of the first tagged error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// ReasonOf returns the Reason of the first tagged error in err's chain.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ReasonNone
}
