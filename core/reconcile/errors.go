package reconcile

import (
	"fmt"
	"strings"
)

// UnrecognizedEventError is returned when an event carries neither the "update" nor
// the "newDisruption" tag.
type UnrecognizedEventError struct {
	// Keys are the top-level keys the event did carry, sorted.
	Keys []string
}

func (e *UnrecognizedEventError) Error() string {
	return fmt.Sprintf("unknown event format: no update or newDisruption key (keys: [%s])", strings.Join(e.Keys, ", "))
}

// MissingFieldError is returned when a recognized event lacks a required field.
type MissingFieldError struct {
	// Path is the dotted path of the absent field, e.g. "organizationId.organizationId".
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("event is missing field %s", e.Path)
}

// Reference kinds reported by UnresolvedReferenceError.
const (
	RefSegment    = "segment"
	RefCompetitor = "competitor"
	RefDisruptor  = "disruptor"
)

// UnresolvedReferenceError reports that a synchronization wrote fewer (or more) rows
// than requested, typically because an external code or organization is unknown to
// the store. It aborts the surrounding transaction.
type UnresolvedReferenceError struct {
	Kind           string
	IndustryID     int64
	OrganizationID string
	// References are the codes or organization ids that failed to resolve, when known.
	References []string
	Expected   int64
	Inserted   int64
}

func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("unresolved %s reference for organization %s in industry %d: expected %d rows, inserted %d",
		e.Kind, e.OrganizationID, e.IndustryID, e.Expected, e.Inserted)
	if len(e.References) > 0 {
		msg += fmt.Sprintf(" (unknown: %s)", strings.Join(e.References, ", "))
	}
	return msg
}

// StoreError wraps a failed query or statement against the store.
type StoreError struct {
	// Op names the operation, e.g. "delete segments".
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FlatRecordError reports an unparsable line of the JSONL input.
type FlatRecordError struct {
	// Line is 1-based.
	Line int
	Err  error
}

func (e *FlatRecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FlatRecordError) Unwrap() error {
	return e.Err
}
