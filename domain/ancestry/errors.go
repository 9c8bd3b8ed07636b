package ancestry

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// These values identify a specific AncestryError. Test for them with
// errors.Is.
var (
	// ErrCyclicDependency indicates that the parent relation of the graph
	// contains a cycle, so ancestor counts are undefined.
	ErrCyclicDependency = newAncestryError("ErrCyclicDependency")

	// ErrNotReady indicates that ancestor counts were requested before
	// ComputeAncestorCounts completed.
	ErrNotReady = newAncestryError("ErrNotReady")

	// ErrUnknownTransaction indicates a transaction ID that is not a node
	// of the graph.
	ErrUnknownTransaction = newAncestryError("ErrUnknownTransaction")

	// ErrGraphFrozen indicates an attempt to add edges once counting has
	// completed.
	ErrGraphFrozen = newAncestryError("ErrGraphFrozen")

	// ErrInvalidLimit indicates a negative ranking limit.
	ErrInvalidLimit = newAncestryError("ErrInvalidLimit")

	// ErrAncestorCountOverflow indicates an ancestor count that does not
	// fit in a uint64.
	ErrAncestorCountOverflow = newAncestryError("ErrAncestorCountOverflow")
)

// AncestryError identifies a failure of a graph operation. The caller can
// use errors.Is against the exported sentinels, and errors.As to reach the
// detailed inner error when there is one.
type AncestryError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e AncestryError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e AncestryError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e AncestryError) Cause() error {
	return e.inner
}

// Is reports whether target is an AncestryError of the same kind.
func (e AncestryError) Is(target error) bool {
	other, ok := target.(AncestryError)
	return ok && other.message == e.message
}

func newAncestryError(message string) AncestryError {
	return AncestryError{message: message, inner: nil}
}

func wrapAncestryError(kind AncestryError, inner error) error {
	return errors.WithStack(AncestryError{message: kind.message, inner: inner})
}

// CyclicDependencyError lists the transactions forming a dependency cycle,
// each one spending an output of the next, the last one spending an output
// of the first.
type CyclicDependencyError struct {
	Cycle []string
}

func (e CyclicDependencyError) Error() string {
	return fmt.Sprintf("transactions spend each other in a cycle: %s", strings.Join(e.Cycle, " -> "))
}

// NewErrCyclicDependency creates a CyclicDependencyError wrapped in an
// AncestryError
func NewErrCyclicDependency(cycle []string) error {
	return wrapAncestryError(ErrCyclicDependency, CyclicDependencyError{Cycle: cycle})
}

// UnknownTransactionError names a transaction ID that is not a node of the
// graph.
type UnknownTransactionError struct {
	TransactionID string
}

func (e UnknownTransactionError) Error() string {
	return fmt.Sprintf("transaction %s is not part of the graph", e.TransactionID)
}

// NewErrUnknownTransaction creates an UnknownTransactionError wrapped in an
// AncestryError
func NewErrUnknownTransaction(txID string) error {
	return wrapAncestryError(ErrUnknownTransaction, UnknownTransactionError{TransactionID: txID})
}
