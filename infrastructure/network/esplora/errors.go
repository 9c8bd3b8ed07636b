package esplora

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidBlockIdentifier indicates a block identifier that is
	// neither a height nor a block hash.
	ErrInvalidBlockIdentifier = errors.New("invalid block identifier")

	// ErrMalformedTransactionID indicates a transaction ID that is not a
	// 64 character hex hash.
	ErrMalformedTransactionID = errors.New("malformed transaction ID")

	// ErrIncompleteListing indicates that the transaction pages of a block
	// did not cover every transaction the block lists.
	ErrIncompleteListing = errors.New("incomplete block listing")
)

// StatusError is returned for responses with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %s: %s", e.URL, e.Status, e.Body)
}
