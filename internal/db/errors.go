package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

var (
	// ErrAlreadyExists is returned when a report ID is already taken.
	ErrAlreadyExists = errors.New("report already exists")

	// ErrTransactionConflict is returned when concurrent writes collide.
	// The write can be retried.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound is returned when no report has the requested ID.
	ErrNotFound = errors.New("report not found")
)

// queryErrors maps fragments of SurrealDB error messages to sentinels.
var queryErrors = []struct {
	fragment string
	sentinel error
}{
	{"already exists", ErrAlreadyExists},
	{"Transaction conflict", ErrTransactionConflict},
}

// wrapQueryError attaches a sentinel to known SurrealDB query errors so
// callers can use errors.Is. Anything else is returned unchanged.
func wrapQueryError(err error) error {
	var qe *surrealdb.QueryError
	if !errors.As(err, &qe) {
		return err
	}
	for _, known := range queryErrors {
		if strings.Contains(qe.Message, known.fragment) {
			return fmt.Errorf("%w: %s", known.sentinel, qe.Message)
		}
	}
	return err
}
