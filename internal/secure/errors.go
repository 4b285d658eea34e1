package secure

import (
	"errors"
	"fmt"

	"github.com/keyhound/keyhound/internal/model"
)

// ErrNotFound is returned by Get when no record exists for the id.
// Absence is an expected outcome, not a custody failure, so it carries
// no severity.
var ErrNotFound = errors.New("secure record not found")

// OperationError reports a failure of a secure-custody operation.
// A failure here means the custody guarantee cannot be upheld for the
// affected operation; callers must treat it as fatal for that
// operation. The severity tag distinguishes broken guarantees
// (SeverityHigh, e.g. encryption failure) from degraded ones.
type OperationError struct {
	// Op names the failed operation ("store", "get", ...).
	Op string

	// Severity classifies the impact.
	Severity model.Severity

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface. The message never includes
// record contents, only the operation and cause.
func (e *OperationError) Error() string {
	return fmt.Sprintf("secure %s failed (%s): %v", e.Op, e.Severity, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// opError builds an OperationError.
func opError(op string, severity model.Severity, err error) *OperationError {
	return &OperationError{Op: op, Severity: severity, Err: err}
}
