package life

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams is matched by every *ValidationError
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrNotReset is returned when the engine has no world yet
	ErrNotReset = errors.New("engine has not been reset")
	// ErrMatrixSize is returned when a matrix does not match the type count
	ErrMatrixSize = errors.New("matrix size does not match type count")
	// ErrTickAborted is matched by every *TickError
	ErrTickAborted = errors.New("tick aborted")
)

// TickError reports a worker fault. The tick it interrupted was not
// committed.
type TickError struct {
	Tick  uint64
	Value any // recovered panic value
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d aborted: worker panic: %v", e.Tick, e.Value)
}

func (e *TickError) Unwrap() error {
	return ErrTickAborted
}
