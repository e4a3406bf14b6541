package authority

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when a non-admin caller attempts to change
// the permission table. The rejection is local; no store call is made.
var ErrUnauthorized = errors.New("only admin may change permissions")

// StoreError wraps a permission store failure. When it is returned the
// in-memory mirror has not been touched: the pre-write value stays
// authoritative until an explicit refresh.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("permission store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
