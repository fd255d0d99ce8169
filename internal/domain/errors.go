package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrSlotOutOfRange = errors.New("slot number out of range")
	ErrNothingToSwap  = errors.New("neither slot is occupied")
	ErrUnknownRegion  = errors.New("unknown region")
	// ErrSentinelOccupied means a row is parked on the sentinel, so swaps in the scope
	// must wait until it is restored or deleted.
	ErrSentinelOccupied = errors.New("sentinel slot is occupied")
)

// ValidationError is returned when required payload fields are missing or malformed.
// No store call has been made when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StoreError wraps any failure returned by the slot store.
type StoreError struct {
	Op string
	// Conflict is set when the store rejected the write on the (scope, slot_number) unique key.
	Conflict bool
	Err      error
}

func (e *StoreError) Error() string {
	if e.Conflict {
		return fmt.Sprintf("store %s: slot number conflict: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// InconsistentStateError reports rows found outside the valid slot range after a reload,
// usually a record left on the sentinel by a swap that failed partway.
type InconsistentStateError struct {
	Scope     Scope
	Anomalies []*Slot
}

func (e *InconsistentStateError) Error() string {
	nums := make([]string, 0, len(e.Anomalies))
	for _, s := range e.Anomalies {
		nums = append(nums, fmt.Sprintf("%s@%d", s.ID, s.SlotNumber))
	}
	return fmt.Sprintf("scope %s has out-of-range slots: %s", e.Scope, strings.Join(nums, ", "))
}
