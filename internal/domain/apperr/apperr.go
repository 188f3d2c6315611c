package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes failures returned by the ledger and its collaborators.
type Kind string

const (
	KindInvalidArgument       Kind = "InvalidArgument"
	KindNotFound              Kind = "NotFound"
	KindConflict              Kind = "Conflict"
	KindInsufficientStock     Kind = "InsufficientStock"
	KindInsufficientInventory Kind = "InsufficientInventory"
	KindBusy                  Kind = "Busy"
	KindInternal              Kind = "Internal"
)

// Shortfall describes one consumption line that cannot be satisfied.
type Shortfall struct {
	ItemID    int64  `json:"itemId"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
}

// Missing returns how many units the line is short by.
func (s Shortfall) Missing() int {
	if s.Required <= s.Available {
		return 0
	}
	return s.Required - s.Available
}

// Error is the single error type surfaced by service operations.
type Error struct {
	Kind    Kind
	Message string

	// Set for KindInsufficientStock.
	Available int
	Requested int

	// Set for KindInsufficientInventory; always the complete list.
	Shortfalls []Shortfall

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind so callers can write errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind-only targets for errors.Is.
var (
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrConflict              = &Error{Kind: KindConflict}
	ErrInsufficientStock     = &Error{Kind: KindInsufficientStock}
	ErrInsufficientInventory = &Error{Kind: KindInsufficientInventory}
	ErrBusy                  = &Error{Kind: KindBusy}
)

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStock reports a single-item deduction that exceeds the on-hand quantity.
func InsufficientStock(name string, available, requested int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Message:   fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, available, requested),
		Available: available,
		Requested: requested,
	}
}

// InsufficientInventory reports every unsatisfiable line of a multi-item consumption.
func InsufficientInventory(shortfalls []Shortfall) *Error {
	names := make([]string, 0, len(shortfalls))
	for _, s := range shortfalls {
		names = append(names, fmt.Sprintf("%s (available %d, required %d)", s.Name, s.Available, s.Required))
	}
	return &Error{
		Kind:       KindInsufficientInventory,
		Message:    "insufficient inventory: " + strings.Join(names, ", "),
		Shortfalls: shortfalls,
	}
}

// Busy reports that the ledger lock could not be acquired in time.
func Busy(err error) *Error {
	return &Error{Kind: KindBusy, Message: "ledger is busy, try again", Err: err}
}

// Internal wraps an unexpected infrastructure failure.
func Internal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind of err, defaulting to KindInternal for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
