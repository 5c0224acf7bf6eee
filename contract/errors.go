package contract

import (
	"errors"
	"fmt"

	"unfair_dao/sdk"
)

// Error is a typed contract failure. Symbol is the short machine name handed
// back to callers, Msg the human text.
type Error struct {
	Symbol string
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrAlreadyExists   = &Error{Symbol: "already_exists", Msg: "account already exists"}
	ErrNotFound        = &Error{Symbol: "not_found", Msg: "account not found"}
	ErrUnqualified     = &Error{Symbol: "unqualified", Msg: "fair score not within proposal boundaries"}
	ErrCountOutOfRange = &Error{Symbol: "count_out_of_range", Msg: "count overflow or underflow"}
	ErrUnauthorized    = &Error{Symbol: "unauthorized", Msg: "caller does not own this account"}
	ErrInvalidInput    = &Error{Symbol: "input_error", Msg: "invalid input"}
	ErrConflict        = &Error{Symbol: "conflict", Msg: "concurrent write, try again"}
)

// SymbolInternal is reported for errors that carry no contract symbol.
const SymbolInternal = "internal_error"

// Symbol extracts the contract symbol from err.
// Example payload: Symbol(fmt.Errorf("%w: vote", ErrAlreadyExists))
func Symbol(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Symbol
	}
	return SymbolInternal
}

// fail wraps a sentinel with some context while keeping errors.Is intact.
func fail(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// mapStoreError turns sdk store errors into contract errors.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sdk.ErrKeyExists):
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	case errors.Is(err, sdk.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}
