package pos

import (
	"errors"
	"fmt"
)

type NoticeCode int

const (
	NoticeInvalidArgument NoticeCode = iota
	NoticeFailedPrecondition
	NoticeNotFound
)

func (c NoticeCode) String() string {
	switch c {
	case NoticeInvalidArgument:
		return "INVALID_ARGUMENT"
	case NoticeFailedPrecondition:
		return "FAILED_PRECONDITION"
	case NoticeNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// NoticeError is a rejected operation that left all state untouched.
// Callers surface it to the cashier instead of treating it as a fault.
type NoticeError struct {
	Code    NoticeCode
	Message string
}

func (e *NoticeError) Error() string {
	return e.Message
}

func newNotice(code NoticeCode, message string) *NoticeError {
	return &NoticeError{Code: code, Message: message}
}

var (
	ErrInvalidItem     = newNotice(NoticeInvalidArgument, "Item name is required and price must be a non-negative number")
	ErrItemNotFound    = newNotice(NoticeNotFound, "Menu item not found")
	ErrItemUnavailable = newNotice(NoticeFailedPrecondition, "Menu item is sold out")
	ErrLineNotFound    = newNotice(NoticeNotFound, "Item not in cart")
	ErrEmptyCart       = newNotice(NoticeFailedPrecondition, "Cart is empty")
	ErrInvalidPeriod   = newNotice(NoticeInvalidArgument, "Month must be between 1 and 12")
)

var (
	// ErrCartResetFailed means the sale is in the ledger but the cart still
	// holds its lines; the caller must clear it before taking the next order.
	ErrCartResetFailed = errors.New("sale recorded but cart was not reset")
	ErrLedgerCorrupt   = errors.New("sales ledger is unreadable, refusing to overwrite it")
)

// AsNotice reports whether err carries a NoticeError.
func AsNotice(err error) (*NoticeError, bool) {
	var n *NoticeError
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}

// wrapOp annotates storage faults with the operation name and passes
// notices through untouched so their message reaches the cashier as is.
func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsNotice(err); ok {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func resetFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrCartResetFailed, err)
}
