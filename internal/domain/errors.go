package domain

import "errors"

// Common account operation errors.
// Every error returned by Account wraps ErrAccount, so callers can match the
// whole family with errors.Is(err, ErrAccount) or a specific kind with the
// dedicated sentinel.
var (
	// ErrAccount is the base error for all account-related failures
	ErrAccount = errors.New("account error")

	// ErrInvalidTransaction is returned for malformed input: non-positive
	// amounts or quantities, a negative initial deposit, a negative explicit
	// price, or an inverted query range
	ErrInvalidTransaction = wrap("invalid transaction")

	// ErrInsufficientFunds is returned when a withdrawal or purchase would
	// drive the cash balance below zero
	ErrInsufficientFunds = wrap("insufficient funds")

	// ErrInsufficientShares is returned when a sale would drive a holding
	// below zero
	ErrInsufficientShares = wrap("insufficient shares")

	// ErrUnknownSymbol is returned when the active price source cannot
	// resolve the requested symbol
	ErrUnknownSymbol = wrap("unknown symbol")
)

func wrap(msg string) error {
	return &accountError{msg: msg}
}

type accountError struct {
	msg string
}

func (e *accountError) Error() string { return "account: " + e.msg }

func (e *accountError) Unwrap() error { return ErrAccount }

// IsInvalidTransaction checks if the given error indicates malformed input.
func IsInvalidTransaction(err error) bool {
	return errors.Is(err, ErrInvalidTransaction)
}

// IsInsufficientFunds checks if the given error indicates a cash shortfall.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsInsufficientShares checks if the given error indicates a share shortfall.
func IsInsufficientShares(err error) bool {
	return errors.Is(err, ErrInsufficientShares)
}

// IsUnknownSymbol checks if the given error indicates an unrecognized symbol.
func IsUnknownSymbol(err error) bool {
	return errors.Is(err, ErrUnknownSymbol)
}
