package banking

import "errors"

// Domain errors. Each one signals either a programming error (calling out
// of sequence) or a business-rule violation the orchestrator must decide
// how to handle; none are swallowed and nothing retries automatically.
// Credit denial is deliberately NOT on this list: a denied loan is a
// normal decision outcome, reported as a zero offer.
var (
	// ErrInvalidAmount is returned for a negative monetary amount.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrInsufficientFunds is returned when a withdrawal or transfer
	// exceeds the account's balance at call time.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned for an unknown entry identifier or an
	// unregistered account or bank.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRegistration is returned when an account or bank is
	// registered twice.
	ErrDuplicateRegistration = errors.New("already registered")

	// ErrInvalidID is returned for an empty or malformed entry identifier.
	ErrInvalidID = errors.New("invalid entry id")
)
