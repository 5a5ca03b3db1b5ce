package cfddlc

import "fmt"

// ErrorCode identifies the kind of failure a cfddlc operation reports:
// caller-contract violations, internal invariant failures, and
// crypto-primitive failures passed through from the adaptor package.
type ErrorCode int

const (
	// ErrIllegalArgument indicates the caller violated a documented
	// precondition: mismatched parallel-slice lengths, an outcome that does
	// not sum to the total collateral, insufficient input amount, a premium
	// requested without a destination script, or a pubkey that is not part
	// of the multisig it is being matched against.
	ErrIllegalArgument ErrorCode = iota

	// ErrInternal indicates a fee-math invariant failed after construction:
	// the single-DLC fee equation did not hold exactly, or the batch
	// equation exceeded its tolerance.
	ErrInternal

	// ErrCryptoError indicates a failure surfaced by the adaptor package:
	// a signature or proof failed verification, or a primitive rejected its
	// input.
	ErrCryptoError
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrIllegalArgument: "ErrIllegalArgument",
	ErrInternal:        "ErrInternal",
	ErrCryptoError:     "ErrCryptoError",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error is the single error type returned by every exported operation in
// this package.
type Error struct {
	Code        ErrorCode
	Description string
	Err         error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap allows errors.Is/errors.As to see through to the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, desc string, err error) *Error {
	return &Error{Code: code, Description: desc, Err: err}
}

func illegalArgumentf(format string, args ...interface{}) *Error {
	return newError(ErrIllegalArgument, fmt.Sprintf(format, args...), nil)
}

func internalf(format string, args ...interface{}) *Error {
	return newError(ErrInternal, fmt.Sprintf(format, args...), nil)
}

func cryptoErrorf(err error, format string, args ...interface{}) *Error {
	return newError(ErrCryptoError, fmt.Sprintf(format, args...), err)
}
