// Package errors provides coded errors for the trading loop.
//
// Codes are grouped so the controller can map a failure onto its handling
// policy without string matching:
//   - Configuration errors (100-199)
//   - Data availability errors (200-299): quotes, market hours, session parsing
//   - Credential errors (300-399)
//   - Order errors (400-499)
//   - Ledger invariant errors (500-599)
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = 1

	ErrCodeInvalidConfiguration ErrorCode = 100
	ErrCodeInvalidPrice         ErrorCode = 101

	ErrCodeQuoteUnavailable       ErrorCode = 200
	ErrCodeMarketHoursUnavailable ErrorCode = 201
	ErrCodeSessionParseFailed     ErrorCode = 202
	ErrCodeCalendarExhausted      ErrorCode = 203

	ErrCodeCredentialUnavailable ErrorCode = 300
	ErrCodeAccountUnresolved     ErrorCode = 301

	ErrCodeOrderRejected  ErrorCode = 400
	ErrCodeOrderAmbiguous ErrorCode = 401

	ErrCodePositionNotFlat ErrorCode = 500
	ErrCodePositionNotOpen ErrorCode = 501
	ErrCodeUnknownSymbol   ErrorCode = 502
	ErrCodeInvalidQuantity ErrorCode = 503
	ErrCodeCapitalLimit    ErrorCode = 504
)

// Error is a structured error carrying a code and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf attaches a code and formatted message to an existing error.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is is errors.Is re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As re-exported so callers need a single import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in the chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsLedgerInvariant reports whether err is a rejected ledger operation.
func IsLedgerInvariant(err error) bool {
	code := GetCode(err)
	return code >= 500 && code < 600
}
