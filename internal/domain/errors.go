package domain

import (
	"errors"
	"fmt"
)

// ErrCacheMiss indicates no cached pricing update was found.
var ErrCacheMiss = errors.New("pricing cache miss")

// ErrorCode classifies domain errors for callers that map them to exit
// codes or HTTP statuses.
type ErrorCode string

const (
	// CodeValidation marks malformed input such as an inverted date range.
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// CodeCostCalculation marks a failure while pricing a specific usage
	// record; the message carries the offending usage ID.
	CodeCostCalculation ErrorCode = "COST_CALCULATION_ERROR"

	// CodeReportGeneration marks a failure outside per-record calculation,
	// such as a nil input collection.
	CodeReportGeneration ErrorCode = "REPORT_GENERATION_ERROR"

	// CodePricingFetch marks a pricing source failure that survived the
	// fallback chain.
	CodePricingFetch ErrorCode = "PRICING_FETCH_ERROR"
)

// Error is a typed domain error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a typed domain error.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a typed domain error wrapping a cause.
func WrapError(code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// IsCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
