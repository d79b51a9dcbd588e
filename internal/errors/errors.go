// Package errors provides custom error types for the smartfinance core.
// All service-layer errors use AppError so callers get consistent codes and
// never see raw storage or upstream detail.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation errors: bad or missing input, rejected before any transaction opens.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
)

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid payee address or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// Not-found errors: a referenced client, account, or budget is absent.
var (
	ErrClientNotFound     = &AppError{Code: "CLIENT_NOT_FOUND", Message: "Client not found", StatusCode: http.StatusNotFound}
	ErrAccountNotFound    = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotFound     = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Conflict errors.
var (
	ErrDuplicateClient     = &AppError{Code: "DUPLICATE_CLIENT", Message: "A client with this payee address already exists", StatusCode: http.StatusConflict}
	ErrInsufficientBalance = &AppError{Code: "INSUFFICIENT_BALANCE", Message: "Insufficient savings balance", StatusCode: http.StatusBadRequest}
	ErrSelfTransfer        = &AppError{Code: "SELF_TRANSFER", Message: "Sender and receiver must differ", StatusCode: http.StatusBadRequest}
)

// Storage errors: transaction failure, surfaced after full rollback.
var (
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Upstream market-data errors. These are always recoverable: the analytics
// path absorbs them and degrades to cached or fallback data, so they never
// propagate to a recommendation caller.
var (
	ErrMarketDataUnavailable = &AppError{Code: "MARKET_DATA_UNAVAILABLE", Message: "Market data is unavailable", StatusCode: http.StatusBadGateway}
	ErrSymbolNotFound        = &AppError{Code: "SYMBOL_NOT_FOUND", Message: "Symbol not found", StatusCode: http.StatusNotFound}
	ErrRateLimited           = &AppError{Code: "RATE_LIMITED", Message: "Market data rate limit exceeded", StatusCode: http.StatusTooManyRequests}
)
