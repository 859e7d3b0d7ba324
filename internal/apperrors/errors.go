package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates that an amount could not be parsed or is not positive.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidCurrency indicates that a currency code is not in the supported set.
var ErrInvalidCurrency = errors.New("unsupported currency")

// ErrSameCurrency indicates that source and target currencies are identical.
var ErrSameCurrency = errors.New("source and target currencies must be different")

// ErrRateUnavailable indicates that no exchange rate could be resolved for a pair,
// directly, by inversion, or via the hub currency.
var ErrRateUnavailable = errors.New("no exchange rate available")

// ErrQuoteNotFound indicates that no quote exists for the given identifier.
var ErrQuoteNotFound = errors.New("quote not found")

// ErrTransactionNotFound indicates that no transaction exists for the given identifier.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrQuoteExpired indicates that a quote's validity window has elapsed.
// It is distinct from ErrQuoteNotFound so callers can tell "never existed"
// apart from "too late".
var ErrQuoteExpired = errors.New("quote has expired")

// ErrSettlementInconsistency indicates a broken settlement invariant: a quote is
// marked executed but no transaction is linked to it. It is never recovered from
// automatically.
var ErrSettlementInconsistency = errors.New("settlement data inconsistency")
