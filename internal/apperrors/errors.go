package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a withdrawal amount exceeds the
// campaign's available balance at check time.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAlreadyProcessed indicates an attempted transition on a record that has
// already left its transitional state. A business outcome, never retried.
var ErrAlreadyProcessed = errors.New("record already processed")
