package db

import (
	"errors"
	"fmt"
)

// Error kinds. Controllers map these to status codes; everything else is a
// 500. Specific errors below wrap their kind so errors.Is works on both.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBusinessRule = errors.New("business rule violated")
)

var (
	ErrDuplicateISBN  = fmt.Errorf("isbn already registered: %w", ErrConflict)
	ErrDuplicateEmail = fmt.Errorf("email already registered: %w", ErrConflict)

	// Deleting a book or user still referenced by a Pending loan would
	// orphan an active reservation.
	ErrPendingLoans = fmt.Errorf("pending loans reference this record: %w", ErrConflict)

	// Loan creation preconditions. The referenced-entity misses are
	// business-rule kinds, not NotFound: the loan endpoint reports them
	// as bad requests, not as a missing loan.
	ErrLoanUserNotFound = fmt.Errorf("referenced user does not exist: %w", ErrBusinessRule)
	ErrLoanBookNotFound = fmt.Errorf("referenced book does not exist: %w", ErrBusinessRule)
	ErrNoStock          = fmt.Errorf("book has no stock available: %w", ErrBusinessRule)
	ErrDueDateNotFuture = fmt.Errorf("due date must be strictly in the future: %w", ErrBusinessRule)

	ErrInvalidStatus      = fmt.Errorf("invalid loan status: %w", ErrValidation)
	ErrReturnDateRequired = fmt.Errorf("return date is required to mark a loan returned: %w", ErrValidation)
	ErrReturnBeforeLoan   = fmt.Errorf("return date cannot precede the loan date: %w", ErrBusinessRule)
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %s", ErrValidation, err)
}

func notFoundErr(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}
