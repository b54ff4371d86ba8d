package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Reference errors
	ErrInvalidReference = errors.New("referenced entity does not exist")
)

// Fee type errors
var (
	ErrFeeTypeNotFound   = errors.New("fee type not found")
	ErrFeeTypeNameExists = errors.New("fee type with this name already exists")
	ErrFeeTypeInUse      = errors.New("fee type is referenced by structures or vouchers and cannot be deleted")
)

// Fee structure errors
var (
	ErrFeeStructureNotFound = errors.New("fee structure not found")
	ErrFeeStructureExists   = errors.New("fee structure for this class, fee type, year and frequency already exists")
)

// Voucher errors
var (
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrVoucherAlreadyExists = errors.New("voucher already exists for this student and due date")
	ErrLineItemNotFound     = errors.New("voucher line item not found")
	ErrOverpayment          = errors.New("payment would exceed the voucher total")
	ErrNoEligibleStudents   = errors.New("no eligible students found for generation")
	ErrStudentNotFound      = errors.New("student not found")
	ErrNoMatchingVouchers   = errors.New("no vouchers match the given filter")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for malformed input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewInvalidReferenceError creates a new custom error for a broken foreign reference
func NewInvalidReferenceError(message string) error {
	return &CustomError{
		Err:     ErrInvalidReference,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
