package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Identity reconciliation errors. These are expected, user-facing outcomes
// of the enrollment flow, not system faults.
var (
	// ErrConflictingIdentity means the CPF and the email each resolved to a
	// different existing identity. Merging them would silently join two
	// unrelated people's school links, so the whole operation is rejected.
	ErrConflictingIdentity = errors.New("cpf and email belong to different identities")

	ErrIdentityNotFound   = errors.New("identity not found")
	ErrCPFAlreadyExists   = errors.New("cpf already in use")
	ErrEmailAlreadyExists = errors.New("email already in use")
)

// Profile errors, one per kind plus the per-school number collisions.
var (
	ErrAlreadyEnrolled  = errors.New("identity already enrolled as a student at this school")
	ErrAlreadyTeacher   = errors.New("identity already registered as a teacher at this school")
	ErrAlreadyGuardian  = errors.New("identity already registered as a guardian at this school")
	ErrStudentNotFound  = errors.New("student not found")
	ErrTeacherNotFound  = errors.New("teacher not found")
	ErrGuardianNotFound = errors.New("guardian not found")

	ErrDuplicateEnrollmentNumber   = errors.New("enrollment number already in use at this school")
	ErrDuplicateRegistrationNumber = errors.New("registration number already in use at this school")
)

// School and class errors
var (
	ErrSchoolNotFound      = errors.New("school not found")
	ErrSchoolAlreadyExists = errors.New("school with this document already exists")
	ErrClassNotFound       = errors.New("class not found")
	ErrClassInactive       = errors.New("class is not active")
	ErrAlreadyInClass      = errors.New("student already has an active class enrollment")
)

// Plan and teacher assignment errors
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExamNotFound     = errors.New("exam not found")
)

// ErrPersistenceConflict is a race-induced unique-constraint violation that
// slipped past the application-level pre-checks (two concurrent requests).
// Callers may retry; the service layer never does.
var ErrPersistenceConflict = errors.New("persistence conflict")

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

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
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

// ValidationError carries field-level attribution for a user-facing
// validation outcome, e.g. ErrConflictingIdentity reported against both
// "cpf" and "email".
type ValidationError struct {
	Err    error
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrValidationFailed.Error()
}

// Unwrap implements errors.Unwrap
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError from alternating
// field/message pairs.
func NewValidationError(err error, fieldMessages ...string) *ValidationError {
	fields := make(map[string]string, len(fieldMessages)/2)
	for i := 0; i+1 < len(fieldMessages); i += 2 {
		fields[fieldMessages[i]] = fieldMessages[i+1]
	}
	return &ValidationError{Err: err, Fields: fields}
}
