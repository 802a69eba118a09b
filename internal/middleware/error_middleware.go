package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP statuses and the standard
// error envelope. Every controller funnels its failures through here so the
// wire format stays uniform.
func HandleAPIError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		status, detail := detailForValidation(validationErr)
		c.JSON(status, dto.NewErrorResponse(detail))
		return
	}

	var bindingErrs validator.ValidationErrors
	if errors.As(err, &bindingErrs) {
		fields := make(map[string]string, len(bindingErrs))
		for _, fe := range bindingErrs {
			fields[fe.Field()] = "failed validation on '" + fe.Tag() + "'"
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "validation failed").WithFields(fields)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	status, detail := detailForError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func detailForValidation(err *apperrors.ValidationError) (int, *dto.ErrorDetail) {
	status := http.StatusBadRequest
	code := dto.ErrorCodeValidationFailed

	switch {
	case errors.Is(err.Err, apperrors.ErrConflictingIdentity):
		status = http.StatusUnprocessableEntity
		code = dto.ErrorCodeConflictingIdentity
	case errors.Is(err.Err, apperrors.ErrAlreadyEnrolled),
		errors.Is(err.Err, apperrors.ErrAlreadyTeacher),
		errors.Is(err.Err, apperrors.ErrAlreadyGuardian):
		status = http.StatusUnprocessableEntity
		code = dto.ErrorCodeAlreadyEnrolled
	case errors.Is(err.Err, apperrors.ErrDuplicateEnrollmentNumber),
		errors.Is(err.Err, apperrors.ErrDuplicateRegistrationNumber):
		status = http.StatusUnprocessableEntity
		code = dto.ErrorCodeDuplicateNumber
	case errors.Is(err.Err, apperrors.ErrCPFAlreadyExists),
		errors.Is(err.Err, apperrors.ErrEmailAlreadyExists):
		status = http.StatusUnprocessableEntity
		code = dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err.Err, apperrors.ErrStudentNotFound):
		status = http.StatusUnprocessableEntity
		code = dto.ErrorCodeValidationFailed
	}

	return status, dto.NewErrorDetail(code, err.Error()).WithFields(err.Fields)
}

func detailForError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "token not found")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "permission denied")

	case errors.Is(err, apperrors.ErrIdentityNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrGuardianNotFound),
		errors.Is(err, apperrors.ErrSchoolNotFound),
		errors.Is(err, apperrors.ErrClassNotFound),
		errors.Is(err, apperrors.ErrPlanNotFound),
		errors.Is(err, apperrors.ErrExerciseNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	case errors.Is(err, apperrors.ErrSchoolAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyInClass),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())

	case errors.Is(err, apperrors.ErrClassInactive):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	// A lost uniqueness race: the client may retry the identical request.
	case errors.Is(err, apperrors.ErrPersistenceConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodePersistenceConflict, "the request conflicted with a concurrent change, retry")
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "internal server error")
}
