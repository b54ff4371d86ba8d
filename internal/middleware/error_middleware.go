package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/schoolbill/backend/internal/app/models/dto"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

// HandleAPIError maps service-layer errors to HTTP responses. Controllers
// delegate every non-binding error here so the status code and error code
// for a given failure are decided in exactly one place.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrFeeTypeNotFound,
		apperrors.ErrFeeStructureNotFound,
		apperrors.ErrVoucherNotFound,
		apperrors.ErrLineItemNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrNoEligibleStudents,
		apperrors.ErrNoMatchingVouchers):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, fallback(message, err.Error()))

	case apperrors.Is(err, apperrors.ErrResourceAlreadyExists,
		apperrors.ErrConflict,
		apperrors.ErrFeeTypeNameExists,
		apperrors.ErrFeeStructureExists,
		apperrors.ErrVoucherAlreadyExists,
		apperrors.ErrFeeTypeInUse):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, fallback(message, err.Error()))

	case errors.Is(err, apperrors.ErrOverpayment):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeOverpayment, fallback(message, "Payment would exceed the voucher total"))

	case errors.Is(err, apperrors.ErrInvalidReference):
		respond(c, http.StatusUnprocessableEntity, dto.ErrorCodeInvalidReference, fallback(message, err.Error()))

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, fallback(message, err.Error()))

	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		if gin.Mode() != gin.ReleaseMode {
			detail = detail.WithDebugInfo("%v", err)
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func fallback(message, def string) string {
	if message != "" {
		return message
	}
	return def
}
