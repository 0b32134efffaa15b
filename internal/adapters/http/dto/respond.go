package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/growdaily/internal/domain"
	"github.com/jsamuelsen/growdaily/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error
// response. Unknown errors become a 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(
			ErrorCodeNotFound,
			err.Error(),
		)

	case domain.IsValidation(err):
		resp := NewErrorResponse(
			ErrorCodeValidation,
			err.Error(),
		)

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(
			ErrorCodeForbidden,
			err.Error(),
		)

	case domain.IsSeedSource(err):
		return http.StatusFailedDependency, NewErrorResponse(
			ErrorCodeSeedSource,
			err.Error(),
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			err.Error(),
		)

	default:
		// Unknown errors get a generic message to avoid leaking internals.
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes a domain error to the response, attaching the trace id
// when one is available. Binding and validation errors from BindAndValidate
// should go through HandleBindingError instead.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	attachTraceID(c, errResp)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// HandleBindingError writes the 400 for a BindAndValidate failure: a
// malformed body becomes BAD_REQUEST, a validation failure carries
// field-level details.
func HandleBindingError(c *gin.Context, err error) {
	if errors.Is(err, ErrBinding) {
		RespondWithErrorCode(c, ErrorCodeBadRequest, "request body is malformed")
		return
	}

	RespondWithValidationErrors(c, ValidationErrors(err))
}

// RespondWithErrorCode writes an adapter-level error that does not originate
// from a domain error.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message)
	attachTraceID(c, errResp)

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// RespondWithValidationErrors writes a 400 with field-level validation errors.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	)
	attachTraceID(c, errResp)

	c.JSON(http.StatusBadRequest, errResp)
}

func attachTraceID(c *gin.Context, errResp *ErrorResponse) {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}
}
