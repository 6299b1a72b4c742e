package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/bizpulse/internal/daterange"
	erpdomain "github.com/smallbiznis/bizpulse/internal/erp/domain"
	logisticsdomain "github.com/smallbiznis/bizpulse/internal/logistics/domain"
	"github.com/smallbiznis/bizpulse/internal/ratelimit"
)

// ValidationError rejects a malformed query parameter.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (v *ValidationError) Error() string {
	return v.Message
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorEnvelope(message))
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func newValidationError(field, code, message string) error {
	return &ValidationError{
		Field:   field,
		Code:    code,
		Message: message,
	}
}

// mapError picks the status for err. Store failures keep their message so
// the dashboard can show what went wrong.
func mapError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal server error"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}

	switch {
	case errors.Is(err, daterange.ErrInvalidStartDate):
		return http.StatusBadRequest, "startDate must be a date in YYYY-MM-DD format"
	case errors.Is(err, daterange.ErrInvalidEndDate):
		return http.StatusBadRequest, "endDate must be a date in YYYY-MM-DD format"
	case errors.Is(err, daterange.ErrInvertedRange):
		return http.StatusBadRequest, "startDate must not be after endDate"
	case errors.Is(err, daterange.ErrInvalidPreset):
		return http.StatusBadRequest, "preset must be one of today, week, month, quarter, year"
	case errors.Is(err, erpdomain.ErrInvalidLimit):
		return http.StatusBadRequest, "limit is out of range"
	case errors.Is(err, logisticsdomain.ErrInvalidDeliveryType):
		return http.StatusBadRequest, "type must be one of cycle_delivered, pickup_pending, pickup_cleared, outside_delivery"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, ratelimit.ErrRateLimited):
		return http.StatusTooManyRequests, "too many requests"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// classifyErrorForLog labels request errors for the access log.
func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return "validation_error", vErr.Code
	case status == http.StatusBadRequest:
		return "validation_error", err.Error()
	case status == http.StatusNotFound:
		return "not_found", "not_found"
	case status == http.StatusTooManyRequests:
		return "rate_limited", "rate_limited"
	default:
		return "store_error", "internal_error"
	}
}
