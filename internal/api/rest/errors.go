package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/analos-labs/launchpad-engine/internal/domain"
	"github.com/analos-labs/launchpad-engine/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
	errCodeStorageError  ErrorCode = "storage_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// Tier is set on capacity rejections so callers know which tier filled up
	Tier string `json:"tier,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondEngineError maps engine errors onto HTTP responses. Rejections
// are expected outcomes and carry their reason as the machine code;
// everything else falls through to the generic buckets.
func respondEngineError(c *gin.Context, err error) {
	var rejection *domain.Rejection
	if errors.As(err, &rejection) {
		c.JSON(http.StatusConflict, errorResponse{
			Error: errorDetail{
				Code:    ErrorCode(rejection.Reason),
				Message: "Mint rejected",
				Tier:    string(rejection.Tier),
			},
		})
		return
	}

	var violation *domain.InvariantViolation
	if errors.As(err, &violation) {
		logger.Error(err, zap.String("collection_id", violation.CollectionID))
		respondWithError(c, http.StatusInternalServerError, errCodeInternalError, "Collection tier halted")
		return
	}

	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		respondNotFound(c, "Collection not found")
	case errors.Is(err, domain.ErrTierNotFound):
		respondNotFound(c, "Tier not found")
	case errors.Is(err, domain.ErrInvalidWallet):
		respondValidationError(c, "wallet is not a valid address")
	case errors.Is(err, domain.ErrNotAuthorized):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Not authorized")
	case errors.Is(err, domain.ErrStorageFailure):
		logger.Error(err)
		respondWithError(c, http.StatusServiceUnavailable, errCodeStorageError, "Temporary storage failure, retry later")
	default:
		respondInternalError(c, err, "Mint attempt failed")
	}
}
