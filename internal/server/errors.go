package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railzwaylabs/frontdesk/internal/errs"
)

var (
	ErrInvalidRequest = errs.Validation("invalid_request", "request is malformed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternal       = errors.New("internal error")
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func invalidRequestError() error {
	return ErrInvalidRequest
}

// AbortWithError writes err as a JSON error and stops the handler chain.
// Typed domain errors map by kind; anything else is a 500 and is logged.
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		err = ErrInternal
	}
	_ = c.Error(err)

	if errors.Is(err, ErrUnauthorized) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errorBody{Code: "unauthorized", Message: "authentication required"}})
		return
	}

	if e, ok := errs.As(err); ok {
		c.AbortWithStatusJSON(statusFor(e.Kind), gin.H{"error": errorBody{Code: e.Code, Message: err.Error()}})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errorBody{Code: "internal_error", Message: "internal error"}})
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindIntegrity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
