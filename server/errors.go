package server

import (
	"course-studio/service"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"net/http"
	"strings"
)

// writeError maps service errors onto status codes. Unknown errors are logged
// and reported without detail.
func writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": describeFieldErrors(fieldErrs)})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// badRequest reports a malformed body or query, which is not a service error.
func badRequest(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
