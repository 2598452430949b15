// Package apierrors renders transcoder-layer failures as the service's
// single HTTP error wire format.
package apierrors

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

// ServiceError is an HTTP-facing error: a status code and one or more
// human-readable messages.
type ServiceError struct {
	Status   int
	Messages []string
	Cause    error
}

func (e *ServiceError) Error() string {
	if len(e.Messages) == 0 {
		return http.StatusText(e.Status)
	}
	return e.Messages[0]
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func New(status int, message string) *ServiceError {
	return &ServiceError{Status: status, Messages: []string{message}}
}

func Wrap(status int, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Messages: []string{message}, Cause: cause}
}

func BadRequest(message string) *ServiceError {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *ServiceError {
	return New(http.StatusNotFound, message)
}

func Internal(message string, cause error) *ServiceError {
	return Wrap(http.StatusInternalServerError, message, cause)
}

// ToGinResponse writes the error as {"status": "<code>", "errors":
// ["<message>", ...]}, the wire format every failing endpoint in this
// service uses.
func (e *ServiceError) ToGinResponse(c *gin.Context, logger hclog.Logger) {
	if logger != nil {
		args := []interface{}{"status", e.Status, "path", c.Request.URL.Path, "method", c.Request.Method}
		if e.Cause != nil {
			args = append(args, "cause", e.Cause.Error())
		}
		logger.Warn(e.Error(), args...)
	}
	c.JSON(e.Status, gin.H{
		"status": strconv.Itoa(e.Status),
		"errors": e.Messages,
	})
}

// Respond translates err into a ServiceError (if it isn't one already) and
// writes it. Unrecognized errors default to 500.
func Respond(c *gin.Context, logger hclog.Logger, err error) {
	svcErr, ok := err.(*ServiceError)
	if !ok {
		svcErr = Internal(err.Error(), err)
	}
	svcErr.ToGinResponse(c, logger)
}
