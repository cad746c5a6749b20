package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// WriteBusiness maps an engine outcome onto an HTTP status. Unknown errors
// never leak their text to the client.
func WriteBusiness(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, CodeStoreUnavailable, "unexpected error")
		return
	}

	switch be.Code {
	case CodeValidation, CodeInvalidSchedule:
		BadRequest(c, be.Code, be.Message)
	case CodeSlotConflict:
		Conflict(c, be.Code, be.Message)
	case CodeCancellationWindow:
		Write(c, http.StatusUnprocessableEntity, be.Code, be.Message)
	case CodeNotAuthenticated:
		Unauthorized(c, be.Code, be.Message)
	case CodeNotFound, CodeNoData:
		NotFound(c, be.Code, be.Message)
	default:
		Internal(c, be.Code, be.Message)
	}
}
