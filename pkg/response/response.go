package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelhouse/rental/pkg/apperr"
)

type APIResponseCode int

const (
	APIResponseCodeOK         APIResponseCode = 0
	APIResponseCodeBadRequest APIResponseCode = 40000
	APIResponseCodeNotFound   APIResponseCode = 40400
	APIResponseCodeError      APIResponseCode = 50000
)

// APIResponse is the generic envelope used by all HTTP endpoints.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data,omitempty"`
}

// OK writes a successful response with the given status (200 or 201).
func OK[T any](c *gin.Context, status int, data T) {
	c.JSON(status, &APIResponse[T]{Code: APIResponseCodeOK, Message: "ok", Data: data})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error classifies err per the apperr taxonomy and writes the mapped
// status. Internal error detail never reaches the client.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, &APIResponse[any]{Code: codeFor(status), Message: apperr.Message(err)})
}

// BadRequest writes a 400 with a literal, user-safe message. Used by the
// validation boundary where no apperr value exists yet.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, &APIResponse[any]{Code: APIResponseCodeBadRequest, Message: msg})
}

func codeFor(status int) APIResponseCode {
	switch status {
	case http.StatusNotFound:
		return APIResponseCodeNotFound
	case http.StatusBadRequest:
		return APIResponseCodeBadRequest
	default:
		return APIResponseCodeError
	}
}
