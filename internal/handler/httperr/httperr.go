package httperr

import (
	"github.com/gin-gonic/gin"
)

// Machine-readable error codes returned alongside the message.
const (
	CodeDuplicateIdempotencyKey = "DUPLICATE_IDEMPOTENCY_KEY"
)

type Response struct {
	Status int    `json:"-"`
	Code   string `json:"code,omitempty"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records the original error on the context for logging and
// writes the public response body.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, Response{Status: status}, err, msg, detail)
}

// AbortWithCode is AbortWithError plus a machine-readable code for clients
// that branch on the failure kind.
func AbortWithCode(c *gin.Context, status int, code string, err error, msg string, detail any) {
	abort(c, Response{Status: status, Code: code}, err, msg, detail)
}

func abort(c *gin.Context, resp Response, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
