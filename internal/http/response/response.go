package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// AbortError writes the envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, code string, err error) {
	RespondError(c, status, code, err)
	c.Abort()
}

// RespondErr maps err through apierr. Internal failures get a generic
// message so driver errors do not leak to clients.
func RespondErr(c *gin.Context, err error, fallbackCode string) {
	ae := apierr.From(err, fallbackCode)
	_ = c.Error(err)
	if ae.Status >= http.StatusInternalServerError {
		RespondError(c, ae.Status, ae.Code, nil)
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
