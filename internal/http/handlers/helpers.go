package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

func currentUserID(c *gin.Context) uuid.UUID {
	return ctxutil.UserID(c.Request.Context())
}

// pathID parses a uuid path parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, fmt.Errorf("%s must be a uuid", name))
		return uuid.Nil, false
	}
	return id, true
}

func queryFlag(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// queryInt returns def for a missing value and false (after writing a 400) for
// a malformed one.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_"+name, fmt.Errorf("%s must be a non-negative integer", name))
		return 0, false
	}
	return n, true
}
