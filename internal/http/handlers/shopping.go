package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/modules/shopping"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

type ShoppingHandler struct {
	engine *shopping.Engine
}

func NewShoppingHandler(engine *shopping.Engine) *ShoppingHandler {
	return &ShoppingHandler{engine: engine}
}

func callerFrom(c *gin.Context) shopping.Caller {
	ctx := c.Request.Context()
	return shopping.Caller{UserID: ctxutil.UserID(ctx), RequestID: ctxutil.RequestID(ctx)}
}

// GET /api/recipes/shopping_list
func (h *ShoppingHandler) List(c *gin.Context) {
	res, err := h.engine.Aggregate(c.Request.Context(), callerFrom(c))
	if err != nil {
		response.RespondErr(c, err, "shopping_list_failed")
		return
	}
	response.RespondOK(c, res)
}

// GET /api/recipes/download_shopping_cart?format=
func (h *ShoppingHandler) Download(c *gin.Context) {
	doc, err := h.engine.Download(c.Request.Context(), callerFrom(c), c.Query("format"))
	if err != nil {
		response.RespondErr(c, err, "download_failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
