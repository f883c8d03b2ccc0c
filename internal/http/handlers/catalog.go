package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	recipemod "github.com/yungbote/foodgram-backend/internal/modules/recipes"
)

type CatalogHandler struct {
	recipes recipemod.Usecases
}

func NewCatalogHandler(uc recipemod.Usecases) *CatalogHandler {
	return &CatalogHandler{recipes: uc}
}

// GET /api/ingredients?name=
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	out, err := h.recipes.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.RespondErr(c, err, "list_ingredients_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/ingredients/:id
func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.recipes.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "load_ingredient_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/tags
func (h *CatalogHandler) ListTags(c *gin.Context) {
	out, err := h.recipes.ListTags(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err, "list_tags_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/tags/:id
func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.recipes.GetTag(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err, "load_tag_failed")
		return
	}
	response.RespondOK(c, out)
}
