package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	recipemod "github.com/yungbote/foodgram-backend/internal/modules/recipes"
)

type RecipeHandler struct {
	recipes recipemod.Usecases
}

func NewRecipeHandler(uc recipemod.Usecases) *RecipeHandler {
	return &RecipeHandler{recipes: uc}
}

type recipeRequest struct {
	Name        *string                      `json:"name"`
	Image       *string                      `json:"image"`
	Text        *string                      `json:"text"`
	CookingTime *int                         `json:"cooking_time"`
	Tags        []uuid.UUID                  `json:"tags"`
	Ingredients []recipemod.IngredientAmount `json:"ingredients"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// GET /api/recipes?author=&tags=&is_favorited=&is_in_shopping_cart=
func (h *RecipeHandler) List(c *gin.Context) {
	in := recipemod.ListRecipesInput{
		ViewerID:  currentUserID(c),
		Favorited: queryFlag(c, "is_favorited"),
		InCart:    queryFlag(c, "is_in_shopping_cart"),
	}
	if raw := strings.TrimSpace(c.Query("author")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_author", fmt.Errorf("author must be a uuid"))
			return
		}
		in.AuthorID = id
	}
	for _, slug := range c.QueryArray("tags") {
		if slug = strings.TrimSpace(slug); slug != "" {
			in.TagSlugs = append(in.TagSlugs, slug)
		}
	}
	out, err := h.recipes.ListRecipes(c.Request.Context(), in)
	if err != nil {
		response.RespondErr(c, err, "list_recipes_failed")
		return
	}
	response.RespondOK(c, out)
}

// GET /api/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.recipes.GetRecipe(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		response.RespondErr(c, err, "load_recipe_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.recipes.CreateRecipe(c.Request.Context(), recipemod.CreateRecipeInput{
		ActorID:     currentUserID(c),
		Name:        deref(req.Name),
		ImageRef:    deref(req.Image),
		Text:        deref(req.Text),
		CookingTime: deref(req.CookingTime),
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		response.RespondErr(c, err, "create_recipe_failed")
		return
	}
	response.RespondCreated(c, out)
}

// PATCH /api/recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.recipes.UpdateRecipe(c.Request.Context(), recipemod.UpdateRecipeInput{
		ActorID:     currentUserID(c),
		RecipeID:    id,
		Name:        req.Name,
		ImageRef:    req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		response.RespondErr(c, err, "update_recipe_failed")
		return
	}
	response.RespondOK(c, out)
}

// DELETE /api/recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), currentUserID(c), id); err != nil {
		response.RespondErr(c, err, "delete_recipe_failed")
		return
	}
	response.RespondNoContent(c)
}

// AddMembership serves POST /api/recipes/:id/shopping_cart and /favorite.
func (h *RecipeHandler) AddMembership(kind domainagg.MembershipKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		out, err := h.recipes.AddMembership(c.Request.Context(), kind, currentUserID(c), id)
		if err != nil {
			response.RespondErr(c, err, "add_"+string(kind)+"_failed")
			return
		}
		response.RespondCreated(c, out)
	}
}

// RemoveMembership serves DELETE /api/recipes/:id/shopping_cart and /favorite.
func (h *RecipeHandler) RemoveMembership(kind domainagg.MembershipKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := h.recipes.RemoveMembership(c.Request.Context(), kind, currentUserID(c), id); err != nil {
			response.RespondErr(c, err, "remove_"+string(kind)+"_failed")
			return
		}
		response.RespondNoContent(c)
	}
}
