package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/modules/social"
)

const defaultUserPageSize = 6

type UserHandler struct {
	social social.Usecases
}

func NewUserHandler(uc social.Usecases) *UserHandler {
	return &UserHandler{social: uc}
}

// GET /api/users?limit=&offset=
func (uh *UserHandler) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit", defaultUserPageSize)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	page, err := uh.social.ListUsers(c.Request.Context(), currentUserID(c), limit, offset)
	if err != nil {
		response.RespondErr(c, err, "list_users_failed")
		return
	}
	response.RespondOK(c, page)
}

// GET /api/users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := uh.social.GetUser(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		response.RespondErr(c, err, "load_user_failed")
		return
	}
	response.RespondOK(c, user)
}

// GET /api/users/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.social.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondErr(c, err, "load_user_failed")
		return
	}
	response.RespondOK(c, me)
}

// GET /api/users/subscriptions?recipes_limit=
func (uh *UserHandler) Subscriptions(c *gin.Context) {
	limit, ok := queryInt(c, "recipes_limit", 0)
	if !ok {
		return
	}
	subs, err := uh.social.ListSubscriptions(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		response.RespondErr(c, err, "list_subscriptions_failed")
		return
	}
	response.RespondOK(c, subs)
}

// POST /api/users/:id/subscribe?recipes_limit=
func (uh *UserHandler) Subscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "recipes_limit", 0)
	if !ok {
		return
	}
	view, err := uh.social.Subscribe(c.Request.Context(), currentUserID(c), id, limit)
	if err != nil {
		response.RespondErr(c, err, "subscribe_failed")
		return
	}
	response.RespondCreated(c, view)
}

// DELETE /api/users/:id/subscribe
func (uh *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uh.social.Unsubscribe(c.Request.Context(), currentUserID(c), id); err != nil {
		response.RespondErr(c, err, "unsubscribe_failed")
		return
	}
	response.RespondNoContent(c)
}
