package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/users
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := ah.authService.RegisterUser(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.RespondErr(c, err, "registration_failed")
		return
	}
	response.RespondCreated(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// POST /api/auth/token/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondErr(c, err, "login_failed")
		return
	}
	response.RespondOK(c, gin.H{
		"auth_token": token,
		"expires_in": int(ah.authService.GetAccessTTL().Seconds()),
	})
}

// POST /api/users/set_password
func (ah *AuthHandler) SetPassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ah.authService.SetPassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		response.RespondErr(c, err, "set_password_failed")
		return
	}
	response.RespondNoContent(c)
}
