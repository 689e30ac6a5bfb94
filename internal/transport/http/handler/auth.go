package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skinvault/internal/app"
	"skinvault/internal/identity"
	"skinvault/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	provider    identity.Provider
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService, provider identity.Provider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		provider:    provider,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "username and password are required")
		return
	}

	user, err := h.authService.Register(app.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "username and password are required")
		case errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusConflict, response.CodeUsernameExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register failed")
		}
		return
	}

	response.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "invalid username or password")
		return
	}

	user, err := h.authService.Login(app.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	token, err := h.provider.Issue(c, user)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "issue credential failed")
		return
	}

	data := gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	}
	if token != "" {
		data["token"] = token
	}
	response.OK(c, data)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.provider.Invalidate(c); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
		return
	}
	response.OK(c, nil)
}
