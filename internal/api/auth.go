package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// CookieOptions controls the session cookie set on login
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler serves registration, login and logout
type AuthHandler struct {
	auth   service.IAuthService
	cookie CookieOptions
}

func NewAuthHandler(auth service.IAuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		cookie: cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", requireAuth, h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: email, password (min 8) and username are required")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *model.User) {
	token, err := h.auth.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
	c.JSON(status, types.AuthResponse{Token: token, User: user})
}
