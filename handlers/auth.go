package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterpad/rosterpad/internal/auth"
	"github.com/rosterpad/rosterpad/internal/config"
)

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg     *config.Config
	authSvc *auth.Service
}

func NewAuthHandler(cfg *config.Config, a *auth.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: a}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterUser)
	a.POST("/login", h.Login)
	a.POST("/refresh", h.Refresh)
	a.POST("/logout", h.Logout)
}

// RegisterUser creates an admin account
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.authSvc.Register(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "user registered successfully", "id": u.ID})
}

// Login checks credentials and issues access + refresh tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, refresh, u, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	// Return camelCase response to match frontend `LoginResponse` shape
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         gin.H{"id": u.ID, "username": u.Username},
		"expiresIn":    int(h.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}

// Refresh accepts a refresh token and returns a new access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	access, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "expires_in": int(h.cfg.JWT.AccessTokenTTL.Seconds())})
}

// Logout invalidates the refresh token and (optionally) blacklists the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// If the client supplied an Authorization Bearer token, blacklist it too
	var access string
	if auth := c.GetHeader("Authorization"); auth != "" {
		fmt.Sscanf(auth, "Bearer %s", &access)
	}
	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken, access); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
