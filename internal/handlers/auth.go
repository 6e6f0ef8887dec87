// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

var userAuthErrors = errorMessages{
	services.ErrValidation: i18n.KeyAuthCredentialsMissing,
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, userAuthErrors)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyAuthRegisterSuccess), gin.H{
		"token": authResponse.Token,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.LoginUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, userAuthErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAuthLoginSuccess), gin.H{
		"token":        authResponse.Token,
		"access_token": authResponse.Token,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	claims, _ := utils.GetClaimsFromContext(c)
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err, nil)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAuthLogoutSuccess), nil)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	email, ok := principal(c)
	if !ok {
		return
	}
	role, _ := utils.GetRoleFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"email": email,
		"role":  role,
	})
}
