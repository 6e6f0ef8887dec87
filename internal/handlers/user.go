// internal/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /api/preferences
func (h *UserHandler) SavePreferences(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	var req services.PreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.SavePreferences(c.Request.Context(), email, &req); err != nil {
		respondError(c, err, errorMessages{services.ErrValidation: i18n.KeyPreferencesTooFew})
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyPreferencesSaved), nil)
}
