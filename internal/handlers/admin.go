// internal/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

type AdminHandler struct {
	authService    *services.AuthService
	adminService   *services.AdminService
	productService *services.ProductService
}

func NewAdminHandler(authService *services.AuthService, adminService *services.AdminService, productService *services.ProductService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		adminService:   adminService,
		productService: productService,
	}
}

var adminAuthErrors = errorMessages{
	services.ErrValidation:   i18n.KeyAdminFieldsRequired,
	services.ErrWeakPassword: i18n.KeyAdminWeakPassword,
}

// POST /api/admin/register
func (h *AdminHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.RegisterAdmin(c.Request.Context(), &req)
	if errors.Is(err, services.ErrAlreadyExists) {
		// existing admin clients expect 400 here, not 409
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAdminExists), nil)
		return
	}
	if err != nil {
		respondError(c, err, adminAuthErrors)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyAdminRegistered), gin.H{
		"token": authResponse.Token,
	})
}

// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, errorMessages{services.ErrValidation: i18n.KeyAuthCredentialsMissing})
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAdminWelcome), gin.H{
		"token": authResponse.Token,
		"admin": gin.H{"email": authResponse.Email},
	})
}

// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PATCH /api/admin/products/:id/status
func (h *AdminHandler) UpdateProductStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, "", validationErrors)
		return
	}

	if err := h.productService.SetProductStatus(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err, productErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAdminStatusUpdated), gin.H{
		"isActive": *req.IsActive,
	})
}

// GET /api/admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	logs, err := h.adminService.ListAuditLogs(c.Request.Context(), utils.GetLimitParam(c), utils.GetSkipParam(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SetCountHeader(c, len(logs))
	c.JSON(http.StatusOK, logs)
}
