// internal/handlers/seller.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

// SellerHandler serves seller accounts and their own catalogue.
type SellerHandler struct {
	authService    *services.AuthService
	productService *services.ProductService
	userService    *services.UserService
	storageService *services.StorageService
}

func NewSellerHandler(
	authService *services.AuthService,
	productService *services.ProductService,
	userService *services.UserService,
	storageService *services.StorageService,
) *SellerHandler {
	return &SellerHandler{
		authService:    authService,
		productService: productService,
		userService:    userService,
		storageService: storageService,
	}
}

var (
	sellerAuthErrors = errorMessages{
		services.ErrValidation:    i18n.KeyValidationFields,
		services.ErrAlreadyExists: i18n.KeySellerExists,
	}
	productErrors = errorMessages{
		services.ErrNotFound: i18n.KeyProductNotFound,
	}
	profileErrors = errorMessages{
		services.ErrNotFound: i18n.KeySellerNotFound,
	}
)

// POST /api/seller/register
func (h *SellerHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterSellerRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.RegisterSeller(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, sellerAuthErrors)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeySellerRegistered), gin.H{
		"token": authResponse.Token,
	})
}

// POST /api/seller/login
func (h *SellerHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.LoginSeller(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, errorMessages{services.ErrValidation: i18n.KeyAuthCredentialsMissing})
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyAuthLoginSuccess), gin.H{
		"token": authResponse.Token,
		"seller": gin.H{
			"email":     authResponse.Email,
			"storeName": authResponse.StoreName,
		},
	})
}

// GET /api/seller/inventory
func (h *SellerHandler) Inventory(c *gin.Context) {
	email, ok := principal(c)
	if !ok {
		return
	}

	items, err := h.productService.Inventory(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SetCountHeader(c, len(items))
	c.JSON(http.StatusOK, items)
}

// POST /api/seller/product/add
func (h *SellerHandler) AddProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	var req models.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.productService.CreateProduct(c.Request.Context(), email, &req)
	if err != nil {
		respondError(c, err, productErrors)
		return
	}

	utils.MessageResponse(c, http.StatusCreated, i18n.T(lang, i18n.KeyProductCreated), gin.H{
		"id": id,
	})
}

// PUT /api/seller/product/update/:id
func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.productService.UpdateProduct(c.Request.Context(), email, c.Param("id"), &req); err != nil {
		respondError(c, err, productErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyProductUpdated), nil)
}

// DELETE /api/seller/product/delete/:id
func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), email, c.Param("id")); err != nil {
		respondError(c, err, productErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyProductDeleted), nil)
}

// PATCH /api/seller/product/update-stock/:id
func (h *SellerHandler) UpdateStock(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	var req models.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.productService.UpdateStock(c.Request.Context(), email, c.Param("id"), req.Stock); err != nil {
		respondError(c, err, productErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeyProductStockUpdated), nil)
}

// POST /api/seller/product/upload-image
func (h *SellerHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageMissing), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductImageMissing), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(c.Request.Context(), email, file)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       result.URL,
		"key":       result.Key,
		"size":      result.Size,
		"mime_type": result.MimeType,
	})
}

// GET /api/seller/profile
func (h *SellerHandler) GetProfile(c *gin.Context) {
	email, ok := principal(c)
	if !ok {
		return
	}

	seller, err := h.userService.GetSellerProfile(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, profileErrors)
		return
	}

	c.JSON(http.StatusOK, sellerProfile(seller))
}

// PUT /api/seller/profile/update
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	email, ok := principal(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if !bindJSON(c, &fields) {
		return
	}

	applied, err := h.userService.UpdateSellerProfile(c.Request.Context(), email, fields)
	if err != nil {
		respondError(c, err, profileErrors)
		return
	}

	utils.MessageResponse(c, http.StatusOK, i18n.T(lang, i18n.KeySellerProfileUpdated), gin.H{
		"updated_data": applied,
	})
}

// sellerProfile is the dashboard view of a seller: everything but the
// password hash, with the identifier under both "id" and "_id".
func sellerProfile(s *models.Seller) gin.H {
	id := s.ID.Hex()
	return gin.H{
		"_id":             id,
		"id":              id,
		"email":           s.Email,
		"role":            s.Role,
		"storeName":       s.StoreName,
		"registrationId":  s.RegistrationID,
		"businessAddress": s.BusinessAddress,
		"contactNumber":   s.ContactNumber,
		"gstin":           s.GSTIN,
		"businessType":    s.BusinessType,
		"createdAt":       s.CreatedAt,
	}
}
