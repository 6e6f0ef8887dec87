// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

// ProductHandler serves the public storefront reads.
type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(
		c.Request.Context(),
		c.Query("category"),
		c.Query("exclude"),
		utils.GetLimitParam(c),
	)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SetCountHeader(c, len(products))
	c.JSON(http.StatusOK, products)
}

// GET /api/product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, productErrors)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /api/search/
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	utils.SetCountHeader(c, len(products))
	c.JSON(http.StatusOK, products)
}
