// internal/models/product.go
package models

import (
	"time"
)

// ProductResponse is the externally visible product. Field names are
// shared with the storefront and seller dashboard and must not change.
type ProductResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	SubCategory  string                 `json:"subCategory"`
	Brand        string                 `json:"brand"`
	Price        float64                `json:"price"`
	Discount     float64                `json:"discount"`
	FinalPrice   float64                `json:"finalPrice"`
	Stock        int64                  `json:"stock"`
	Rating       float64                `json:"rating"`
	ReviewsCount int64                  `json:"reviewsCount"`
	ImageURL     string                 `json:"imageURL"`
	Images       []string               `json:"images"`
	Tags         []string               `json:"tags"`
	IsActive     bool                   `json:"isActive"`
	Highlights   []string               `json:"highlights"`
	Specs        map[string]interface{} `json:"specs"`
	AIMetadata   map[string]interface{} `json:"aiMetadata"`
	SellerEmail  string                 `json:"-"`
	CreatedAt    *time.Time             `json:"createdAt,omitempty"`
}

// InventoryItem is a seller's view of their own product. The dashboard
// addresses rows by "_id". The owner email is only exposed here, never on
// the public ProductResponse.
type InventoryItem struct {
	*ProductResponse
	LegacyID string `json:"_id"`
	Owner    string `json:"seller_email"`
}

type CreateProductRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	SubCategory string                 `json:"subCategory"`
	Brand       string                 `json:"brand"`
	Price       FlexNumber             `json:"price"`
	Discount    FlexNumber             `json:"discount"`
	Stock       FlexNumber             `json:"stock"`
	ImageURL    string                 `json:"imageURL"`
	Images      []string               `json:"images"`
	Tags        TagsInput              `json:"tags"`
	Highlights  []string               `json:"highlights"`
	Specs       map[string]interface{} `json:"specs"`
	AIMetadata  map[string]interface{} `json:"aiMetadata"`
}

// UpdateProductRequest carries a partial update; nil and unset fields are
// left untouched. Identity, owner, derived price and engagement counters
// are not accepted.
type UpdateProductRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	SubCategory *string                `json:"subCategory"`
	Brand       *string                `json:"brand"`
	Price       FlexNumber             `json:"price"`
	Discount    FlexNumber             `json:"discount"`
	Stock       FlexNumber             `json:"stock"`
	ImageURL    *string                `json:"imageURL"`
	Images      []string               `json:"images"`
	Tags        TagsInput              `json:"tags"`
	Highlights  []string               `json:"highlights"`
	Specs       map[string]interface{} `json:"specs"`
	AIMetadata  map[string]interface{} `json:"aiMetadata"`
	IsActive    *bool                  `json:"isActive"`
}

type UpdateStockRequest struct {
	Stock FlexNumber `json:"stock"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
