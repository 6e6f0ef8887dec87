// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/retailx/retailx-backend/internal/catalog"
	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/query"
)

type ProductService struct {
	products database.Collection
}

func NewProductService(products database.Collection) *ProductService {
	return &ProductService{products: products}
}

// ListProducts returns active products, optionally restricted to one
// category and excluding one product.
func (s *ProductService) ListProducts(ctx context.Context, category, excludeID string, limit int64) ([]*models.ProductResponse, error) {
	docs, err := s.products.Find(ctx, query.ListFilter(category, excludeID), database.FindOptions{Limit: limit})
	if err != nil {
		return nil, databaseError(err)
	}
	return catalog.ProjectAll(docs), nil
}

// GetProduct looks a product up by id regardless of visibility. A
// malformed id is reported as not found.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.ProductResponse, error) {
	oid, ok := query.ParseID(id)
	if !ok {
		return nil, ErrNotFound
	}

	doc, err := s.products.FindOne(ctx, query.ByID(oid))
	if errors.Is(err, database.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, databaseError(err)
	}
	return catalog.Project(doc), nil
}

func (s *ProductService) SearchProducts(ctx context.Context, q string) ([]*models.ProductResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*models.ProductResponse{}, nil
	}

	docs, err := s.products.Find(ctx, query.SearchFilter(q), database.FindOptions{Limit: query.SearchLimit})
	if err != nil {
		return nil, databaseError(err)
	}
	return catalog.ProjectAll(docs), nil
}

// ChatProducts returns the inventory the assistant may talk about.
func (s *ProductService) ChatProducts(ctx context.Context, message string, genericKeywords []string) ([]*models.ProductResponse, error) {
	filter, limit := query.ChatFilter(message, genericKeywords)
	docs, err := s.products.Find(ctx, filter, database.FindOptions{Limit: limit})
	if err != nil {
		return nil, databaseError(err)
	}
	return catalog.ProjectAll(docs), nil
}

// Inventory lists every product the seller owns, active or not.
func (s *ProductService) Inventory(ctx context.Context, sellerEmail string) ([]models.InventoryItem, error) {
	docs, err := s.products.Find(ctx, query.OwnerFilter(sellerEmail), database.FindOptions{})
	if err != nil {
		return nil, databaseError(err)
	}
	return catalog.ToInventoryItems(docs), nil
}

// CreateProduct stores a new active product owned by sellerEmail and
// returns its id.
func (s *ProductService) CreateProduct(ctx context.Context, sellerEmail string, req *models.CreateProductRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", validationError("name is required")
	}
	if !req.Price.IsSet() {
		return "", validationError("price is required")
	}

	price, discount, err := parsePricing(req.Price, req.Discount)
	if err != nil {
		return "", err
	}

	stock := int64(0)
	if req.Stock.IsSet() {
		if stock, err = parseStock(req.Stock); err != nil {
			return "", err
		}
	}

	doc := bson.M{
		"name":         name,
		"description":  req.Description,
		"category":     orDefault(req.Category, models.DefaultCategory),
		"subCategory":  req.SubCategory,
		"brand":        orDefault(req.Brand, models.DefaultBrand),
		"price":        price.InexactFloat64(),
		"discount":     discount.InexactFloat64(),
		"finalPrice":   catalog.FinalPrice(price, discount).InexactFloat64(),
		"stock":        stock,
		"rating":       0.0,
		"reviewsCount": int64(0),
		"imageURL":     req.ImageURL,
		"images":       nonNilStrings(req.Images),
		"tags":         catalog.NormalizeTags(req.Tags),
		"highlights":   nonNilStrings(req.Highlights),
		"specs":        nonNilMap(req.Specs),
		"aiMetadata":   nonNilMap(req.AIMetadata),
		"seller_email": sellerEmail,
		"isActive":     true,
		"createdAt":    time.Now().UTC(),
	}

	id, err := s.products.InsertOne(ctx, doc)
	if err != nil {
		return "", databaseError(err)
	}
	return id.Hex(), nil
}

// UpdateProduct applies a partial update to a product the seller owns.
// finalPrice is recomputed whenever price or discount is supplied, taking
// the missing half from the stored document.
func (s *ProductService) UpdateProduct(ctx context.Context, sellerEmail, id string, req *models.UpdateProductRequest) error {
	oid, ok := query.ParseID(id)
	if !ok {
		return ErrNotFound
	}
	owned := query.OwnedDocument(sellerEmail, oid)

	set := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return validationError("name cannot be empty")
		}
		set["name"] = name
	}
	setString(set, "description", req.Description)
	setString(set, "category", req.Category)
	setString(set, "subCategory", req.SubCategory)
	setString(set, "brand", req.Brand)
	setString(set, "imageURL", req.ImageURL)
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.Highlights != nil {
		set["highlights"] = req.Highlights
	}
	if req.Specs != nil {
		set["specs"] = req.Specs
	}
	if req.AIMetadata != nil {
		set["aiMetadata"] = req.AIMetadata
	}
	if req.Tags.IsSet() {
		set["tags"] = catalog.NormalizeTags(req.Tags)
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.Stock.IsSet() {
		stock, err := parseStock(req.Stock)
		if err != nil {
			return err
		}
		set["stock"] = stock
	}

	if req.Price.IsSet() || req.Discount.IsSet() {
		price, discount, err := s.resolvePricing(ctx, owned, req.Price, req.Discount)
		if err != nil {
			return err
		}
		set["price"] = price.InexactFloat64()
		set["discount"] = discount.InexactFloat64()
		set["finalPrice"] = catalog.FinalPrice(price, discount).InexactFloat64()
	}

	if len(set) == 0 {
		return ErrNothingToUpdate
	}

	matched, err := s.products.UpdateOne(ctx, owned, set)
	if err != nil {
		return databaseError(err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// resolvePricing fills whichever of price and discount was not supplied
// from the stored document.
func (s *ProductService) resolvePricing(ctx context.Context, owned query.Filter, priceIn, discountIn models.FlexNumber) (decimal.Decimal, decimal.Decimal, error) {
	var price, discount decimal.Decimal
	var err error

	if priceIn.IsSet() {
		if price, err = priceIn.Decimal(); err != nil {
			return price, discount, invalidNumber("price", err)
		}
	}
	if discountIn.IsSet() {
		if discount, err = discountIn.Decimal(); err != nil {
			return price, discount, invalidNumber("discount", err)
		}
	}

	if !priceIn.IsSet() || !discountIn.IsSet() {
		doc, err := s.products.FindOne(ctx, owned)
		if errors.Is(err, database.ErrNoDocuments) {
			return price, discount, ErrNotFound
		}
		if err != nil {
			return price, discount, databaseError(err)
		}
		stored := catalog.Project(doc)
		if !priceIn.IsSet() {
			price = decimal.NewFromFloat(stored.Price)
		}
		if !discountIn.IsSet() {
			discount = decimal.NewFromFloat(stored.Discount)
		}
	}

	if err := catalog.ValidatePricing(price, discount); err != nil {
		return price, discount, invalidNumber("pricing", err)
	}
	return price, discount, nil
}

func (s *ProductService) UpdateStock(ctx context.Context, sellerEmail, id string, stockIn models.FlexNumber) error {
	oid, ok := query.ParseID(id)
	if !ok {
		return ErrNotFound
	}
	if !stockIn.IsSet() {
		return validationError("stock is required")
	}
	stock, err := parseStock(stockIn)
	if err != nil {
		return err
	}

	matched, err := s.products.UpdateOne(ctx, query.OwnedDocument(sellerEmail, oid), bson.M{"stock": stock})
	if err != nil {
		return databaseError(err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, sellerEmail, id string) error {
	oid, ok := query.ParseID(id)
	if !ok {
		return ErrNotFound
	}

	deleted, err := s.products.DeleteOne(ctx, query.OwnedDocument(sellerEmail, oid))
	if err != nil {
		return databaseError(err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProductStatus shows or hides any product. Used by admin moderation.
func (s *ProductService) SetProductStatus(ctx context.Context, id string, active bool) error {
	oid, ok := query.ParseID(id)
	if !ok {
		return ErrNotFound
	}

	matched, err := s.products.UpdateOne(ctx, query.ByID(oid), bson.M{"isActive": active})
	if err != nil {
		return databaseError(err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func parsePricing(priceIn, discountIn models.FlexNumber) (decimal.Decimal, decimal.Decimal, error) {
	price, err := priceIn.Decimal()
	if err != nil {
		return price, decimal.Zero, invalidNumber("price", err)
	}

	discount := decimal.Zero
	if discountIn.IsSet() {
		if discount, err = discountIn.Decimal(); err != nil {
			return price, discount, invalidNumber("discount", err)
		}
	}

	if err := catalog.ValidatePricing(price, discount); err != nil {
		return price, discount, invalidNumber("pricing", err)
	}
	return price, discount, nil
}

var maxStock = decimal.NewFromInt(math.MaxInt64)

func parseStock(n models.FlexNumber) (int64, error) {
	stock, err := n.Decimal()
	if err != nil {
		return 0, invalidNumber("stock", err)
	}
	if stock.IsNegative() || !stock.IsInteger() || stock.GreaterThan(maxStock) {
		return 0, invalidNumber("stock", errors.New("must be a non-negative integer"))
	}
	return stock.IntPart(), nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func setString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func nonNilStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func nonNilMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
