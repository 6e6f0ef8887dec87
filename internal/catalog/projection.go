// internal/catalog/projection.go
package catalog

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retailx/retailx-backend/internal/models"
)

// Project maps a stored product document to its external form, filling
// defaults for absent fields. A nil document projects to nil.
func Project(doc bson.M) *models.ProductResponse {
	if doc == nil {
		return nil
	}

	p := &models.ProductResponse{
		ID:           idString(doc["_id"]),
		Name:         stringField(doc, "name", ""),
		Description:  stringField(doc, "description", ""),
		Category:     stringField(doc, "category", models.DefaultCategory),
		SubCategory:  stringField(doc, "subCategory", ""),
		Brand:        stringField(doc, "brand", models.DefaultBrand),
		Price:        floatField(doc, "price"),
		Discount:     floatField(doc, "discount"),
		Stock:        intField(doc, "stock"),
		Rating:       floatField(doc, "rating"),
		ReviewsCount: intField(doc, "reviewsCount"),
		Images:       stringList(doc["images"]),
		Tags:         stringList(doc["tags"]),
		IsActive:     boolField(doc, "isActive", true),
		Highlights:   stringList(doc["highlights"]),
		Specs:        mapField(doc["specs"]),
		AIMetadata:   mapField(doc["aiMetadata"]),
		SellerEmail:  stringField(doc, "seller_email", ""),
	}

	if fp, ok := toFloat(doc["finalPrice"]); ok {
		p.FinalPrice = fp
	} else {
		p.FinalPrice = FinalPrice(decimal.NewFromFloat(p.Price), decimal.NewFromFloat(p.Discount)).InexactFloat64()
	}

	p.ImageURL = stringField(doc, "imageURL", "")
	if p.ImageURL == "" && len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}

	if t, ok := toTime(doc["createdAt"]); ok {
		p.CreatedAt = &t
	}

	return p
}

// ProjectAll projects every document, preserving order.
func ProjectAll(docs []bson.M) []*models.ProductResponse {
	out := make([]*models.ProductResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Project(doc))
	}
	return out
}

// ToDocument is the stored-form equivalent of a projected product.
func ToDocument(p *models.ProductResponse) bson.M {
	if p == nil {
		return nil
	}

	doc := bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"category":     p.Category,
		"subCategory":  p.SubCategory,
		"brand":        p.Brand,
		"price":        p.Price,
		"discount":     p.Discount,
		"finalPrice":   p.FinalPrice,
		"stock":        p.Stock,
		"rating":       p.Rating,
		"reviewsCount": p.ReviewsCount,
		"imageURL":     p.ImageURL,
		"images":       p.Images,
		"tags":         p.Tags,
		"isActive":     p.IsActive,
		"highlights":   p.Highlights,
		"specs":        p.Specs,
		"aiMetadata":   p.AIMetadata,
	}
	if id, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc["_id"] = id
	} else if p.ID != "" {
		doc["_id"] = p.ID
	}
	if p.SellerEmail != "" {
		doc["seller_email"] = p.SellerEmail
	}
	if p.CreatedAt != nil {
		doc["createdAt"] = *p.CreatedAt
	}
	return doc
}

// ToInventoryItems projects a seller's own documents for the dashboard.
func ToInventoryItems(docs []bson.M) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(docs))
	for _, doc := range docs {
		p := Project(doc)
		items = append(items, models.InventoryItem{ProductResponse: p, LegacyID: p.ID, Owner: p.SellerEmail})
	}
	return items
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	}
	return fmt.Sprint(v)
}

func stringField(doc bson.M, key, def string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return def
}

func boolField(doc bson.M, key string, def bool) bool {
	if b, ok := doc[key].(bool); ok {
		return b
	}
	return def
}

func floatField(doc bson.M, key string) float64 {
	f, _ := toFloat(doc[key])
	return f
}

func intField(doc bson.M, key string) int64 {
	f, ok := toFloat(doc[key])
	if !ok {
		return 0
	}
	return int64(math.Trunc(f))
}

// toFloat accepts every numeric representation the driver or a JSON
// decoder may hand back.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case decimal.Decimal:
		return n.InexactFloat64(), true
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	}
	return time.Time{}, false
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		if list == nil {
			return []string{}
		}
		return list
	case primitive.A:
		return stringsOf(list)
	case []interface{}:
		return stringsOf(list)
	}
	return []string{}
}

func stringsOf(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapField(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case bson.M:
		if m == nil {
			return map[string]interface{}{}
		}
		return m
	case map[string]interface{}:
		if m == nil {
			return map[string]interface{}{}
		}
		return m
	case models.Document:
		if m == nil {
			return map[string]interface{}{}
		}
		return m
	case primitive.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out
	}
	return map[string]interface{}{}
}
