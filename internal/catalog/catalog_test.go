package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/retailx/retailx-backend/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		price, discount, want string
	}{
		{"100", "10", "90"},
		{"100", "0", "100"},
		{"100", "100", "0"},
		{"0", "50", "0"},
		{"499.99", "15", "424.9915"},
		{"0.1", "33.3", "0.0667"},
	}
	for _, tc := range cases {
		got := FinalPrice(dec(tc.price), dec(tc.discount))
		assert.Truef(t, dec(tc.want).Equal(got), "FinalPrice(%s, %s) = %s, want %s", tc.price, tc.discount, got, tc.want)
	}
}

func TestFinalPrice_MatchesDefinition(t *testing.T) {
	for p := 0; p <= 1000; p += 37 {
		for d := 0; d <= 100; d += 5 {
			price, discount := decimal.NewFromInt(int64(p)), decimal.NewFromInt(int64(d))
			want := price.Sub(price.Mul(discount).Div(decimal.NewFromInt(100)))
			assert.True(t, want.Equal(FinalPrice(price, discount)), "p=%d d=%d", p, d)
		}
		assert.True(t, decimal.NewFromInt(int64(p)).Equal(FinalPrice(decimal.NewFromInt(int64(p)), decimal.Zero)))
		assert.True(t, FinalPrice(decimal.NewFromInt(int64(p)), decimal.NewFromInt(100)).IsZero())
	}
}

func TestValidatePricing(t *testing.T) {
	assert.NoError(t, ValidatePricing(dec("0"), dec("0")))
	assert.NoError(t, ValidatePricing(dec("10"), dec("100")))
	assert.ErrorIs(t, ValidatePricing(dec("-1"), dec("0")), ErrNegativePrice)
	assert.ErrorIs(t, ValidatePricing(dec("1"), dec("-0.5")), ErrDiscountOutOfRange)
	assert.ErrorIs(t, ValidatePricing(dec("1"), dec("100.01")), ErrDiscountOutOfRange)
	assert.ErrorIs(t, ValidatePricing(dec("1e400"), dec("0")), ErrPriceTooLarge)
	assert.ErrorIs(t, ValidatePricing(dec("1e400"), dec("50")), ErrPriceTooLarge)
	assert.NoError(t, ValidatePricing(dec("1e300"), dec("10")))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, NormalizeTags(models.TagsFromString("a, b ,,c")))
	assert.Equal(t, []string{"shampoo"}, NormalizeTags(models.TagsFromString("shampoo")))
	assert.Equal(t, []string{"x", "x"}, NormalizeTags(models.TagsFromString("x,x")))
	assert.Equal(t, []string{}, NormalizeTags(models.TagsFromString(" , ")))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags(models.TagsFromList([]string{"a", "b"})))
	// lists pass through untouched
	assert.Equal(t, []string{" a ", ""}, NormalizeTags(models.TagsFromList([]string{" a ", ""})))
	assert.Equal(t, []string{}, NormalizeTags(models.TagsInput{}))
	assert.Equal(t, []string{}, NormalizeTags(models.TagsFromList(nil)))
}

func TestNormalizeTags_FromJSON(t *testing.T) {
	cases := map[string][]string{
		`{"tags": "organic, hair"}`: {"organic", "hair"},
		`{"tags": ["organic"]}`:     {"organic"},
		`{"tags": null}`:            {},
		`{}`:                        {},
		`{"tags": 42}`:              {},
		`{"tags": {"a": 1}}`:        {},
		`{"tags": ["a", 1]}`:        {"a"},
		`{"tags": [1, {"b": 2}]}`:   {},
	}
	for body, want := range cases {
		var req models.CreateProductRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, NormalizeTags(req.Tags), body)
	}
}

func TestProject_Nil(t *testing.T) {
	assert.Nil(t, Project(nil))
}

func TestProject_Defaults(t *testing.T) {
	id := primitive.NewObjectID()

	p := Project(bson.M{"_id": id, "name": "Lotion", "price": int32(100)})

	require.NotNil(t, p)
	assert.Equal(t, id.Hex(), p.ID)
	assert.Equal(t, "Lotion", p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, models.DefaultCategory, p.Category)
	assert.Equal(t, "", p.SubCategory)
	assert.Equal(t, models.DefaultBrand, p.Brand)
	assert.Equal(t, 100.0, p.Price)
	assert.Equal(t, 0.0, p.Discount)
	assert.Equal(t, 100.0, p.FinalPrice)
	assert.EqualValues(t, 0, p.Stock)
	assert.Equal(t, 0.0, p.Rating)
	assert.EqualValues(t, 0, p.ReviewsCount)
	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, []string{}, p.Highlights)
	assert.Equal(t, []string{}, p.Images)
	assert.Equal(t, map[string]interface{}{}, p.Specs)
	assert.Equal(t, map[string]interface{}{}, p.AIMetadata)
	assert.True(t, p.IsActive)
	assert.Equal(t, "", p.ImageURL)
	assert.Nil(t, p.CreatedAt)
}

func TestProject_DriverTypes(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	p := Project(bson.M{
		"_id":          primitive.NewObjectID(),
		"price":        primitive.NewDecimal128(0, 250),
		"discount":     int64(20),
		"finalPrice":   200.0,
		"stock":        int32(7),
		"reviewsCount": 3.0,
		"tags":         primitive.A{"organic", 5, "vegan"},
		"aiMetadata":   primitive.D{{Key: "style", Value: "minimal"}},
		"specs":        bson.M{"volume": "200ml"},
		"isActive":     false,
		"createdAt":    primitive.NewDateTimeFromTime(created),
	})

	assert.Equal(t, 250.0, p.Price)
	assert.Equal(t, 20.0, p.Discount)
	assert.Equal(t, 200.0, p.FinalPrice)
	assert.EqualValues(t, 7, p.Stock)
	assert.EqualValues(t, 3, p.ReviewsCount)
	assert.Equal(t, []string{"organic", "vegan"}, p.Tags)
	assert.Equal(t, "minimal", p.AIMetadata["style"])
	assert.Equal(t, "200ml", p.Specs["volume"])
	assert.False(t, p.IsActive)
	require.NotNil(t, p.CreatedAt)
	assert.True(t, created.Equal(*p.CreatedAt))
}

func TestProject_ImageFallback(t *testing.T) {
	p := Project(bson.M{"images": []string{"a.png", "b.png"}})
	assert.Equal(t, "a.png", p.ImageURL)

	p = Project(bson.M{"imageURL": "", "images": bson.A{"c.png"}})
	assert.Equal(t, "c.png", p.ImageURL)

	p = Project(bson.M{"imageURL": "main.png", "images": []string{"a.png"}})
	assert.Equal(t, "main.png", p.ImageURL)
}

func TestProject_DerivesMissingFinalPrice(t *testing.T) {
	p := Project(bson.M{"price": 80.0, "discount": 25.0})
	assert.Equal(t, 60.0, p.FinalPrice)
}

func TestProject_Idempotent(t *testing.T) {
	created := time.Now().UTC().Truncate(time.Millisecond)
	docs := []bson.M{
		{},
		{"_id": primitive.NewObjectID(), "name": "Serum", "price": 10.5, "discount": 5.0, "finalPrice": 9.975},
		{
			"_id":          primitive.NewObjectID(),
			"name":         "Kajal",
			"category":     "Beauty",
			"brand":        "Lakme",
			"price":        int32(300),
			"stock":        int64(12),
			"images":       primitive.A{"k1.png"},
			"tags":         []string{"eyes"},
			"aiMetadata":   bson.M{"concern": "smudging"},
			"seller_email": "s@shop.in",
			"isActive":     false,
			"createdAt":    primitive.NewDateTimeFromTime(created),
		},
		{"_id": "legacy-id", "highlights": []interface{}{"long lasting"}},
	}

	for _, doc := range docs {
		once := Project(doc)
		twice := Project(ToDocument(once))
		assert.Equal(t, once, twice)
	}
	assert.Nil(t, ToDocument(nil))
}

func TestToInventoryItems(t *testing.T) {
	id := primitive.NewObjectID()

	items := ToInventoryItems([]bson.M{{"_id": id, "name": "Soap", "seller_email": "s@shop.in"}})

	require.Len(t, items, 1)
	assert.Equal(t, id.Hex(), items[0].LegacyID)

	raw, err := json.Marshal(items[0])
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id.Hex(), decoded["_id"])
	assert.Equal(t, id.Hex(), decoded["id"])
	assert.Equal(t, "Soap", decoded["name"])
	assert.Equal(t, "s@shop.in", decoded["seller_email"])
	assert.Contains(t, decoded, "finalPrice")
	assert.Contains(t, decoded, "imageURL")
	assert.Contains(t, decoded, "aiMetadata")
}
