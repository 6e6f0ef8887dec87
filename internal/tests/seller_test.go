// internal/tests/seller_test.go
package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *APITestSuite) TestProductLifecycle() {
	token := s.registerSeller("lotion@example.com")

	id := s.addProduct(token, gin.H{"name": "Lotion", "price": "100", "discount": 10, "category": defaultCategory, "tags": "skin, care"})

	w := s.request(http.MethodGet, "/api/product/"+id, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	product := s.object(w)
	s.Equal(id, product["id"])
	s.EqualValues(90, product["finalPrice"])
	s.Equal([]interface{}{"skin", "care"}, product["tags"])
	s.NotContains(product, "seller_email")

	w = s.request(http.MethodPut, "/api/seller/product/update/"+id, gin.H{"discount": 50}, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Product details updated successfully", s.object(w)["message"])

	w = s.request(http.MethodGet, "/api/product/"+id, nil, "")
	s.EqualValues(50, s.object(w)["finalPrice"])

	w = s.request(http.MethodPatch, "/api/seller/product/update-stock/"+id, gin.H{"stock": "7"}, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/api/seller/inventory", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	items := s.list(w)
	s.Require().Len(items, 1)
	s.Equal(id, items[0]["_id"])
	s.Equal(id, items[0]["id"])
	s.EqualValues(7, items[0]["stock"])
	s.Equal("lotion@example.com", items[0]["seller_email"])
	s.Equal("1", w.Header().Get("X-Total-Count"))

	w = s.request(http.MethodDelete, "/api/seller/product/delete/"+id, nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Product removed from market", s.object(w)["message"])

	w = s.request(http.MethodGet, "/api/product/"+id, nil, "")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", s.object(w)["code"])
}

func (s *APITestSuite) TestProductValidation() {
	token := s.registerSeller("strict@example.com")

	w := s.request(http.MethodPost, "/api/seller/product/add", gin.H{"price": 10}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", s.object(w)["code"])

	w = s.request(http.MethodPost, "/api/seller/product/add", gin.H{"name": "Soap", "price": "abc"}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_NUMBER", s.object(w)["code"])

	id := s.addProduct(token, gin.H{"name": "Soap", "price": 10})

	w = s.request(http.MethodPatch, "/api/seller/product/update-stock/"+id, gin.H{"stock": -1}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_NUMBER", s.object(w)["code"])

	w = s.request(http.MethodPut, "/api/seller/product/update/"+id, gin.H{}, token)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/seller/product/add", gin.H{"name": "Huge", "price": "1e400"}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_NUMBER", s.object(w)["code"])

	w = s.request(http.MethodPut, "/api/seller/product/update/"+id, gin.H{"price": "1e400"}, token)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, "/api/products", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.list(w), 1)
}

func (s *APITestSuite) TestOwnershipLooksLikeNotFound() {
	owner := s.registerSeller("owner@example.com")
	other := s.registerSeller("other@example.com")
	id := s.addProduct(owner, gin.H{"name": "Kajal", "price": 99})

	w := s.request(http.MethodPut, "/api/seller/product/update/"+id, gin.H{"name": "Mine now"}, other)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Product not found", s.object(w)["message"])

	w = s.request(http.MethodDelete, "/api/seller/product/delete/"+id, nil, other)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPatch, "/api/seller/product/update-stock/"+id, gin.H{"stock": 1}, other)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/seller/inventory", nil, other)
	s.Empty(s.list(w))

	w = s.request(http.MethodGet, "/api/product/"+id, nil, "")
	s.Equal("Kajal", s.object(w)["name"])
}

func (s *APITestSuite) TestMalformedIdentifiers() {
	token := s.registerSeller("ids@example.com")

	w := s.request(http.MethodGet, "/api/product/not-an-id", nil, "")
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPut, "/api/seller/product/update/xyz", gin.H{"name": "A"}, token)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodDelete, "/api/seller/product/delete/xyz", nil, token)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APITestSuite) TestLegacyAliases() {
	token := s.registerSeller("legacy@example.com")

	w := s.request(http.MethodPost, "/add", gin.H{"name": "Bindi", "price": 20}, token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	id := s.object(w)["id"].(string)

	w = s.request(http.MethodPut, "/update/"+id, gin.H{"brand": "Shringar"}, token)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/seller", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	items := s.list(w)
	s.Require().Len(items, 1)
	s.Equal("Shringar", items[0]["brand"])

	w = s.request(http.MethodDelete, "/delete/"+id, nil, token)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestStorefrontReads() {
	token := s.registerSeller("store@example.com")
	lipstick := s.addProduct(token, gin.H{"name": "Matte Lipstick", "price": 499, "category": defaultCategory, "tags": []string{"lips"}})
	s.addProduct(token, gin.H{"name": "Kajal", "price": 99, "category": "beauty"})
	s.addProduct(token, gin.H{"name": "Kurta", "price": 999, "category": "Fashion", "brand": "FabIndia"})

	w := s.request(http.MethodGet, "/api/products?category=BEAUTY&exclude="+lipstick, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	related := s.list(w)
	s.Require().Len(related, 1)
	s.Equal("Kajal", related[0]["name"])
	s.NotContains(related[0], "seller_email")

	w = s.request(http.MethodGet, "/api/products?limit=2", nil, "")
	s.Len(s.list(w), 2)

	w = s.request(http.MethodGet, "/api/products?limit=abc", nil, "")
	s.Len(s.list(w), 3)

	w = s.request(http.MethodGet, "/api/search/?q=fabindia", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	found := s.list(w)
	s.Require().Len(found, 1)
	s.Equal("Kurta", found[0]["name"])
	s.NotContains(found[0], "seller_email")

	w = s.request(http.MethodGet, "/api/search/?q=LIPS", nil, "")
	s.Len(s.list(w), 1)

	w = s.request(http.MethodGet, "/api/search?q=", nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("[]", strings.TrimSpace(w.Body.String()))
}

func (s *APITestSuite) TestSellerProfile() {
	token := s.registerSeller("profile@example.com")

	w := s.request(http.MethodGet, "/api/seller/profile", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	profile := s.object(w)
	s.NotEmpty(profile["_id"])
	s.Equal("Individual", profile["businessType"])
	s.NotContains(profile, "password")

	w = s.request(http.MethodPut, "/api/seller/profile/update", gin.H{"email": "x@example.com", "registrationId": "NEW"}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No valid data provided for update", s.object(w)["message"])

	w = s.request(http.MethodPut, "/api/seller/profile/update", gin.H{"contactNumber": "9876543210", "email": "x@example.com"}, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(map[string]interface{}{"contactNumber": "9876543210"}, s.object(w)["updated_data"])

	w = s.request(http.MethodGet, "/api/seller/profile", nil, token)
	profile = s.object(w)
	s.Equal("9876543210", profile["contactNumber"])
	s.Equal("profile@example.com", profile["email"])
}

func (s *APITestSuite) TestUploadImage() {
	token := s.registerSeller("images@example.com")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	upload := func(field string, content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, "photo.png")
		s.Require().NoError(err)
		_, err = part.Write(content)
		s.Require().NoError(err)
		s.Require().NoError(mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/seller/product/upload-image", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload("image", png)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	url := s.object(w)["url"].(string)
	s.True(strings.HasPrefix(url, testPublicBase+"/uploads/products/"))

	w = s.request(http.MethodGet, strings.TrimPrefix(url, testPublicBase), nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal(png, w.Body.Bytes())

	w = upload("file", png)
	s.Equal(http.StatusBadRequest, w.Code)

	w = upload("image", []byte("plain text, not an image"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", s.object(w)["code"])
}
