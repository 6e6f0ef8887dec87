// internal/tests/admin_test.go
package tests

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *APITestSuite) TestAdminRegistration() {
	w := s.request(http.MethodPost, "/api/admin/register", gin.H{
		"email": "boss@example.com", "password": strongPassword, "adminKey": "guess",
	}, "")
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Invalid Admin Secret Key. You cannot register as admin!", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/admin/register", gin.H{
		"email": "boss@example.com", "password": "Secret123", "adminKey": testAdminKey,
	}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("WEAK_PASSWORD", s.object(w)["code"])

	w = s.request(http.MethodPost, "/api/admin/register", gin.H{"email": "boss@example.com"}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("All fields are required!", s.object(w)["message"])

	s.registerAdmin("boss@example.com")

	w = s.request(http.MethodPost, "/api/admin/register", gin.H{
		"email": "boss@example.com", "password": strongPassword, "adminKey": testAdminKey,
	}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Admin is already registered!", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/admin/login", gin.H{"email": "boss@example.com", "password": strongPassword}, "")
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.object(w)
	s.Equal("Welcome back Admin!", body["message"])
	s.Equal("boss@example.com", body["admin"].(map[string]interface{})["email"])
}

func (s *APITestSuite) TestAdminModeration() {
	admin := s.registerAdmin("mod@example.com")
	seller := s.registerSeller("moderated@example.com")
	s.registerUser("someone@example.com")
	id := s.addProduct(seller, gin.H{"name": "Fake Perfume", "price": 10})

	w := s.request(http.MethodPatch, "/api/admin/products/"+id+"/status", gin.H{"isActive": false}, admin)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet, "/api/products", nil, "")
	s.Empty(s.list(w))

	w = s.request(http.MethodGet, "/api/product/"+id, nil, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(false, s.object(w)["isActive"])

	w = s.request(http.MethodPatch, "/api/admin/products/"+id+"/status", gin.H{}, admin)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPatch, "/api/admin/products/000000000000000000000000/status", gin.H{"isActive": true}, admin)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/admin/stats", nil, admin)
	s.Require().Equal(http.StatusOK, w.Code)
	stats := s.object(w)
	s.EqualValues(1, stats["users"])
	s.EqualValues(1, stats["sellers"])
	s.EqualValues(1, stats["admins"])
	s.EqualValues(1, stats["products"])
	s.EqualValues(0, stats["activeProducts"])
	s.EqualValues(1, stats["inactiveProducts"])
}

func (s *APITestSuite) TestAuditLogs() {
	admin := s.registerAdmin("auditor@example.com")
	seller := s.registerSeller("audited@example.com")
	id := s.addProduct(seller, gin.H{"name": "Tracked", "price": 5})

	s.Eventually(func() bool {
		w := s.request(http.MethodGet, "/api/admin/audit-logs?limit=100", nil, admin)
		if w.Code != http.StatusOK {
			return false
		}
		for _, entry := range s.list(w) {
			if entry["resource_type"] == "seller" && strings.Contains(entry["action"].(string), "/product/add") {
				return true
			}
		}
		return false
	}, eventuallyTimeout, eventuallyTick)

	w := s.request(http.MethodDelete, "/api/seller/product/delete/"+id, nil, seller)
	s.Require().Equal(http.StatusOK, w.Code)

	s.Eventually(func() bool {
		w := s.request(http.MethodGet, "/api/admin/audit-logs?limit=100", nil, admin)
		for _, entry := range s.list(w) {
			if entry["resource_id"] == id {
				return entry["principal"] == "audited@example.com"
			}
		}
		return false
	}, eventuallyTimeout, eventuallyTick)
}

func (s *APITestSuite) TestChat() {
	seller := s.registerSeller("chat@example.com")
	s.addProduct(seller, gin.H{"name": "Acne Gel", "price": 300, "aiMetadata": gin.H{"concern": "acne"}})
	s.addProduct(seller, gin.H{"name": "Silk Saree", "price": 2500, "category": "Fashion"})

	w := s.request(http.MethodPost, "/api/chat/", gin.H{}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Please type a message!", s.object(w)["reply"])

	w = s.request(http.MethodPost, "/api/chat/", gin.H{"message": "something for acne"}, "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Try our bestsellers!", s.object(w)["reply"])

	s.Require().Len(s.assistant.prompts, 1)
	s.Contains(s.assistant.prompts[0].Inventory, "Acne Gel")
	s.NotContains(s.assistant.prompts[0].Inventory, "Silk Saree")

	s.assistant.err = errors.New("model overloaded")
	w = s.request(http.MethodPost, "/api/chat", gin.H{"message": "acne"}, "")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("The assistant is busy right now. Please try again?", s.object(w)["reply"])
}

func (s *APITestSuite) TestServiceEndpoints() {
	w := s.request(http.MethodGet, "/", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "RetailX")

	w = s.request(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("healthy", s.object(w)["status"])

	w = s.request(http.MethodGet, "/api/test-db", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}
