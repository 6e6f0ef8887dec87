// internal/tests/auth_test.go
package tests

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *APITestSuite) TestUserRegistration() {
	w := s.request(http.MethodPost, "/api/auth/register", gin.H{
		"name": "Asha", "email": "Asha@Example.com", "password": strongPassword,
	}, "")
	s.Equal(http.StatusCreated, w.Code)
	body := s.object(w)
	s.Equal("Registration successful", body["message"])
	s.NotEmpty(body["token"])

	w = s.request(http.MethodPost, "/api/auth/register", gin.H{"email": "asha@example.com", "password": strongPassword}, "")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("CONFLICT", s.object(w)["code"])

	w = s.request(http.MethodPost, "/api/auth/register", gin.H{"email": "weak@example.com", "password": "password"}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("WEAK_PASSWORD", s.object(w)["code"])

	w = s.request(http.MethodPost, "/api/auth/register", gin.H{"password": strongPassword}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Email and password are required", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/auth/register", "{not json", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestUserLoginAndLogout() {
	s.registerUser("login@example.com")

	w := s.request(http.MethodPost, "/api/auth/login", gin.H{"email": "login@example.com", "password": "Wrong@123"}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid credentials", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/auth/login", gin.H{"email": "login@example.com", "password": strongPassword}, "")
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.object(w)
	token := body["token"].(string)
	s.Equal(token, body["access_token"])

	w = s.request(http.MethodGet, "/api/auth/me", nil, token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("login@example.com", s.object(w)["email"])
	s.Equal("user", s.object(w)["role"])

	w = s.request(http.MethodPost, "/api/auth/logout", nil, token)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/auth/me", nil, token)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestAuthGate() {
	w := s.request(http.MethodGet, "/api/auth/me", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("UNAUTHORIZED", s.object(w)["code"])

	w = s.request(http.MethodGet, "/api/auth/me", nil, "not-a-jwt")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestSellerRegistrationAndLogin() {
	s.registerSeller("shop@example.com")

	w := s.request(http.MethodPost, "/api/seller/register", gin.H{
		"email": "shop@example.com", "password": "x", "storeName": "Again", "registrationId": "R",
	}, "")
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Seller is already registered!", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/seller/register", gin.H{"email": "half@example.com", "password": "x"}, "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("All fields should be filled to continue!", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/seller/login", gin.H{"email": "shop@example.com", "password": sellerPassword}, "")
	s.Require().Equal(http.StatusOK, w.Code)
	seller := s.object(w)["seller"].(map[string]interface{})
	s.Equal("shop@example.com", seller["email"])
	s.Equal("Store of shop@example.com", seller["storeName"])
}

func (s *APITestSuite) TestRoleGates() {
	user := s.registerUser("shopper@example.com")
	seller := s.registerSeller("seller@example.com")

	w := s.request(http.MethodGet, "/api/seller/inventory", nil, user)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("FORBIDDEN", s.object(w)["code"])

	w = s.request(http.MethodGet, "/api/admin/stats", nil, seller)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/add", gin.H{"name": "X", "price": 1}, user)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestPreferences() {
	token := s.registerUser("prefs@example.com")

	w := s.request(http.MethodPost, "/api/preferences", gin.H{"categories": []string{"Beauty", "Fashion"}}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Select at least 3 categories", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/preferences", gin.H{}, token)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/preferences", gin.H{"categories": []string{"Beauty", "Fashion", "Home"}}, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Preferences saved successfully", s.object(w)["message"])

	w = s.request(http.MethodPost, "/api/preferences", gin.H{"categories": []string{"a", "b", "c"}}, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestLanguageSelection() {
	w := s.request(http.MethodGet, "/api/auth/me?lang=hi", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.NotEqual("Authentication required", s.object(w)["message"])
}
