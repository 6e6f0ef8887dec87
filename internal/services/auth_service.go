// internal/services/auth_service.go
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/cache"
	"github.com/retailx/retailx-backend/internal/config"
	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/query"
	"github.com/retailx/retailx-backend/internal/utils"
)

type AuthService struct {
	users       database.Collection
	sellers     database.Collection
	admins      database.Collection
	revocations cache.RevocationStore
	cfg         *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,user_password"`
}

type RegisterSellerRequest struct {
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	StoreName      string `json:"storeName" validate:"required"`
	RegistrationID string `json:"registrationId" validate:"required"`
}

type RegisterAdminRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,strong_password"`
	AdminKey string `json:"adminKey" validate:"required"`
}

// AuthResponse is a freshly issued token for a principal.
type AuthResponse struct {
	Token     string
	Email     string
	Role      models.Role
	StoreName string
}

func NewAuthService(store *database.Store, revocations cache.RevocationStore, cfg *config.Config) *AuthService {
	return &AuthService{
		users:       store.Users,
		sellers:     store.Sellers,
		admins:      store.Admins,
		revocations: revocations,
		cfg:         cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkRequest runs struct validation, separating password policy failures
// from missing fields.
func checkRequest(req interface{}, passwordTag string) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}
	if passwordTag != "" && utils.HasTag(err, passwordTag) && !utils.HasTag(err, "required") {
		return ErrWeakPassword
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func (s *AuthService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := checkRequest(req, "user_password"); err != nil {
		return nil, err
	}

	user := &models.User{Name: strings.TrimSpace(req.Name), Preferences: []string{}}
	user.Email = req.Email
	user.Role = models.RoleUser
	user.CreatedAt = time.Now().UTC()
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.createAccount(ctx, s.users, user.Email, user); err != nil {
		return nil, err
	}
	return s.issue(user.Email, models.RoleUser, "")
}

func (s *AuthService) LoginUser(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	if err := s.authenticate(ctx, s.users, req, &user, &user.Credentials); err != nil {
		return nil, err
	}
	return s.issue(user.Email, models.RoleUser, "")
}

func (s *AuthService) RegisterSeller(ctx context.Context, req *RegisterSellerRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := checkRequest(req, ""); err != nil {
		return nil, err
	}

	seller := &models.Seller{
		StoreName:       req.StoreName,
		RegistrationID:  req.RegistrationID,
		BusinessAddress: "",
		ContactNumber:   "",
		GSTIN:           "",
		BusinessType:    models.BusinessTypeIndividual,
	}
	seller.Email = req.Email
	seller.Role = models.RoleSeller
	seller.CreatedAt = time.Now().UTC()
	if err := seller.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.createAccount(ctx, s.sellers, seller.Email, seller); err != nil {
		return nil, err
	}
	return s.issue(seller.Email, models.RoleSeller, seller.StoreName)
}

func (s *AuthService) LoginSeller(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var seller models.Seller
	if err := s.authenticate(ctx, s.sellers, req, &seller, &seller.Credentials); err != nil {
		return nil, err
	}
	return s.issue(seller.Email, models.RoleSeller, seller.StoreName)
}

// RegisterAdmin requires the configured admin secret. An unset secret
// disables admin registration.
func (s *AuthService) RegisterAdmin(ctx context.Context, req *RegisterAdminRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" || req.AdminKey == "" {
		return nil, validationError("email, password and adminKey are required")
	}

	secret := s.cfg.Admin.SecretKey
	if secret == "" || subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(secret)) != 1 {
		return nil, ErrInvalidAdminKey
	}

	if err := checkRequest(req, "strong_password"); err != nil {
		return nil, err
	}

	admin := &models.Admin{}
	admin.Email = req.Email
	admin.Role = models.RoleAdmin
	admin.CreatedAt = time.Now().UTC()
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.createAccount(ctx, s.admins, admin.Email, admin); err != nil {
		return nil, err
	}
	return s.issue(admin.Email, models.RoleAdmin, "")
}

func (s *AuthService) LoginAdmin(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var admin models.Admin
	if err := s.authenticate(ctx, s.admins, req, &admin, &admin.Credentials); err != nil {
		return nil, err
	}
	return s.issue(admin.Email, models.RoleAdmin, "")
}

// Logout revokes the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) createAccount(ctx context.Context, coll database.Collection, email string, account interface{}) error {
	_, err := coll.FindOne(ctx, query.ByEmail(email))
	if err == nil {
		return ErrAlreadyExists
	}
	if !errors.Is(err, database.ErrNoDocuments) {
		return databaseError(err)
	}

	if _, err := coll.InsertOne(ctx, account); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return ErrAlreadyExists
		}
		return databaseError(err)
	}
	return nil
}

// authenticate loads the account into dst and checks the password held in
// creds, which must point into dst.
func (s *AuthService) authenticate(ctx context.Context, coll database.Collection, req *LoginRequest, dst interface{}, creds *models.Credentials) error {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return validationError("email and password are required")
	}

	doc, err := coll.FindOne(ctx, query.ByEmail(email))
	if errors.Is(err, database.ErrNoDocuments) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return databaseError(err)
	}
	if err := database.Decode(doc, dst); err != nil {
		return fmt.Errorf("failed to decode account: %w", err)
	}

	if err := creds.CheckPassword(req.Password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) issue(email string, role models.Role, storeName string) (*AuthResponse, error) {
	token, err := utils.GenerateJWT(email, string(role), s.cfg.JWT.TTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logrus.WithFields(logrus.Fields{"email": email, "role": role}).Debug("Issued access token")
	return &AuthResponse{Token: token, Email: email, Role: role, StoreName: storeName}, nil
}
