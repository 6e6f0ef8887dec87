// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/models"
	"github.com/retailx/retailx-backend/internal/query"
)

// MinPreferenceCategories is how many categories a shopper must pick.
const MinPreferenceCategories = 3

type UserService struct {
	users   database.Collection
	sellers database.Collection
}

type PreferencesRequest struct {
	Categories []string `json:"categories"`
}

func NewUserService(store *database.Store) *UserService {
	return &UserService{
		users:   store.Users,
		sellers: store.Sellers,
	}
}

// SavePreferences stores the shopper's category choices on their account.
func (s *UserService) SavePreferences(ctx context.Context, email string, req *PreferencesRequest) error {
	if len(req.Categories) < MinPreferenceCategories {
		return validationError("select at least %d categories", MinPreferenceCategories)
	}

	matched, err := s.users.UpdateOne(ctx, query.ByEmail(email), bson.M{"preferences": req.Categories})
	if err != nil {
		return databaseError(err)
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) GetSellerProfile(ctx context.Context, email string) (*models.Seller, error) {
	doc, err := s.sellers.FindOne(ctx, query.ByEmail(email))
	if errors.Is(err, database.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, databaseError(err)
	}

	var seller models.Seller
	if err := database.Decode(doc, &seller); err != nil {
		return nil, fmt.Errorf("failed to decode seller: %w", err)
	}
	return &seller, nil
}

// UpdateSellerProfile sets the allowed profile fields present in fields and
// returns what was applied. Email and registration id are never changed.
func (s *UserService) UpdateSellerProfile(ctx context.Context, email string, fields map[string]interface{}) (map[string]interface{}, error) {
	set := bson.M{}
	for _, key := range models.SellerProfileFields {
		value, ok := fields[key]
		if !ok {
			continue
		}
		str, ok := value.(string)
		if !ok {
			return nil, validationError("%s must be a string", key)
		}
		set[key] = strings.TrimSpace(str)
	}
	if len(set) == 0 {
		return nil, ErrNothingToUpdate
	}

	matched, err := s.sellers.UpdateOne(ctx, query.ByEmail(email), set)
	if err != nil {
		return nil, databaseError(err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}
	return set, nil
}
