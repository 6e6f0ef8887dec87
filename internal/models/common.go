// internal/models/common.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Base fields shared by stored account documents
type BaseModel struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Document is a free-form mapping stored as an embedded document
type Document map[string]interface{}

// Enums
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type BusinessType string

const (
	BusinessTypeIndividual  BusinessType = "Individual"
	BusinessTypePartnership BusinessType = "Partnership"
	BusinessTypeCompany     BusinessType = "Company"
)

// Product field defaults
const (
	DefaultCategory = "Other"
	DefaultBrand    = "Generic"
)
