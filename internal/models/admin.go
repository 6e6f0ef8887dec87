// internal/models/admin.go
package models

import (
	"time"
)

type AuditLog struct {
	BaseModel    `bson:",inline"`
	Action       string `json:"action" bson:"action"`
	ResourceType string `json:"resource_type" bson:"resource_type"`
	ResourceID   string `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Principal    string `json:"principal,omitempty" bson:"principal,omitempty"`
	Role         string `json:"role,omitempty" bson:"role,omitempty"`
	Status       int    `json:"status" bson:"status"`
	IPAddress    string `json:"ip_address" bson:"ip_address"`
	UserAgent    string `json:"user_agent" bson:"user_agent"`
	RequestID    string `json:"request_id,omitempty" bson:"request_id,omitempty"`
}

type PlatformStats struct {
	Users            int64     `json:"users"`
	Sellers          int64     `json:"sellers"`
	Admins           int64     `json:"admins"`
	Products         int64     `json:"products"`
	ActiveProducts   int64     `json:"activeProducts"`
	InactiveProducts int64     `json:"inactiveProducts"`
	GeneratedAt      time.Time `json:"generatedAt"`
}
