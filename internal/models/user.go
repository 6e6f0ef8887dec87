// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Credentials are the fields every account type shares.
type Credentials struct {
	BaseModel    `bson:",inline"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password"`
	Role         Role   `json:"role" bson:"role"`
}

func (c *Credentials) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashedPassword)
	return nil
}

func (c *Credentials) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
}

type User struct {
	Credentials `bson:",inline"`
	Name        string   `json:"name" bson:"name"`
	Preferences []string `json:"preferences" bson:"preferences"`
}

type Seller struct {
	Credentials     `bson:",inline"`
	StoreName       string       `json:"storeName" bson:"storeName"`
	RegistrationID  string       `json:"registrationId" bson:"registrationId"`
	BusinessAddress string       `json:"businessAddress" bson:"businessAddress"`
	ContactNumber   string       `json:"contactNumber" bson:"contactNumber"`
	GSTIN           string       `json:"gstin" bson:"gstin"`
	BusinessType    BusinessType `json:"businessType" bson:"businessType"`
}

type Admin struct {
	Credentials `bson:",inline"`
}

// SellerProfileFields are the only seller fields a profile update may set.
var SellerProfileFields = []string{
	"storeName", "businessAddress", "contactNumber", "gstin", "businessType",
}
