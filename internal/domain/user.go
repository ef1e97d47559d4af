package domain

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleMother UserRole = "mother"
	RoleDoula  UserRole = "doula"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	Name         string   `json:"name"`
	Location     string   `json:"location,omitempty"`
	Phone        string   `json:"phone,omitempty"`

	// Doula profile fields. Mothers leave these empty.
	Price           float64        `json:"price,omitempty"`
	PriceBundle     *float64       `json:"price_bundle,omitempty"`
	PriceCaption    string         `json:"price_caption,omitempty"`
	BundleCaption   string         `json:"bundle_caption,omitempty"`
	Verified        bool           `json:"verified"`
	Qualifications  string         `json:"qualifications,omitempty" gorm:"type:text"`
	Services        string         `json:"services,omitempty" gorm:"type:text"`
	YearsExperience *int           `json:"years_experience,omitempty"`
	PhotoURL        string         `json:"photo_url,omitempty"`
	CertificateURL  string         `json:"certificate_url,omitempty"`
	IntroVideoURL   string         `json:"intro_video_url,omitempty"`
	Documents       datatypes.JSON `json:"documents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
