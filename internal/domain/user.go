package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash never leaves the backend —
// it is excluded from JSON and handlers must not echo it.
type User struct {
	ID           uuid.UUID `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	CityName     string    `json:"city_name,omitempty"`
	CountryName  string    `json:"country_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Registration carries the fields accepted by the register endpoint.
// Phone, CityName, and CountryName are optional.
type Registration struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	CityName    string
	CountryName string
}
