package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	LastLogin time.Time `json:"lastLogin"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"isActive"`
	Phones    []Phone   `json:"phones"`
}

// Phone belongs to exactly one user and has no lifecycle of its own.
type Phone struct {
	ID          uuid.UUID `json:"id"`
	Number      string    `json:"number"`
	CityCode    string    `json:"cityCode"`
	CountryCode string    `json:"countryCode"`
}
