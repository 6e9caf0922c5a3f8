package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the account model based on the 'users' table
type User struct {
	ID        uuid.UUID `json:"id" db:"id" example:"6f1c07d3-72c1-4cbb-a343-9a6a5b4f1f1b"` // Unique identifier for the account
	Email     string    `json:"email" db:"email" example:"student@uni.ro"`                 // Account email address
	Password  string    `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	Role      Role      `json:"role" db:"role" example:"STUDENT"`                          // Account role (STUDENT or ADMIN)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`  // Timestamp when the account was created
}
