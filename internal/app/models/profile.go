package models

import (
	"time"

	"github.com/google/uuid"
)

// Address holds the postal address recorded on a profile
type Address struct {
	Country  string `json:"country" db:"country" example:"Romania"`
	Province string `json:"province" db:"province" example:"Cluj"`
	City     string `json:"city" db:"city" example:"Cluj-Napoca"`
	Street   string `json:"street" db:"street" example:"Strada Universitatii"`
	Number   string `json:"number" db:"number" example:"7A"`
	Other    string `json:"other,omitempty" db:"other" example:"Ap. 12"` // Optional extra address detail
}

// Profile defines the personal information model based on the 'profiles' table.
// Each account owns at most one profile.
type Profile struct {
	ID          int64       `json:"id" db:"id"`
	UserID      uuid.UUID   `json:"userId" db:"user_id"`
	FirstName   string      `json:"firstName" db:"first_name" example:"Ana"`
	LastName    string      `json:"lastName" db:"last_name" example:"Popescu"`
	NationalID  string      `json:"nationalId" db:"national_id" example:"2980521123456"` // National identification number
	Nationality string      `json:"nationality" db:"nationality" example:"Romanian"`
	PhoneNumber string      `json:"phoneNumber" db:"phone_number" example:"+40712345678"`
	BirthDate   time.Time   `json:"birthDate" db:"birth_date"`
	CivilStatus CivilStatus `json:"civilStatus" db:"civil_status" example:"SINGLE"`
	Sex         Sex         `json:"sex" db:"sex" example:"FEMALE"`
	Address     Address     `json:"address"`
}
