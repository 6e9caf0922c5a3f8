package dto

import (
	"time"

	"github.com/apavel/studygate/internal/app/models"
)

// UpdateUserRequest represents an account credentials update
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AddressRequest represents the postal address part of a profile request
type AddressRequest struct {
	Country  string `json:"country" binding:"required" example:"Romania"`
	Province string `json:"province" binding:"required" example:"Cluj"`
	City     string `json:"city" binding:"required" example:"Cluj-Napoca"`
	Street   string `json:"street" binding:"required" example:"Strada Universitatii"`
	Number   string `json:"number" binding:"required" example:"7A"`
	Other    string `json:"other,omitempty" example:"Ap. 12"`
}

// ProfileRequest represents the personal information attached to an account
type ProfileRequest struct {
	FirstName   string         `json:"firstName" binding:"required" example:"Ana"`
	LastName    string         `json:"lastName" binding:"required" example:"Popescu"`
	NationalID  string         `json:"nationalId" binding:"required" example:"2980521123456"`
	Nationality string         `json:"nationality" binding:"required" example:"Romanian"`
	PhoneNumber string         `json:"phoneNumber" binding:"required" example:"+40712345678"`
	BirthDate   time.Time      `json:"birthDate" binding:"required"`
	CivilStatus string         `json:"civilStatus" binding:"required" example:"SINGLE" enums:"SINGLE,MARRIED,DIVORCED,WIDOWED"`
	Sex         string         `json:"sex" binding:"required" example:"FEMALE" enums:"MALE,FEMALE"`
	Address     AddressRequest `json:"address" binding:"required"`
}

// ToModel maps the request to a profile model
func (r *ProfileRequest) ToModel() *models.Profile {
	return &models.Profile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		NationalID:  r.NationalID,
		Nationality: r.Nationality,
		PhoneNumber: r.PhoneNumber,
		BirthDate:   r.BirthDate,
		CivilStatus: models.CivilStatus(r.CivilStatus),
		Sex:         models.Sex(r.Sex),
		Address: models.Address{
			Country:  r.Address.Country,
			Province: r.Address.Province,
			City:     r.Address.City,
			Street:   r.Address.Street,
			Number:   r.Address.Number,
			Other:    r.Address.Other,
		},
	}
}
