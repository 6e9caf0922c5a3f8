package dto

// ValidateAdmissionRequest represents the staff decision on an admission file
type ValidateAdmissionRequest struct {
	Status string `json:"status" binding:"required" example:"VALID" enums:"PENDING,VALID,INVALID"`
}
