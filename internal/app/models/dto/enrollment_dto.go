package dto

import "github.com/google/uuid"

// EnrollmentRequest represents an application to a program of study. It is
// used both for creating an application and for changing its program.
type EnrollmentRequest struct {
	ProgramID uuid.UUID `json:"programId" binding:"required"`
}

// GradeRequest represents a staff grade submission for an enrollment
type GradeRequest struct {
	Grade int `json:"grade" binding:"required" example:"9"`
}
