package models

import "github.com/google/uuid"

// ProgramOfStudy defines a catalog entry based on the 'programs_of_study'
// table. Programs are managed by staff; no two programs may share the same
// (name, financing type) pair.
type ProgramOfStudy struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	Name             string        `json:"name" db:"name" example:"Computer Science"`
	Type             ProgramType   `json:"type" db:"type" example:"BACHELOR"`
	NumberOfYears    int           `json:"numberOfYears" db:"number_of_years" example:"3"`
	NumberOfStudents int           `json:"numberOfStudents" db:"number_of_students" example:"120"` // Seat capacity
	FinancingType    FinancingType `json:"financingType" db:"financing_type" example:"BUDGET"`
}
