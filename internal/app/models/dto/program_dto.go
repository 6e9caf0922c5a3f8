package dto

import "github.com/apavel/studygate/internal/app/models"

// ProgramRequest represents a program of study catalog entry
type ProgramRequest struct {
	Name             string `json:"name" binding:"required" example:"Computer Science"`
	Type             string `json:"type" binding:"required" example:"BACHELOR" enums:"BACHELOR,MASTER,DOCTORATE"`
	NumberOfYears    int    `json:"numberOfYears" binding:"required,min=1" example:"3"`
	NumberOfStudents int    `json:"numberOfStudents" binding:"required,min=1" example:"100"`
	FinancingType    string `json:"financingType" binding:"required" example:"BUDGET" enums:"BUDGET,TUITION"`
}

// ToModel maps the request to a program model
func (r *ProgramRequest) ToModel() *models.ProgramOfStudy {
	return &models.ProgramOfStudy{
		Name:             r.Name,
		Type:             models.ProgramType(r.Type),
		NumberOfYears:    r.NumberOfYears,
		NumberOfStudents: r.NumberOfStudents,
		FinancingType:    models.FinancingType(r.FinancingType),
	}
}
