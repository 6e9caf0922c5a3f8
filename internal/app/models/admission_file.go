package models

import (
	"time"

	"github.com/google/uuid"
)

// AdmissionFile defines the per-account admission file based on the
// 'admission_files' table. Its existence freezes the owner's profile,
// documents and enrollments until staff reach a decision.
type AdmissionFile struct {
	ID          int64           `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"userId" db:"user_id"`
	SubmittedAt time.Time       `json:"submittedAt" db:"submitted_at"`
	Status      AdmissionStatus `json:"status" db:"status" example:"PENDING"`
}
