package models

import "github.com/google/uuid"

// Enrollment defines the relation between an account and a program of study
// based on the 'enrollments' table. At most one enrollment may exist per
// (account, program) pair. The grade is set by staff after the enrollment
// exists and ranges from 1 to 10.
type Enrollment struct {
	ID        int64           `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	ProgramID uuid.UUID       `json:"programId" db:"program_id"`
	Grade     *int            `json:"grade,omitempty" db:"grade"`
	Program   *ProgramOfStudy `json:"program,omitempty"` // Relation, no db tag
}
