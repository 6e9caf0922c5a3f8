// Package repositories implements persistence over PostgreSQL. Each
// repository is exposed as an interface so the service layer stays decoupled
// from the storage implementation; uniqueness invariants are enforced by the
// database constraints and surfaced as typed conflict errors.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	UserRepository          UserRepository
	ProfileRepository       ProfileRepository
	DocumentRepository      DocumentRepository
	ProgramRepository       ProgramRepository
	EnrollmentRepository    EnrollmentRepository
	AdmissionFileRepository AdmissionFileRepository
}

// NewRepositories creates all repositories over a shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		ProfileRepository:       NewProfileRepository(db),
		DocumentRepository:      NewDocumentRepository(db),
		ProgramRepository:       NewProgramRepository(db),
		EnrollmentRepository:    NewEnrollmentRepository(db),
		AdmissionFileRepository: NewAdmissionFileRepository(db),
	}
}
