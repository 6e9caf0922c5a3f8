package models

import "github.com/google/uuid"

// DocumentSet defines the required admission documents based on the
// 'documents' table. Each account owns at most one set; the three references
// point into file storage and are always replaced together.
type DocumentSet struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             uuid.UUID `json:"userId" db:"user_id"`
	IdentityCard       string    `json:"identityCard" db:"identity_card"`             // Storage reference for the identity card
	MedicalCertificate string    `json:"medicalCertificate" db:"medical_certificate"` // Storage reference for the medical certificate
	Diploma            string    `json:"diploma" db:"diploma"`                        // Storage reference for the diploma
}
