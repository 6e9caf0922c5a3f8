package models

// Role defines the account role type
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// AdmissionStatus defines the lifecycle state of an admission file
type AdmissionStatus string

const (
	AdmissionPending AdmissionStatus = "PENDING"
	AdmissionValid   AdmissionStatus = "VALID"
	AdmissionInvalid AdmissionStatus = "INVALID"
)

// Valid reports whether the status is one of the known admission statuses.
func (s AdmissionStatus) Valid() bool {
	switch s {
	case AdmissionPending, AdmissionValid, AdmissionInvalid:
		return true
	}
	return false
}

// ProgramType defines the level of a program of study
type ProgramType string

const (
	ProgramBachelor  ProgramType = "BACHELOR"
	ProgramMaster    ProgramType = "MASTER"
	ProgramDoctorate ProgramType = "DOCTORATE"
)

// Valid reports whether the program type is known.
func (t ProgramType) Valid() bool {
	switch t {
	case ProgramBachelor, ProgramMaster, ProgramDoctorate:
		return true
	}
	return false
}

// FinancingType defines how a program of study seat is financed
type FinancingType string

const (
	FinancingBudget  FinancingType = "BUDGET"
	FinancingTuition FinancingType = "TUITION"
)

// Valid reports whether the financing type is known.
func (f FinancingType) Valid() bool {
	switch f {
	case FinancingBudget, FinancingTuition:
		return true
	}
	return false
}

// CivilStatus defines the civil status recorded on a profile
type CivilStatus string

// Civil status values
const (
	CivilSingle   CivilStatus = "SINGLE"
	CivilMarried  CivilStatus = "MARRIED"
	CivilDivorced CivilStatus = "DIVORCED"
	CivilWidowed  CivilStatus = "WIDOWED"
)

// Sex defines the sex recorded on a profile
type Sex string

// Sex values
const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)
