package model

import (
	"time"

	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Code        string        `db:"code" json:"code"`
	FirstName   string        `db:"first_name" json:"first_name"`
	MiddleName  string        `db:"middle_name" json:"middle_name,omitempty"`
	LastName    string        `db:"last_name" json:"last_name"`
	DateOfBirth time.Time     `db:"date_of_birth" json:"date_of_birth"`
	Address     string        `db:"address" json:"address"`
	Phone       string        `db:"phone" json:"phone"`
	Email       string        `db:"email" json:"email,omitempty"`
	CivilStatus string        `db:"civil_status" json:"civil_status"`
	Gravidity   int           `db:"gravidity" json:"gravidity"`
	Parity      int           `db:"parity" json:"parity"`
	Status      PatientStatus `db:"status" json:"status"`
}

type CreatePatientRequest struct {
	FirstName   string    `json:"first_name" binding:"required"`
	MiddleName  string    `json:"middle_name"`
	LastName    string    `json:"last_name" binding:"required"`
	DateOfBirth time.Time `json:"date_of_birth" binding:"required"`
	Address     string    `json:"address" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	Email       string    `json:"email" binding:"omitempty,email"`
	CivilStatus string    `json:"civil_status" binding:"required,oneof=single married widowed separated"`
	Gravidity   int       `json:"gravidity" binding:"gte=0"`
	Parity      int       `json:"parity" binding:"gte=0"`
}

type UpdatePatientRequest struct {
	FirstName   *string    `json:"first_name"`
	MiddleName  *string    `json:"middle_name"`
	LastName    *string    `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Address     *string    `json:"address"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	CivilStatus *string    `json:"civil_status" binding:"omitempty,oneof=single married widowed separated"`
	Gravidity   *int       `json:"gravidity" binding:"omitempty,gte=0"`
	Parity      *int       `json:"parity" binding:"omitempty,gte=0"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PatientFilters struct {
	SearchTerm string
	Status     PatientStatus
	PatientID  uuid.UUID
}
