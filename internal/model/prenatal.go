package model

import (
	"time"

	"github.com/google/uuid"
)

type PrenatalStatus string

const (
	PrenatalStatusOngoing   PrenatalStatus = "ongoing"
	PrenatalStatusCompleted PrenatalStatus = "completed"
)

// Prenatal is a pregnancy-tracking episode distinct from, but linked to,
// a patient.
type Prenatal struct {
	Base
	PatientID             uuid.UUID      `db:"patient_id" json:"patient_id"`
	LastMenstrualPeriod   time.Time      `db:"last_menstrual_period" json:"last_menstrual_period"`
	ExpectedDeliveryDate  time.Time      `db:"expected_delivery_date" json:"expected_delivery_date"`
	AttendingPhysician    string         `db:"attending_physician" json:"attending_physician"`
	Status                PrenatalStatus `db:"status" json:"status"`
}

// PrenatalVisit holds one repeatable diagnosis/treatment entry on a
// prenatal episode.
type PrenatalVisit struct {
	Base
	PrenatalID uuid.UUID `db:"prenatal_id" json:"prenatal_id"`
	VisitDate  time.Time `db:"visit_date" json:"visit_date"`
	Diagnosis  string    `db:"diagnosis" json:"diagnosis"`
	Treatment  string    `db:"treatment" json:"treatment"`
	Remarks    string    `db:"remarks" json:"remarks,omitempty"`
}

type CreatePrenatalRequest struct {
	PatientID            uuid.UUID `json:"patient_id" binding:"required"`
	LastMenstrualPeriod  time.Time `json:"last_menstrual_period" binding:"required"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date" binding:"required"`
	AttendingPhysician   string    `json:"attending_physician" binding:"required"`
}

type UpdatePrenatalRequest struct {
	LastMenstrualPeriod  *time.Time `json:"last_menstrual_period"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	AttendingPhysician   *string    `json:"attending_physician"`
	Status               *string    `json:"status" binding:"omitempty,oneof=ongoing completed"`
}

type CreatePrenatalVisitRequest struct {
	VisitDate time.Time `json:"visit_date" binding:"required"`
	Diagnosis string    `json:"diagnosis" binding:"required"`
	Treatment string    `json:"treatment" binding:"required"`
	Remarks   string    `json:"remarks"`
}

type UpdatePrenatalVisitRequest struct {
	VisitDate *time.Time `json:"visit_date"`
	Diagnosis *string    `json:"diagnosis"`
	Treatment *string    `json:"treatment"`
	Remarks   *string    `json:"remarks"`
}
