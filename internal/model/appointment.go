package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	Base
	PatientID    uuid.UUID         `db:"patient_id" json:"patient_id"`
	ScheduledFor time.Time         `db:"scheduled_for" json:"scheduled_for"`
	Purpose      string            `db:"purpose" json:"purpose"`
	Status       AppointmentStatus `db:"status" json:"status"`
	CancelReason *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

type CreateAppointmentRequest struct {
	PatientID    uuid.UUID `json:"patient_id" binding:"required"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
	Purpose      string    `json:"purpose" binding:"required"`
}

type UpdateAppointmentRequest struct {
	ScheduledFor *time.Time `json:"scheduled_for"`
	Purpose      *string    `json:"purpose"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
}
