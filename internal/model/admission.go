package model

import (
	"time"

	"github.com/google/uuid"
)

type AdmissionStatus string

const (
	AdmissionStatusPending    AdmissionStatus = "pending"
	AdmissionStatusAdmitted   AdmissionStatus = "admitted"
	AdmissionStatusDischarged AdmissionStatus = "discharged"
	AdmissionStatusCancelled  AdmissionStatus = "cancelled"
)

type ResultStatus string

const (
	ResultStatusDelivered ResultStatus = "delivered"
	ResultStatusReferred  ResultStatus = "referred"
	ResultStatusDied      ResultStatus = "died"
)

type ResultCondition string

const (
	ResultConditionImproved   ResultCondition = "improved"
	ResultConditionUnimproved ResultCondition = "unimproved"
)

// Admission is one hospitalization episode for a patient, from intake to
// discharge. Once status is discharged the episode and its child records
// are frozen.
type Admission struct {
	Base
	Code               string           `db:"code" json:"code"`
	PatientID          uuid.UUID        `db:"patient_id" json:"patient_id"`
	AttendingPhysician string           `db:"attending_physician" json:"attending_physician"`
	AdmittingDiagnosis string           `db:"admitting_diagnosis" json:"admitting_diagnosis"`
	PHICCategory       string           `db:"phic_category" json:"phic_category,omitempty"`
	RoomNumber         string           `db:"room_number" json:"room_number,omitempty"`
	Status             AdmissionStatus  `db:"status" json:"status"`
	AdmittedAt         time.Time        `db:"admitted_at" json:"admitted_at"`
	DischargedAt       *time.Time       `db:"discharged_at" json:"discharged_at,omitempty"`
	FinalDiagnosis     *string          `db:"final_diagnosis" json:"final_diagnosis,omitempty"`
	ICDCode            *string          `db:"icd_code" json:"icd_code,omitempty"`
	ResultStatus       *ResultStatus    `db:"result_status" json:"result_status,omitempty"`
	ResultCondition    *ResultCondition `db:"result_condition" json:"result_condition,omitempty"`
	LengthOfStayHours  *float64         `db:"length_of_stay_hours" json:"length_of_stay_hours,omitempty"`
}

// AdmissionHistory is a point-in-time value-copy of an Admission taken at
// discharge. Append-only; later edits to the source admission do not
// propagate.
type AdmissionHistory struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	AdmissionID        uuid.UUID       `db:"admission_id" json:"admission_id"`
	Code               string          `db:"code" json:"code"`
	PatientID          uuid.UUID       `db:"patient_id" json:"patient_id"`
	AttendingPhysician string          `db:"attending_physician" json:"attending_physician"`
	AdmittingDiagnosis string          `db:"admitting_diagnosis" json:"admitting_diagnosis"`
	PHICCategory       string          `db:"phic_category" json:"phic_category,omitempty"`
	RoomNumber         string          `db:"room_number" json:"room_number,omitempty"`
	Status             AdmissionStatus `db:"status" json:"status"`
	AdmittedAt         time.Time       `db:"admitted_at" json:"admitted_at"`
	DischargedAt       time.Time       `db:"discharged_at" json:"discharged_at"`
	FinalDiagnosis     string          `db:"final_diagnosis" json:"final_diagnosis"`
	ICDCode            string          `db:"icd_code" json:"icd_code"`
	ResultStatus       ResultStatus    `db:"result_status" json:"result_status"`
	ResultCondition    ResultCondition `db:"result_condition" json:"result_condition"`
	LengthOfStayHours  float64         `db:"length_of_stay_hours" json:"length_of_stay_hours"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
}

type CreateAdmissionRequest struct {
	PatientID          uuid.UUID `json:"patient_id" binding:"required"`
	AttendingPhysician string    `json:"attending_physician" binding:"required"`
	AdmittingDiagnosis string    `json:"admitting_diagnosis" binding:"required"`
	PHICCategory       string    `json:"phic_category"`
	RoomNumber         string    `json:"room_number"`
}

type UpdateAdmissionRequest struct {
	AttendingPhysician *string `json:"attending_physician"`
	AdmittingDiagnosis *string `json:"admitting_diagnosis"`
	PHICCategory       *string `json:"phic_category"`
	RoomNumber         *string `json:"room_number"`
	Status             *string `json:"status" binding:"omitempty,oneof=pending admitted cancelled"`
}

type DischargeRequest struct {
	FinalDiagnosis  string          `json:"final_diagnosis" binding:"required"`
	ICDCode         string          `json:"icd_code" binding:"required"`
	ResultStatus    ResultStatus    `json:"result_status" binding:"required,oneof=delivered referred died"`
	ResultCondition ResultCondition `json:"result_condition" binding:"required,oneof=improved unimproved"`
}

type AdmissionFilters struct {
	PatientID uuid.UUID
	Status    AdmissionStatus
}
