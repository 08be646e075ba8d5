package model

import (
	"github.com/google/uuid"
)

// RecordType identifies the chart record families that hang off an admission.
type RecordType string

const (
	RecordTypeOrder      RecordType = "doctors_order"
	RecordTypeMedication RecordType = "medication"
	RecordTypeNote       RecordType = "note"
)

// DoctorsOrder is a physician's order tied to an admission.
type DoctorsOrder struct {
	Base
	Code        string    `db:"code" json:"code"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	OrderedBy   string    `db:"ordered_by" json:"ordered_by"`
	Content     string    `db:"content" json:"content"`
}

// Medication records a drug given during an admission.
type Medication struct {
	Base
	Code        string    `db:"code" json:"code"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	DrugName    string    `db:"drug_name" json:"drug_name"`
	Dosage      string    `db:"dosage" json:"dosage"`
	Route       string    `db:"route" json:"route"`
	Frequency   string    `db:"frequency" json:"frequency"`
	Remarks     string    `db:"remarks" json:"remarks,omitempty"`
}

// Note is a free-text progress note tied to an admission.
type Note struct {
	Base
	Code        string    `db:"code" json:"code"`
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	Author      string    `db:"author" json:"author"`
	Content     string    `db:"content" json:"content"`
}

type CreateOrderRequest struct {
	OrderedBy string `json:"ordered_by" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type UpdateOrderRequest struct {
	OrderedBy *string `json:"ordered_by"`
	Content   *string `json:"content"`
}

type CreateMedicationRequest struct {
	DrugName  string `json:"drug_name" binding:"required"`
	Dosage    string `json:"dosage" binding:"required"`
	Route     string `json:"route" binding:"required"`
	Frequency string `json:"frequency" binding:"required"`
	Remarks   string `json:"remarks"`
}

type UpdateMedicationRequest struct {
	DrugName  *string `json:"drug_name"`
	Dosage    *string `json:"dosage"`
	Route     *string `json:"route"`
	Frequency *string `json:"frequency"`
	Remarks   *string `json:"remarks"`
}

type CreateNoteRequest struct {
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateNoteRequest struct {
	Author  *string `json:"author"`
	Content *string `json:"content"`
}
