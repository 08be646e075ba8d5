package model

import (
	"github.com/google/uuid"
)

// LabFile tracks a laboratory result file uploaded for a patient. The bytes
// live in object storage under FileKey; the row carries the metadata. When
// AdmissionID is set the file is part of that episode's chart and freezes
// with it.
type LabFile struct {
	Base
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	AdmissionID *uuid.UUID `db:"admission_id" json:"admission_id,omitempty"`
	FileName    string     `db:"file_name" json:"file_name"`
	FileKey     string     `db:"file_key" json:"file_key"`
	FileSize    int64      `db:"file_size" json:"file_size"`
	MimeType    string     `db:"mime_type" json:"mime_type,omitempty"`
	Description string     `db:"description" json:"description,omitempty"`
	UploadedBy  string     `db:"uploaded_by" json:"uploaded_by"`
}

type LabFileFilters struct {
	PatientID   uuid.UUID
	AdmissionID uuid.UUID
}
