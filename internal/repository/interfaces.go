package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		// Delete removes the patient together with its appointments and
		// lab file rows in one transaction.
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	AdmissionRepository interface {
		Create(ctx context.Context, admission *model.Admission) error
		Get(ctx context.Context, id uuid.UUID) (*model.Admission, error)
		GetStatus(ctx context.Context, id uuid.UUID) (model.AdmissionStatus, error)
		Update(ctx context.Context, admission *model.Admission) error
		List(ctx context.Context, filters *model.AdmissionFilters) ([]*model.Admission, error)
		// Discharge applies the discharge update and inserts the history
		// value-copy in a single transaction.
		Discharge(ctx context.Context, admission *model.Admission, history *model.AdmissionHistory) error
		GetHistory(ctx context.Context, admissionID uuid.UUID) (*model.AdmissionHistory, error)
		ListHistory(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionHistory, error)
	}

	OrderRepository interface {
		Create(ctx context.Context, order *model.DoctorsOrder) error
		Get(ctx context.Context, id uuid.UUID) (*model.DoctorsOrder, error)
		Update(ctx context.Context, order *model.DoctorsOrder) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByAdmission(ctx context.Context, admissionID uuid.UUID) ([]*model.DoctorsOrder, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByAdmission(ctx context.Context, admissionID uuid.UUID) ([]*model.Medication, error)
	}

	NoteRepository interface {
		Create(ctx context.Context, note *model.Note) error
		Get(ctx context.Context, id uuid.UUID) (*model.Note, error)
		Update(ctx context.Context, note *model.Note) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByAdmission(ctx context.Context, admissionID uuid.UUID) ([]*model.Note, error)
	}

	LabFileRepository interface {
		Create(ctx context.Context, file *model.LabFile) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabFile, error)
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.LabFileFilters) ([]*model.LabFile, error)
	}

	PrenatalRepository interface {
		Create(ctx context.Context, prenatal *model.Prenatal) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prenatal, error)
		Update(ctx context.Context, prenatal *model.Prenatal) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prenatal, error)

		CreateVisit(ctx context.Context, visit *model.PrenatalVisit) error
		UpdateVisit(ctx context.Context, visit *model.PrenatalVisit) error
		DeleteVisit(ctx context.Context, id uuid.UUID) error
		ListVisits(ctx context.Context, prenatalID uuid.UUID) ([]*model.PrenatalVisit, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListScheduled(ctx context.Context) ([]*model.Appointment, error)
		// DeleteBefore removes still-scheduled appointments dated strictly
		// before cutoff. Completed and cancelled rows are never touched.
		DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Update(ctx context.Context, notification *model.Notification) error
		List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
