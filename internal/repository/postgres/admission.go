package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

type admissionRepository struct {
	BaseRepository
}

func NewAdmissionRepository(base BaseRepository) repository.AdmissionRepository {
	return &admissionRepository{base}
}

func (r *admissionRepository) Create(ctx context.Context, admission *model.Admission) error {
	query := `
		INSERT INTO admissions (
			id, code, patient_id, attending_physician, admitting_diagnosis,
			phic_category, room_number, status, admitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	admission.CreatedAt = time.Now()
	admission.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		admission.ID,
		admission.Code,
		admission.PatientID,
		admission.AttendingPhysician,
		admission.AdmittingDiagnosis,
		admission.PHICCategory,
		admission.RoomNumber,
		admission.Status,
		admission.AdmittedAt,
		admission.CreatedAt,
		admission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	query := `SELECT * FROM admissions WHERE id = $1`
	var admission model.Admission
	if err := r.db.GetContext(ctx, &admission, query, id); err != nil {
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}
	return &admission, nil
}

func (r *admissionRepository) GetStatus(ctx context.Context, id uuid.UUID) (model.AdmissionStatus, error) {
	var status model.AdmissionStatus
	if err := r.db.GetContext(ctx, &status, `SELECT status FROM admissions WHERE id = $1`, id); err != nil {
		return "", fmt.Errorf("failed to get admission status: %w", err)
	}
	return status, nil
}

func (r *admissionRepository) Update(ctx context.Context, admission *model.Admission) error {
	query := `
		UPDATE admissions SET
			attending_physician = $1, admitting_diagnosis = $2,
			phic_category = $3, room_number = $4, status = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		admission.AttendingPhysician,
		admission.AdmittingDiagnosis,
		admission.PHICCategory,
		admission.RoomNumber,
		admission.Status,
		time.Now(),
		admission.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) List(ctx context.Context, filters *model.AdmissionFilters) ([]*model.Admission, error) {
	query := `SELECT * FROM admissions WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", len(args)+1)
			args = append(args, filters.PatientID)
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", len(args)+1)
			args = append(args, filters.Status)
		}
	}

	query += " ORDER BY admitted_at DESC"

	var admissions []*model.Admission
	if err := r.db.SelectContext(ctx, &admissions, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}
	return admissions, nil
}

// Discharge updates the admission row and appends the history value-copy in
// one transaction, so a discharged admission can never exist without its
// archival record.
func (r *admissionRepository) Discharge(ctx context.Context, admission *model.Admission, history *model.AdmissionHistory) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		updateQuery := `
			UPDATE admissions SET
				status = $1, discharged_at = $2, final_diagnosis = $3,
				icd_code = $4, result_status = $5, result_condition = $6,
				length_of_stay_hours = $7, updated_at = $8
			WHERE id = $9
		`
		if _, err := tx.ExecContext(ctx, updateQuery,
			admission.Status,
			admission.DischargedAt,
			admission.FinalDiagnosis,
			admission.ICDCode,
			admission.ResultStatus,
			admission.ResultCondition,
			admission.LengthOfStayHours,
			time.Now(),
			admission.ID,
		); err != nil {
			return fmt.Errorf("failed to update admission for discharge: %w", err)
		}

		insertQuery := `
			INSERT INTO admission_history (
				id, admission_id, code, patient_id, attending_physician,
				admitting_diagnosis, phic_category, room_number, status,
				admitted_at, discharged_at, final_diagnosis, icd_code,
				result_status, result_condition, length_of_stay_hours, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`
		if _, err := tx.ExecContext(ctx, insertQuery,
			history.ID,
			history.AdmissionID,
			history.Code,
			history.PatientID,
			history.AttendingPhysician,
			history.AdmittingDiagnosis,
			history.PHICCategory,
			history.RoomNumber,
			history.Status,
			history.AdmittedAt,
			history.DischargedAt,
			history.FinalDiagnosis,
			history.ICDCode,
			history.ResultStatus,
			history.ResultCondition,
			history.LengthOfStayHours,
			history.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert admission history: %w", err)
		}

		return nil
	})
}

func (r *admissionRepository) GetHistory(ctx context.Context, admissionID uuid.UUID) (*model.AdmissionHistory, error) {
	query := `SELECT * FROM admission_history WHERE admission_id = $1`
	var history model.AdmissionHistory
	if err := r.db.GetContext(ctx, &history, query, admissionID); err != nil {
		return nil, fmt.Errorf("failed to get admission history: %w", err)
	}
	return &history, nil
}

func (r *admissionRepository) ListHistory(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionHistory, error) {
	query := `SELECT * FROM admission_history WHERE patient_id = $1 ORDER BY discharged_at DESC`
	var history []*model.AdmissionHistory
	if err := r.db.SelectContext(ctx, &history, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list admission history: %w", err)
	}
	return history, nil
}
