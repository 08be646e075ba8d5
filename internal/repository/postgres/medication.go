package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

type medicationRepository struct {
	BaseRepository
}

func NewMedicationRepository(base BaseRepository) repository.MedicationRepository {
	return &medicationRepository{base}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (
			id, code, admission_id, drug_name, dosage, route, frequency,
			remarks, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	medication.CreatedAt = time.Now()
	medication.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		medication.ID,
		medication.Code,
		medication.AdmissionID,
		medication.DrugName,
		medication.Dosage,
		medication.Route,
		medication.Frequency,
		medication.Remarks,
		medication.CreatedAt,
		medication.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	var medication model.Medication
	if err := r.db.GetContext(ctx, &medication, `SELECT * FROM medications WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	query := `
		UPDATE medications SET
			drug_name = $1, dosage = $2, route = $3, frequency = $4,
			remarks = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		medication.DrugName,
		medication.Dosage,
		medication.Route,
		medication.Frequency,
		medication.Remarks,
		time.Now(),
		medication.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) ListByAdmission(ctx context.Context, admissionID uuid.UUID) ([]*model.Medication, error) {
	query := `SELECT * FROM medications WHERE admission_id = $1 ORDER BY created_at DESC`
	var medications []*model.Medication
	if err := r.db.SelectContext(ctx, &medications, query, admissionID); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}
