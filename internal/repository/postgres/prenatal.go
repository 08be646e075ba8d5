package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

type prenatalRepository struct {
	BaseRepository
}

func NewPrenatalRepository(base BaseRepository) repository.PrenatalRepository {
	return &prenatalRepository{base}
}

func (r *prenatalRepository) Create(ctx context.Context, prenatal *model.Prenatal) error {
	query := `
		INSERT INTO prenatals (
			id, patient_id, last_menstrual_period, expected_delivery_date,
			attending_physician, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	prenatal.CreatedAt = time.Now()
	prenatal.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		prenatal.ID,
		prenatal.PatientID,
		prenatal.LastMenstrualPeriod,
		prenatal.ExpectedDeliveryDate,
		prenatal.AttendingPhysician,
		prenatal.Status,
		prenatal.CreatedAt,
		prenatal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prenatal: %w", err)
	}
	return nil
}

func (r *prenatalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prenatal, error) {
	var prenatal model.Prenatal
	if err := r.db.GetContext(ctx, &prenatal, `SELECT * FROM prenatals WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get prenatal: %w", err)
	}
	return &prenatal, nil
}

func (r *prenatalRepository) Update(ctx context.Context, prenatal *model.Prenatal) error {
	query := `
		UPDATE prenatals SET
			last_menstrual_period = $1, expected_delivery_date = $2,
			attending_physician = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		prenatal.LastMenstrualPeriod,
		prenatal.ExpectedDeliveryDate,
		prenatal.AttendingPhysician,
		prenatal.Status,
		time.Now(),
		prenatal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prenatal: %w", err)
	}
	return nil
}

func (r *prenatalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prenatals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prenatal: %w", err)
	}
	return nil
}

func (r *prenatalRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prenatal, error) {
	query := `SELECT * FROM prenatals WHERE patient_id = $1 ORDER BY created_at DESC`
	var prenatals []*model.Prenatal
	if err := r.db.SelectContext(ctx, &prenatals, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prenatals: %w", err)
	}
	return prenatals, nil
}

func (r *prenatalRepository) CreateVisit(ctx context.Context, visit *model.PrenatalVisit) error {
	query := `
		INSERT INTO prenatal_visits (
			id, prenatal_id, visit_date, diagnosis, treatment, remarks,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		visit.ID,
		visit.PrenatalID,
		visit.VisitDate,
		visit.Diagnosis,
		visit.Treatment,
		visit.Remarks,
		visit.CreatedAt,
		visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prenatal visit: %w", err)
	}
	return nil
}

func (r *prenatalRepository) UpdateVisit(ctx context.Context, visit *model.PrenatalVisit) error {
	query := `
		UPDATE prenatal_visits SET
			visit_date = $1, diagnosis = $2, treatment = $3, remarks = $4,
			updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		visit.VisitDate,
		visit.Diagnosis,
		visit.Treatment,
		visit.Remarks,
		time.Now(),
		visit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prenatal visit: %w", err)
	}
	return nil
}

func (r *prenatalRepository) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prenatal_visits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prenatal visit: %w", err)
	}
	return nil
}

func (r *prenatalRepository) ListVisits(ctx context.Context, prenatalID uuid.UUID) ([]*model.PrenatalVisit, error) {
	query := `SELECT * FROM prenatal_visits WHERE prenatal_id = $1 ORDER BY visit_date DESC`
	var visits []*model.PrenatalVisit
	if err := r.db.SelectContext(ctx, &visits, query, prenatalID); err != nil {
		return nil, fmt.Errorf("failed to list prenatal visits: %w", err)
	}
	return visits, nil
}
