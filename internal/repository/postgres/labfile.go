package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

type labFileRepository struct {
	BaseRepository
}

func NewLabFileRepository(base BaseRepository) repository.LabFileRepository {
	return &labFileRepository{base}
}

func (r *labFileRepository) Create(ctx context.Context, file *model.LabFile) error {
	query := `
		INSERT INTO lab_files (
			id, patient_id, admission_id, file_name, file_key, file_size,
			mime_type, description, uploaded_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	file.CreatedAt = time.Now()
	file.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.PatientID,
		file.AdmissionID,
		file.FileName,
		file.FileKey,
		file.FileSize,
		file.MimeType,
		file.Description,
		file.UploadedBy,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab file: %w", err)
	}
	return nil
}

func (r *labFileRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabFile, error) {
	var file model.LabFile
	if err := r.db.GetContext(ctx, &file, `SELECT * FROM lab_files WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get lab file: %w", err)
	}
	return &file, nil
}

func (r *labFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM lab_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lab file: %w", err)
	}
	return nil
}

func (r *labFileRepository) List(ctx context.Context, filters *model.LabFileFilters) ([]*model.LabFile, error) {
	query := `SELECT * FROM lab_files WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", len(args)+1)
			args = append(args, filters.PatientID)
		}
		if filters.AdmissionID != uuid.Nil {
			query += fmt.Sprintf(" AND admission_id = $%d", len(args)+1)
			args = append(args, filters.AdmissionID)
		}
	}

	query += " ORDER BY created_at DESC"

	var files []*model.LabFile
	if err := r.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list lab files: %w", err)
	}
	return files, nil
}
