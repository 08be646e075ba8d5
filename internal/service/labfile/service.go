package labfile

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
	"github.com/wardlink/admin-api/pkg/storage"
)

const presignExpiry = 15 * time.Minute

// AdmissionGate answers whether an admission's chart may still be written to.
type AdmissionGate interface {
	EnsureMutable(ctx context.Context, admissionID uuid.UUID) error
}

// Service stores lab result files: metadata rows in the database, bytes in
// object storage.
type Service struct {
	repo  repository.LabFileRepository
	store storage.ObjectStore
	gate  AdmissionGate
}

func NewService(repo repository.LabFileRepository, store storage.ObjectStore, gate AdmissionGate) *Service {
	return &Service{repo: repo, store: store, gate: gate}
}

// UploadRequest carries the file stream plus its metadata.
type UploadRequest struct {
	PatientID   uuid.UUID
	AdmissionID *uuid.UUID
	FileName    string
	FileSize    int64
	MimeType    string
	Description string
	UploadedBy  string
	Body        io.Reader
}

// Upload streams the file to object storage and records its metadata. Files
// attached to an admission are refused once that admission is discharged.
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*model.LabFile, error) {
	if req.AdmissionID != nil {
		if err := s.gate.EnsureMutable(ctx, *req.AdmissionID); err != nil {
			return nil, err
		}
	}

	id := uuid.New()
	key := objectKey(req.PatientID, id, req.FileName)

	if err := s.store.Put(ctx, key, req.Body, req.MimeType); err != nil {
		return nil, fmt.Errorf("failed to store lab file: %w", err)
	}

	file := &model.LabFile{
		Base:        model.Base{ID: id},
		PatientID:   req.PatientID,
		AdmissionID: req.AdmissionID,
		FileName:    req.FileName,
		FileKey:     key,
		FileSize:    req.FileSize,
		MimeType:    req.MimeType,
		Description: req.Description,
		UploadedBy:  req.UploadedBy,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		// best effort cleanup of the orphaned object
		_ = s.store.Remove(ctx, key)
		return nil, fmt.Errorf("failed to record lab file: %w", err)
	}
	return file, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.LabFile, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lab file: %w", err)
	}
	return file, nil
}

// Download returns the file's metadata together with the stored byte stream.
// The caller owns closing the reader.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (*model.LabFile, io.ReadCloser, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get lab file: %w", err)
	}
	body, err := s.store.Get(ctx, file.FileKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch lab file: %w", err)
	}
	return file, body, nil
}

// PresignDownload returns a short-lived direct URL for the stored object.
func (s *Service) PresignDownload(ctx context.Context, id uuid.UUID) (string, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get lab file: %w", err)
	}
	url, err := s.store.PresignGet(ctx, file.FileKey, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign lab file: %w", err)
	}
	return url, nil
}

// Delete removes the metadata row and the stored object. Deletes are refused
// for files attached to a discharged admission.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get lab file: %w", err)
	}
	if file.AdmissionID != nil {
		if err := s.gate.EnsureMutable(ctx, *file.AdmissionID); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lab file: %w", err)
	}
	if err := s.store.Remove(ctx, file.FileKey); err != nil {
		return fmt.Errorf("failed to remove stored lab file: %w", err)
	}
	return nil
}

// PurgeObjects removes the stored objects for every lab file belonging to
// the patient. The metadata rows are removed by the patient delete cascade;
// individual object removals are best effort.
func (s *Service) PurgeObjects(ctx context.Context, patientID uuid.UUID) error {
	files, err := s.repo.List(ctx, &model.LabFileFilters{PatientID: patientID})
	if err != nil {
		return fmt.Errorf("failed to list lab files for purge: %w", err)
	}
	for _, file := range files {
		s.store.Remove(ctx, file.FileKey)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.LabFileFilters) ([]*model.LabFile, error) {
	files, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab files: %w", err)
	}
	return files, nil
}

func objectKey(patientID, fileID uuid.UUID, fileName string) string {
	return path.Join("lab-files", patientID.String(), fileID.String()+path.Ext(fileName))
}
