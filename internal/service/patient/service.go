package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
	"github.com/wardlink/admin-api/pkg/identifier"
)

// FilePurger removes a patient's stored lab file objects. The lab file
// service provides the production implementation.
type FilePurger interface {
	PurgeObjects(ctx context.Context, patientID uuid.UUID) error
}

// Service manages the patient roster.
type Service struct {
	repo  repository.PatientRepository
	idGen *identifier.Generator
	files FilePurger
}

func NewService(repo repository.PatientRepository, idGen *identifier.Generator, files FilePurger) *Service {
	return &Service{repo: repo, idGen: idGen, files: files}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	code, err := s.idGen.Next(ctx, identifier.PrefixPatient)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patient code: %w", err)
	}

	patient := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		Code:        code,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		CivilStatus: req.CivilStatus,
		Gravidity:   req.Gravidity,
		Parity:      req.Parity,
		Status:      model.PatientStatusActive,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		patient.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.CivilStatus != nil {
		patient.CivilStatus = *req.CivilStatus
	}
	if req.Gravidity != nil {
		patient.Gravidity = *req.Gravidity
	}
	if req.Parity != nil {
		patient.Parity = *req.Parity
	}
	if req.Status != nil {
		patient.Status = model.PatientStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// DeletePatient removes the patient and, in the same transaction, the
// patient's appointments and lab file rows. Stored lab file objects are
// purged first, while their rows still exist to list the keys. Admission
// records and their history are retained.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}
	if s.files != nil {
		if err := s.files.PurgeObjects(ctx, id); err != nil {
			return fmt.Errorf("failed to purge patient lab files: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
