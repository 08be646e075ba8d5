package prenatal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

// Service manages prenatal episodes and their visit entries. Episodes stay
// editable regardless of admission state; they track the pregnancy, not a
// hospital stay.
type Service struct {
	repo repository.PrenatalRepository
}

func NewService(repo repository.PrenatalRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePrenatal(ctx context.Context, req *model.CreatePrenatalRequest) (*model.Prenatal, error) {
	prenatal := &model.Prenatal{
		Base:                 model.Base{ID: uuid.New()},
		PatientID:            req.PatientID,
		LastMenstrualPeriod:  req.LastMenstrualPeriod,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		AttendingPhysician:   req.AttendingPhysician,
		Status:               model.PrenatalStatusOngoing,
	}
	if err := s.repo.Create(ctx, prenatal); err != nil {
		return nil, fmt.Errorf("failed to create prenatal record: %w", err)
	}
	return prenatal, nil
}

func (s *Service) GetPrenatal(ctx context.Context, id uuid.UUID) (*model.Prenatal, error) {
	prenatal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prenatal record: %w", err)
	}
	return prenatal, nil
}

func (s *Service) UpdatePrenatal(ctx context.Context, id uuid.UUID, req *model.UpdatePrenatalRequest) (*model.Prenatal, error) {
	prenatal, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get prenatal record: %w", err)
	}

	if req.LastMenstrualPeriod != nil {
		prenatal.LastMenstrualPeriod = *req.LastMenstrualPeriod
	}
	if req.ExpectedDeliveryDate != nil {
		prenatal.ExpectedDeliveryDate = *req.ExpectedDeliveryDate
	}
	if req.AttendingPhysician != nil {
		prenatal.AttendingPhysician = *req.AttendingPhysician
	}
	if req.Status != nil {
		prenatal.Status = model.PrenatalStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, prenatal); err != nil {
		return nil, fmt.Errorf("failed to update prenatal record: %w", err)
	}
	return prenatal, nil
}

func (s *Service) DeletePrenatal(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("failed to get prenatal record: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prenatal record: %w", err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Prenatal, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prenatal records: %w", err)
	}
	return records, nil
}

func (s *Service) AddVisit(ctx context.Context, prenatalID uuid.UUID, req *model.CreatePrenatalVisitRequest) (*model.PrenatalVisit, error) {
	if _, err := s.repo.Get(ctx, prenatalID); err != nil {
		return nil, fmt.Errorf("failed to get prenatal record: %w", err)
	}

	visit := &model.PrenatalVisit{
		Base:       model.Base{ID: uuid.New()},
		PrenatalID: prenatalID,
		VisitDate:  req.VisitDate,
		Diagnosis:  req.Diagnosis,
		Treatment:  req.Treatment,
		Remarks:    req.Remarks,
	}
	if err := s.repo.CreateVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create prenatal visit: %w", err)
	}
	return visit, nil
}

func (s *Service) UpdateVisit(ctx context.Context, prenatalID, visitID uuid.UUID, req *model.UpdatePrenatalVisitRequest) (*model.PrenatalVisit, error) {
	visits, err := s.repo.ListVisits(ctx, prenatalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prenatal visits: %w", err)
	}
	var visit *model.PrenatalVisit
	for _, v := range visits {
		if v.ID == visitID {
			visit = v
			break
		}
	}
	if visit == nil {
		return nil, fmt.Errorf("prenatal visit %s not found", visitID)
	}

	if req.VisitDate != nil {
		visit.VisitDate = *req.VisitDate
	}
	if req.Diagnosis != nil {
		visit.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		visit.Treatment = *req.Treatment
	}
	if req.Remarks != nil {
		visit.Remarks = *req.Remarks
	}

	if err := s.repo.UpdateVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to update prenatal visit: %w", err)
	}
	return visit, nil
}

func (s *Service) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteVisit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete prenatal visit: %w", err)
	}
	return nil
}

func (s *Service) ListVisits(ctx context.Context, prenatalID uuid.UUID) ([]*model.PrenatalVisit, error) {
	visits, err := s.repo.ListVisits(ctx, prenatalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prenatal visits: %w", err)
	}
	return visits, nil
}
