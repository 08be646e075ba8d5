package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
	"github.com/wardlink/admin-api/pkg/identifier"
)

// AdmissionGate answers whether an admission's chart may still be written
// to. The admission service provides the production implementation; every
// mutation here consults it before any repository call.
type AdmissionGate interface {
	EnsureMutable(ctx context.Context, admissionID uuid.UUID) error
}

// Service manages the chart records that hang off an admission: doctor's
// orders, medications, and progress notes.
type Service struct {
	orders      repository.OrderRepository
	medications repository.MedicationRepository
	notes       repository.NoteRepository
	gate        AdmissionGate
	idGen       *identifier.Generator
}

func NewService(
	orders repository.OrderRepository,
	medications repository.MedicationRepository,
	notes repository.NoteRepository,
	gate AdmissionGate,
	idGen *identifier.Generator,
) *Service {
	return &Service{
		orders:      orders,
		medications: medications,
		notes:       notes,
		gate:        gate,
		idGen:       idGen,
	}
}

func (s *Service) CreateOrder(ctx context.Context, admissionID uuid.UUID, req *model.CreateOrderRequest) (*model.DoctorsOrder, error) {
	if err := s.gate.EnsureMutable(ctx, admissionID); err != nil {
		return nil, err
	}

	code, err := s.idGen.Next(ctx, identifier.PrefixOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order code: %w", err)
	}

	order := &model.DoctorsOrder{
		Base:        model.Base{ID: uuid.New()},
		Code:        code,
		AdmissionID: admissionID,
		OrderedBy:   req.OrderedBy,
		Content:     req.Content,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (s *Service) UpdateOrder(ctx context.Context, id uuid.UUID, req *model.UpdateOrderRequest) (*model.DoctorsOrder, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, order.AdmissionID); err != nil {
		return nil, err
	}

	if req.OrderedBy != nil {
		order.OrderedBy = *req.OrderedBy
	}
	if req.Content != nil {
		order.Content = *req.Content
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, order.AdmissionID); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, admissionID uuid.UUID) ([]*model.DoctorsOrder, error) {
	orders, err := s.orders.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) CreateMedication(ctx context.Context, admissionID uuid.UUID, req *model.CreateMedicationRequest) (*model.Medication, error) {
	if err := s.gate.EnsureMutable(ctx, admissionID); err != nil {
		return nil, err
	}

	code, err := s.idGen.Next(ctx, identifier.PrefixMedication)
	if err != nil {
		return nil, fmt.Errorf("failed to generate medication code: %w", err)
	}

	medication := &model.Medication{
		Base:        model.Base{ID: uuid.New()},
		Code:        code,
		AdmissionID: admissionID,
		DrugName:    req.DrugName,
		Dosage:      req.Dosage,
		Route:       req.Route,
		Frequency:   req.Frequency,
		Remarks:     req.Remarks,
	}
	if err := s.medications.Create(ctx, medication); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return medication, nil
}

func (s *Service) UpdateMedication(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.medications.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, medication.AdmissionID); err != nil {
		return nil, err
	}

	if req.DrugName != nil {
		medication.DrugName = *req.DrugName
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Route != nil {
		medication.Route = *req.Route
	}
	if req.Frequency != nil {
		medication.Frequency = *req.Frequency
	}
	if req.Remarks != nil {
		medication.Remarks = *req.Remarks
	}
	if err := s.medications.Update(ctx, medication); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return medication, nil
}

func (s *Service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	medication, err := s.medications.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get medication: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, medication.AdmissionID); err != nil {
		return err
	}
	return s.medications.Delete(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context, admissionID uuid.UUID) ([]*model.Medication, error) {
	medications, err := s.medications.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

func (s *Service) CreateNote(ctx context.Context, admissionID uuid.UUID, req *model.CreateNoteRequest) (*model.Note, error) {
	if err := s.gate.EnsureMutable(ctx, admissionID); err != nil {
		return nil, err
	}

	code, err := s.idGen.Next(ctx, identifier.PrefixNote)
	if err != nil {
		return nil, fmt.Errorf("failed to generate note code: %w", err)
	}

	note := &model.Note{
		Base:        model.Base{ID: uuid.New()},
		Code:        code,
		AdmissionID: admissionID,
		Author:      req.Author,
		Content:     req.Content,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, req *model.UpdateNoteRequest) (*model.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, note.AdmissionID); err != nil {
		return nil, err
	}

	if req.Author != nil {
		note.Author = *req.Author
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if err := s.gate.EnsureMutable(ctx, note.AdmissionID); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *Service) ListNotes(ctx context.Context, admissionID uuid.UUID) ([]*model.Note, error) {
	notes, err := s.notes.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
