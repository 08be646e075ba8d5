package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
)

// ErrNotScheduled is returned when a transition is attempted on an
// appointment that already left the scheduled state.
var ErrNotScheduled = errors.New("appointment is not in scheduled state")

// Service manages patient appointments. Completed and cancelled
// appointments keep their rows; only stale scheduled ones are swept.
type Service struct {
	repo repository.AppointmentRepository
	now  func() time.Time
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		Base:         model.Base{ID: uuid.New()},
		PatientID:    req.PatientID,
		ScheduledFor: req.ScheduledFor,
		Purpose:      req.Purpose,
		Status:       model.AppointmentStatusScheduled,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment.Status != model.AppointmentStatusScheduled {
		return nil, ErrNotScheduled
	}

	if req.ScheduledFor != nil {
		appointment.ScheduledFor = *req.ScheduledFor
	}
	if req.Purpose != nil {
		appointment.Purpose = *req.Purpose
	}
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

// Complete marks a scheduled appointment as attended.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCompleted, nil)
}

// Cancel marks a scheduled appointment as cancelled, keeping the reason.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	var r *string
	if reason != "" {
		r = &reason
	}
	return s.transition(ctx, id, model.AppointmentStatusCancelled, r)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment.Status != model.AppointmentStatusScheduled {
		return nil, ErrNotScheduled
	}

	appointment.Status = status
	appointment.CancelReason = cancelReason
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// CleanupStale deletes appointments scheduled before the start of the
// current day. Today's appointments are always retained.
func (s *Service) CleanupStale(ctx context.Context) (int64, error) {
	now := s.now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	removed, err := s.repo.DeleteBefore(ctx, startOfToday)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale appointments: %w", err)
	}
	return removed, nil
}
