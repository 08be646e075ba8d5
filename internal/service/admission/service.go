package admission

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
	"github.com/wardlink/admin-api/pkg/identifier"
	"github.com/wardlink/admin-api/pkg/metrics"
)

var (
	// ErrAlreadyDischarged is returned when a discharge is attempted on an
	// admission that has already been discharged. No record is mutated.
	ErrAlreadyDischarged = errors.New("admission is already discharged")

	// ErrAdmissionDischarged is returned by the status gate when a child
	// record mutation targets a discharged admission.
	ErrAdmissionDischarged = errors.New("admission is discharged; its records are read-only")
)

type Service struct {
	repo    repository.AdmissionRepository
	idGen   *identifier.Generator
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService builds the admission service. metrics may be nil when no
// collector is wired, as in the worker binary and tests.
func NewService(repo repository.AdmissionRepository, idGen *identifier.Generator, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		idGen:   idGen,
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) CreateAdmission(ctx context.Context, req *model.CreateAdmissionRequest) (*model.Admission, error) {
	code, err := s.idGen.Next(ctx, identifier.PrefixAdmission)
	if err != nil {
		return nil, fmt.Errorf("failed to generate admission code: %w", err)
	}

	admission := &model.Admission{
		Base:               model.Base{ID: uuid.New()},
		Code:               code,
		PatientID:          req.PatientID,
		AttendingPhysician: req.AttendingPhysician,
		AdmittingDiagnosis: req.AdmittingDiagnosis,
		PHICCategory:       req.PHICCategory,
		RoomNumber:         req.RoomNumber,
		Status:             model.AdmissionStatusAdmitted,
		AdmittedAt:         s.now(),
	}

	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, fmt.Errorf("failed to create admission: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AdmissionsCreated.Inc()
	}
	return admission, nil
}

func (s *Service) GetAdmission(ctx context.Context, id uuid.UUID) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}
	return admission, nil
}

func (s *Service) UpdateAdmission(ctx context.Context, id uuid.UUID, req *model.UpdateAdmissionRequest) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	if admission.Status == model.AdmissionStatusDischarged {
		return nil, ErrAdmissionDischarged
	}

	if req.AttendingPhysician != nil {
		admission.AttendingPhysician = *req.AttendingPhysician
	}
	if req.AdmittingDiagnosis != nil {
		admission.AdmittingDiagnosis = *req.AdmittingDiagnosis
	}
	if req.PHICCategory != nil {
		admission.PHICCategory = *req.PHICCategory
	}
	if req.RoomNumber != nil {
		admission.RoomNumber = *req.RoomNumber
	}
	if req.Status != nil {
		admission.Status = model.AdmissionStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, admission); err != nil {
		return nil, fmt.Errorf("failed to update admission: %w", err)
	}
	return admission, nil
}

func (s *Service) ListAdmissions(ctx context.Context, filters *model.AdmissionFilters) ([]*model.Admission, error) {
	admissions, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}
	return admissions, nil
}

// EnsureMutable is the shared status gate. Every service that mutates
// records hanging off an admission calls this before touching storage.
func (s *Service) EnsureMutable(ctx context.Context, admissionID uuid.UUID) error {
	status, err := s.repo.GetStatus(ctx, admissionID)
	if err != nil {
		return fmt.Errorf("failed to check admission status: %w", err)
	}
	if status == model.AdmissionStatusDischarged {
		if s.metrics != nil {
			s.metrics.GateRefusals.Inc()
		}
		return ErrAdmissionDischarged
	}
	return nil
}

// Discharge closes out an admission: it stamps the discharge fields,
// computes length of stay, and archives a value-copy of the updated row
// into admission history. The update and the archive happen in one
// transaction.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, req *model.DischargeRequest) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	if admission.Status == model.AdmissionStatusDischarged {
		if s.metrics != nil {
			s.metrics.DischargesRejected.Inc()
		}
		return nil, ErrAlreadyDischarged
	}

	dischargedAt := s.now()
	lengthOfStay := LengthOfStayHours(admission.AdmittedAt, dischargedAt)

	admission.Status = model.AdmissionStatusDischarged
	admission.DischargedAt = &dischargedAt
	admission.FinalDiagnosis = &req.FinalDiagnosis
	admission.ICDCode = &req.ICDCode
	admission.ResultStatus = &req.ResultStatus
	admission.ResultCondition = &req.ResultCondition
	admission.LengthOfStayHours = &lengthOfStay

	history := historyFrom(admission)

	if err := s.repo.Discharge(ctx, admission, history); err != nil {
		return nil, fmt.Errorf("failed to discharge admission: %w", err)
	}
	if s.metrics != nil {
		s.metrics.DischargesTotal.Inc()
	}
	return admission, nil
}

func (s *Service) GetHistory(ctx context.Context, admissionID uuid.UUID) (*model.AdmissionHistory, error) {
	history, err := s.repo.GetHistory(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admission history: %w", err)
	}
	return history, nil
}

func (s *Service) ListHistory(ctx context.Context, patientID uuid.UUID) ([]*model.AdmissionHistory, error) {
	history, err := s.repo.ListHistory(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list admission history: %w", err)
	}
	return history, nil
}

// LengthOfStayHours computes the stay duration in hours, rounded to one
// decimal place.
func LengthOfStayHours(admittedAt, dischargedAt time.Time) float64 {
	return math.Round(dischargedAt.Sub(admittedAt).Hours()*10) / 10
}

// historyFrom snapshots the admission after the discharge fields have been
// applied, so the archive reflects post-update values.
func historyFrom(admission *model.Admission) *model.AdmissionHistory {
	return &model.AdmissionHistory{
		ID:                 uuid.New(),
		AdmissionID:        admission.ID,
		Code:               admission.Code,
		PatientID:          admission.PatientID,
		AttendingPhysician: admission.AttendingPhysician,
		AdmittingDiagnosis: admission.AdmittingDiagnosis,
		PHICCategory:       admission.PHICCategory,
		RoomNumber:         admission.RoomNumber,
		Status:             admission.Status,
		AdmittedAt:         admission.AdmittedAt,
		DischargedAt:       *admission.DischargedAt,
		FinalDiagnosis:     *admission.FinalDiagnosis,
		ICDCode:            *admission.ICDCode,
		ResultStatus:       *admission.ResultStatus,
		ResultCondition:    *admission.ResultCondition,
		LengthOfStayHours:  *admission.LengthOfStayHours,
		CreatedAt:          *admission.DischargedAt,
	}
}
