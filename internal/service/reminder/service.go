package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/repository"
	"github.com/wardlink/admin-api/internal/service/notification"
	"github.com/wardlink/admin-api/pkg/logger"
)

const (
	// WindowDay fires when the appointment is exactly one calendar day out.
	WindowDay = "day"
	// WindowHour fires when the appointment is one hour out on the same day.
	WindowHour = "hour"
)

// Notifier records and dispatches a notification.
type Notifier interface {
	Notify(ctx context.Context, req *notification.NotifyRequest) (*model.Notification, error)
}

// PatientLookup resolves a patient for reminder addressing.
type PatientLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
}

// Service scans scheduled appointments and emits day-before and hour-before
// reminders. A per-appointment, per-window marker in the cache suppresses
// repeats; markers expire at the end of the current calendar day so the next
// day's scan starts clean.
type Service struct {
	appointments repository.AppointmentRepository
	patients     PatientLookup
	notifier     Notifier
	sent         *gocache.Cache
	logger       *logger.Logger
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	patients PatientLookup,
	notifier Notifier,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		notifier:     notifier,
		sent:         gocache.New(gocache.NoExpiration, 10*time.Minute),
		logger:       log,
		now:          time.Now,
	}
}

// ScanResult reports what one pass produced.
type ScanResult struct {
	Scanned      int
	Sent         int
	Suppressed   int
	SentByWindow map[string]int
}

// Scan walks all scheduled appointments once and sends any due reminders.
func (s *Service) Scan(ctx context.Context) (*ScanResult, error) {
	appointments, err := s.appointments.ListScheduled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled appointments: %w", err)
	}

	now := s.now()
	result := &ScanResult{Scanned: len(appointments), SentByWindow: make(map[string]int)}
	for _, appointment := range appointments {
		window, due := dueWindow(now, appointment.ScheduledFor)
		if !due {
			continue
		}

		marker := markerKey(window, appointment.ID)
		if _, seen := s.sent.Get(marker); seen {
			result.Suppressed++
			continue
		}

		if err := s.remind(ctx, appointment, window); err != nil {
			s.logger.Error(err, "failed to send appointment reminder",
				"appointment_id", appointment.ID.String(),
				"window", window)
			continue
		}

		s.sent.Set(marker, true, untilEndOfDay(now))
		result.Sent++
		result.SentByWindow[window]++
	}
	return result, nil
}

// dueWindow reports which reminder window, if any, the appointment falls in
// right now.
func dueWindow(now, scheduledFor time.Time) (string, bool) {
	ny, nm, nd := now.Date()
	ay, am, ad := scheduledFor.Date()

	tomorrow := now.AddDate(0, 0, 1)
	ty, tm, td := tomorrow.Date()
	if ay == ty && am == tm && ad == td {
		return WindowDay, true
	}

	if ay == ny && am == nm && ad == nd && scheduledFor.Hour() == now.Hour()+1 {
		return WindowHour, true
	}
	return "", false
}

func (s *Service) remind(ctx context.Context, appointment *model.Appointment, window string) error {
	patient, err := s.patients.Get(ctx, appointment.PatientID)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}

	subject, body := reminderMessage(patient, appointment, window)

	patientID := appointment.PatientID
	_, err = s.notifier.Notify(ctx, &notification.NotifyRequest{
		PatientID: &patientID,
		Audience:  model.AudienceAdmin,
		Channel:   "inapp",
		Subject:   subject,
		Content:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to notify admin: %w", err)
	}

	channel := "inapp"
	recipient := ""
	if patient.Email != "" {
		channel = "email"
		recipient = patient.Email
	}
	_, err = s.notifier.Notify(ctx, &notification.NotifyRequest{
		PatientID: &patientID,
		Audience:  model.AudiencePatient,
		Channel:   channel,
		Subject:   subject,
		Content:   body,
		Recipient: recipient,
	})
	if err != nil {
		return fmt.Errorf("failed to notify patient: %w", err)
	}
	return nil
}

func reminderMessage(patient *model.Patient, appointment *model.Appointment, window string) (string, string) {
	when := appointment.ScheduledFor.Format("Jan 2, 2006 at 3:04 PM")
	if window == WindowDay {
		return "Appointment reminder: tomorrow",
			fmt.Sprintf("%s %s has an appointment (%s) on %s.",
				patient.FirstName, patient.LastName, appointment.Purpose, when)
	}
	return "Appointment reminder: in one hour",
		fmt.Sprintf("%s %s has an appointment (%s) at %s.",
			patient.FirstName, patient.LastName, appointment.Purpose, when)
}

func markerKey(window string, appointmentID uuid.UUID) string {
	return fmt.Sprintf("%s_%s", window, appointmentID)
}

func untilEndOfDay(now time.Time) time.Duration {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	return endOfDay.Sub(now)
}
