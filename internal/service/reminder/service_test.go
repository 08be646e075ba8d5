package reminder

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/service/notification"
	"github.com/wardlink/admin-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, assert.AnError
	}
	return a, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListScheduled(_ context.Context) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if a.Status == model.AppointmentStatusScheduled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, a := range r.appointments {
		if a.ScheduledFor.Before(cutoff) {
			delete(r.appointments, id)
			removed++
		}
	}
	return removed, nil
}

type fakePatientLookup struct {
	patients map[uuid.UUID]*model.Patient
}

func (l *fakePatientLookup) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := l.patients[id]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

type fakeNotifier struct {
	requests []*notification.NotifyRequest
}

func (n *fakeNotifier) Notify(_ context.Context, req *notification.NotifyRequest) (*model.Notification, error) {
	n.requests = append(n.requests, req)
	return &model.Notification{ID: uuid.New()}, nil
}

func newTestService(now time.Time) (*Service, *fakeAppointmentRepo, *fakePatientLookup, *fakeNotifier) {
	appointments := newFakeAppointmentRepo()
	patients := &fakePatientLookup{patients: make(map[uuid.UUID]*model.Patient)}
	notifier := &fakeNotifier{}
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, TimeFormat: time.RFC3339, Output: os.Stderr})

	svc := NewService(appointments, patients, notifier, log)
	svc.now = func() time.Time { return now }
	return svc, appointments, patients, notifier
}

func addScheduled(t *testing.T, repo *fakeAppointmentRepo, patients *fakePatientLookup, at time.Time, email string) *model.Appointment {
	t.Helper()
	patient := &model.Patient{
		Base:      model.Base{ID: uuid.New()},
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     email,
	}
	patients.patients[patient.ID] = patient

	appointment := &model.Appointment{
		Base:         model.Base{ID: uuid.New()},
		PatientID:    patient.ID,
		ScheduledFor: at,
		Purpose:      "prenatal checkup",
		Status:       model.AppointmentStatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), appointment))
	return appointment
}

func TestScanSendsDayBeforeReminder(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc, repo, patients, notifier := newTestService(now)
	addScheduled(t, repo, patients, time.Date(2024, 6, 16, 14, 0, 0, 0, time.UTC), "maria@example.com")

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Suppressed)
	// one admin and one patient notification per reminder
	require.Len(t, notifier.requests, 2)
	assert.Equal(t, model.AudienceAdmin, notifier.requests[0].Audience)
	assert.Equal(t, model.AudiencePatient, notifier.requests[1].Audience)
	assert.Equal(t, "email", notifier.requests[1].Channel)
	assert.Equal(t, "maria@example.com", notifier.requests[1].Recipient)
}

func TestScanSuppressesRepeatWithinSameDay(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc, repo, patients, notifier := newTestService(now)
	addScheduled(t, repo, patients, time.Date(2024, 6, 16, 14, 0, 0, 0, time.UTC), "")

	first, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Suppressed)

	// exactly one reminder's worth of notifications across both scans
	assert.Len(t, notifier.requests, 2)
}

func TestScanSendsHourBeforeReminder(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 10, 0, 0, time.UTC)
	svc, repo, patients, notifier := newTestService(now)
	addScheduled(t, repo, patients, time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC), "")

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sent)
	require.Len(t, notifier.requests, 2)
	assert.Contains(t, notifier.requests[0].Subject, "one hour")
}

func TestScanIgnoresFarAppointments(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc, repo, patients, notifier := newTestService(now)
	addScheduled(t, repo, patients, time.Date(2024, 6, 18, 14, 0, 0, 0, time.UTC), "")
	addScheduled(t, repo, patients, time.Date(2024, 6, 15, 16, 0, 0, 0, time.UTC), "")

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 0, result.Sent)
	assert.Empty(t, notifier.requests)
}

func TestScanDayThenHourWindowsBothFire(t *testing.T) {
	appointmentAt := time.Date(2024, 6, 16, 14, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc, repo, patients, notifier := newTestService(dayBefore)
	addScheduled(t, repo, patients, appointmentAt, "")

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)

	// same service next day, one hour out
	svc.now = func() time.Time { return time.Date(2024, 6, 16, 13, 5, 0, 0, time.UTC) }
	result, err = svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)

	assert.Len(t, notifier.requests, 4)
}

func TestDueWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		scheduled time.Time
		window    string
		due       bool
	}{
		{"tomorrow any hour", time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC), WindowDay, true},
		{"next hour today", time.Date(2024, 6, 15, 10, 45, 0, 0, time.UTC), WindowHour, true},
		{"this hour today", time.Date(2024, 6, 15, 9, 50, 0, 0, time.UTC), "", false},
		{"two hours out", time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC), "", false},
		{"two days out", time.Date(2024, 6, 17, 9, 30, 0, 0, time.UTC), "", false},
		{"yesterday", time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, due := dueWindow(now, tt.scheduled)
			assert.Equal(t, tt.due, due)
			assert.Equal(t, tt.window, window)
		})
	}
}
