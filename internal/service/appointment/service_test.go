package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
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
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range r.appointments {
		if filters != nil && filters.Status != "" && a.Status != filters.Status {
			continue
		}
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
		if a.Status == model.AppointmentStatusScheduled && a.ScheduledFor.Before(cutoff) {
			delete(r.appointments, id)
			removed++
		}
	}
	return removed, nil
}

func newTestService() (*Service, *fakeAppointmentRepo) {
	repo := newFakeAppointmentRepo()
	return NewService(repo), repo
}

func schedule(t *testing.T, svc *Service, at time.Time) *model.Appointment {
	t.Helper()
	appointment, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		PatientID:    uuid.New(),
		ScheduledFor: at,
		Purpose:      "prenatal checkup",
	})
	require.NoError(t, err)
	return appointment
}

func TestCreateAppointmentStartsScheduled(t *testing.T) {
	svc, _ := newTestService()

	appointment := schedule(t, svc, time.Now().Add(24*time.Hour))
	assert.Equal(t, model.AppointmentStatusScheduled, appointment.Status)
	assert.Nil(t, appointment.CancelReason)
}

func TestCompleteTransition(t *testing.T) {
	svc, repo := newTestService()

	appointment := schedule(t, svc, time.Now().Add(24*time.Hour))
	completed, err := svc.Complete(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	// row is kept after completion
	_, err = repo.Get(context.Background(), appointment.ID)
	assert.NoError(t, err)
}

func TestCancelKeepsReason(t *testing.T) {
	svc, _ := newTestService()

	appointment := schedule(t, svc, time.Now().Add(24*time.Hour))
	cancelled, err := svc.Cancel(context.Background(), appointment.ID, "patient request")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "patient request", *cancelled.CancelReason)
}

func TestCompleteRefusedTwice(t *testing.T) {
	svc, _ := newTestService()

	appointment := schedule(t, svc, time.Now().Add(24*time.Hour))
	_, err := svc.Complete(context.Background(), appointment.ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestUpdateRefusedAfterCancel(t *testing.T) {
	svc, _ := newTestService()

	appointment := schedule(t, svc, time.Now().Add(24*time.Hour))
	_, err := svc.Cancel(context.Background(), appointment.ID, "")
	require.NoError(t, err)

	purpose := "changed"
	_, err = svc.UpdateAppointment(context.Background(), appointment.ID, &model.UpdateAppointmentRequest{Purpose: &purpose})
	assert.ErrorIs(t, err, ErrNotScheduled)
}

func TestCleanupStaleRemovesYesterdayKeepsToday(t *testing.T) {
	svc, repo := newTestService()

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	yesterday := schedule(t, svc, now.AddDate(0, 0, -1))
	today := schedule(t, svc, time.Date(2024, 6, 15, 0, 30, 0, 0, time.UTC))
	tomorrow := schedule(t, svc, now.AddDate(0, 0, 1))

	removed, err := svc.CleanupStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(context.Background(), yesterday.ID)
	assert.Error(t, err)
	_, err = repo.Get(context.Background(), today.ID)
	assert.NoError(t, err)
	_, err = repo.Get(context.Background(), tomorrow.ID)
	assert.NoError(t, err)
}

func TestCleanupStaleKeepsCompletedAndCancelledHistory(t *testing.T) {
	svc, repo := newTestService()

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	completed := schedule(t, svc, now.AddDate(0, 0, -2))
	_, err := svc.Complete(context.Background(), completed.ID)
	require.NoError(t, err)

	cancelled := schedule(t, svc, now.AddDate(0, 0, -3))
	_, err = svc.Cancel(context.Background(), cancelled.ID, "no show")
	require.NoError(t, err)

	stale := schedule(t, svc, now.AddDate(0, 0, -1))

	removed, err := svc.CleanupStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(context.Background(), stale.ID)
	assert.Error(t, err)
	_, err = repo.Get(context.Background(), completed.ID)
	assert.NoError(t, err, "completed appointment row should survive the sweep")
	_, err = repo.Get(context.Background(), cancelled.ID)
	assert.NoError(t, err, "cancelled appointment row should survive the sweep")
}
