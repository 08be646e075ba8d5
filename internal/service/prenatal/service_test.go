package prenatal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
)

type fakePrenatalRepo struct {
	records map[uuid.UUID]*model.Prenatal
	visits  map[uuid.UUID]*model.PrenatalVisit
}

func newFakePrenatalRepo() *fakePrenatalRepo {
	return &fakePrenatalRepo{
		records: make(map[uuid.UUID]*model.Prenatal),
		visits:  make(map[uuid.UUID]*model.PrenatalVisit),
	}
}

func (r *fakePrenatalRepo) Create(_ context.Context, p *model.Prenatal) error {
	r.records[p.ID] = p
	return nil
}

func (r *fakePrenatalRepo) Get(_ context.Context, id uuid.UUID) (*model.Prenatal, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *p
	return &cp, nil
}

func (r *fakePrenatalRepo) Update(_ context.Context, p *model.Prenatal) error {
	r.records[p.ID] = p
	return nil
}

func (r *fakePrenatalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *fakePrenatalRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.Prenatal, error) {
	var out []*model.Prenatal
	for _, p := range r.records {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePrenatalRepo) CreateVisit(_ context.Context, v *model.PrenatalVisit) error {
	r.visits[v.ID] = v
	return nil
}

func (r *fakePrenatalRepo) UpdateVisit(_ context.Context, v *model.PrenatalVisit) error {
	r.visits[v.ID] = v
	return nil
}

func (r *fakePrenatalRepo) DeleteVisit(_ context.Context, id uuid.UUID) error {
	delete(r.visits, id)
	return nil
}

func (r *fakePrenatalRepo) ListVisits(_ context.Context, prenatalID uuid.UUID) ([]*model.PrenatalVisit, error) {
	var out []*model.PrenatalVisit
	for _, v := range r.visits {
		if v.PrenatalID == prenatalID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func createRequest(patientID uuid.UUID) *model.CreatePrenatalRequest {
	lmp := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &model.CreatePrenatalRequest{
		PatientID:            patientID,
		LastMenstrualPeriod:  lmp,
		ExpectedDeliveryDate: lmp.AddDate(0, 9, 7),
		AttendingPhysician:   "Dr. Reyes",
	}
}

func TestCreatePrenatalStartsOngoing(t *testing.T) {
	svc := NewService(newFakePrenatalRepo())
	patientID := uuid.New()

	prenatal, err := svc.CreatePrenatal(context.Background(), createRequest(patientID))
	require.NoError(t, err)

	assert.Equal(t, model.PrenatalStatusOngoing, prenatal.Status)
	assert.Equal(t, patientID, prenatal.PatientID)
}

func TestUpdatePrenatalStatus(t *testing.T) {
	svc := NewService(newFakePrenatalRepo())

	prenatal, err := svc.CreatePrenatal(context.Background(), createRequest(uuid.New()))
	require.NoError(t, err)

	status := "completed"
	updated, err := svc.UpdatePrenatal(context.Background(), prenatal.ID, &model.UpdatePrenatalRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.PrenatalStatusCompleted, updated.Status)
	assert.Equal(t, prenatal.AttendingPhysician, updated.AttendingPhysician)
}

func TestAddVisitRequiresEpisode(t *testing.T) {
	svc := NewService(newFakePrenatalRepo())

	_, err := svc.AddVisit(context.Background(), uuid.New(), &model.CreatePrenatalVisitRequest{
		VisitDate: time.Now(),
		Diagnosis: "normal",
		Treatment: "vitamins",
	})
	assert.Error(t, err)
}

func TestVisitLifecycle(t *testing.T) {
	svc := NewService(newFakePrenatalRepo())

	prenatal, err := svc.CreatePrenatal(context.Background(), createRequest(uuid.New()))
	require.NoError(t, err)

	visit, err := svc.AddVisit(context.Background(), prenatal.ID, &model.CreatePrenatalVisitRequest{
		VisitDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Diagnosis: "normal pregnancy",
		Treatment: "ferrous sulfate",
	})
	require.NoError(t, err)
	assert.Equal(t, prenatal.ID, visit.PrenatalID)

	diagnosis := "mild anemia"
	updated, err := svc.UpdateVisit(context.Background(), prenatal.ID, visit.ID, &model.UpdatePrenatalVisitRequest{
		Diagnosis: &diagnosis,
	})
	require.NoError(t, err)
	assert.Equal(t, "mild anemia", updated.Diagnosis)
	assert.Equal(t, "ferrous sulfate", updated.Treatment)

	visits, err := svc.ListVisits(context.Background(), prenatal.ID)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	require.NoError(t, svc.DeleteVisit(context.Background(), visit.ID))
	visits, err = svc.ListVisits(context.Background(), prenatal.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestUpdateVisitUnknownID(t *testing.T) {
	svc := NewService(newFakePrenatalRepo())

	prenatal, err := svc.CreatePrenatal(context.Background(), createRequest(uuid.New()))
	require.NoError(t, err)

	diagnosis := "x"
	_, err = svc.UpdateVisit(context.Background(), prenatal.ID, uuid.New(), &model.UpdatePrenatalVisitRequest{Diagnosis: &diagnosis})
	assert.Error(t, err)
}
