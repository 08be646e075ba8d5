package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/pkg/identifier"
)

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
	deletes  int
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deletes++
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if filters != nil && filters.Status != "" && p.Status != filters.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func newTestService() (*Service, *fakePatientRepo) {
	repo := newFakePatientRepo()
	return NewService(repo, identifier.NewGenerator(identifier.NewCounterSource(0)), nil), repo
}

func createRequest() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		FirstName:   "Maria",
		LastName:    "Santos",
		DateOfBirth: time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC),
		Address:     "123 Mabini St",
		Phone:       "+639171234567",
		CivilStatus: "married",
		Gravidity:   2,
		Parity:      1,
	}
}

func TestCreatePatientAssignsCodeAndActiveStatus(t *testing.T) {
	svc, _ := newTestService()

	patient, err := svc.CreatePatient(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, "PT-000001", patient.Code)
	assert.Equal(t, model.PatientStatusActive, patient.Status)
	assert.NotEqual(t, uuid.Nil, patient.ID)
}

func TestCreatePatientCodesDoNotCollide(t *testing.T) {
	svc, _ := newTestService()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		patient, err := svc.CreatePatient(context.Background(), createRequest())
		require.NoError(t, err)
		require.False(t, seen[patient.Code], "duplicate code %s", patient.Code)
		seen[patient.Code] = true
	}
}

func TestUpdatePatientPartialFields(t *testing.T) {
	svc, _ := newTestService()

	patient, err := svc.CreatePatient(context.Background(), createRequest())
	require.NoError(t, err)

	phone := "+639998887777"
	status := "inactive"
	updated, err := svc.UpdatePatient(context.Background(), patient.ID, &model.UpdatePatientRequest{
		Phone:  &phone,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, "+639998887777", updated.Phone)
	assert.Equal(t, model.PatientStatusInactive, updated.Status)
	assert.Equal(t, "Maria", updated.FirstName)
	assert.Equal(t, patient.Code, updated.Code)
}

func TestDeletePatient(t *testing.T) {
	svc, repo := newTestService()

	patient, err := svc.CreatePatient(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(context.Background(), patient.ID))
	assert.Equal(t, 1, repo.deletes)

	_, err = svc.GetPatient(context.Background(), patient.ID)
	assert.Error(t, err)
}

func TestDeletePatientUnknownID(t *testing.T) {
	svc, repo := newTestService()

	err := svc.DeletePatient(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.Equal(t, 0, repo.deletes)
}

type fakePurger struct {
	repo          *fakePatientRepo
	purged        []uuid.UUID
	deletesAtCall int
}

func (p *fakePurger) PurgeObjects(_ context.Context, patientID uuid.UUID) error {
	p.purged = append(p.purged, patientID)
	p.deletesAtCall = p.repo.deletes
	return nil
}

func TestDeletePatientPurgesStoredFilesFirst(t *testing.T) {
	repo := newFakePatientRepo()
	purger := &fakePurger{repo: repo}
	svc := NewService(repo, identifier.NewGenerator(identifier.NewCounterSource(0)), purger)

	patient, err := svc.CreatePatient(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(context.Background(), patient.ID))
	require.Len(t, purger.purged, 1)
	assert.Equal(t, patient.ID, purger.purged[0])
	// objects are purged while the lab file rows still exist
	assert.Equal(t, 0, purger.deletesAtCall)
	assert.Equal(t, 1, repo.deletes)
}
