package labfile

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/service/admission"
)

type fakeGate struct {
	discharged map[uuid.UUID]bool
}

func (g *fakeGate) EnsureMutable(_ context.Context, admissionID uuid.UUID) error {
	if g.discharged[admissionID] {
		return admission.ErrAdmissionDischarged
	}
	return nil
}

type fakeLabFileRepo struct {
	files map[uuid.UUID]*model.LabFile
}

func newFakeLabFileRepo() *fakeLabFileRepo {
	return &fakeLabFileRepo{files: make(map[uuid.UUID]*model.LabFile)}
}

func (r *fakeLabFileRepo) Create(_ context.Context, f *model.LabFile) error {
	r.files[f.ID] = f
	return nil
}

func (r *fakeLabFileRepo) Get(_ context.Context, id uuid.UUID) (*model.LabFile, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *f
	return &cp, nil
}

func (r *fakeLabFileRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

func (r *fakeLabFileRepo) List(_ context.Context, filters *model.LabFileFilters) ([]*model.LabFile, error) {
	var out []*model.LabFile
	for _, f := range r.files {
		if filters != nil && filters.PatientID != uuid.Nil && f.PatientID != filters.PatientID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	puts    int
	removes int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(_ context.Context, key string, r io.Reader, _ string) error {
	s.puts++
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, assert.AnError
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeObjectStore) Remove(_ context.Context, key string) error {
	s.removes++
	delete(s.objects, key)
	return nil
}

func (s *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", assert.AnError
	}
	return "https://storage.test/" + key, nil
}

func newTestService(gate *fakeGate) (*Service, *fakeLabFileRepo, *fakeObjectStore) {
	repo := newFakeLabFileRepo()
	store := newFakeObjectStore()
	return NewService(repo, store, gate), repo, store
}

func uploadRequest(patientID uuid.UUID, admissionID *uuid.UUID) *UploadRequest {
	return &UploadRequest{
		PatientID:   patientID,
		AdmissionID: admissionID,
		FileName:    "cbc.pdf",
		FileSize:    1024,
		MimeType:    "application/pdf",
		UploadedBy:  "Nurse Cruz",
		Body:        strings.NewReader("pdf bytes"),
	}
}

func TestUploadStoresObjectAndMetadata(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, repo, store := newTestService(gate)
	patientID := uuid.New()

	file, err := svc.Upload(context.Background(), uploadRequest(patientID, nil))
	require.NoError(t, err)

	assert.Equal(t, patientID, file.PatientID)
	assert.Contains(t, file.FileKey, patientID.String())
	assert.True(t, strings.HasSuffix(file.FileKey, ".pdf"))
	assert.Equal(t, 1, store.puts)

	stored, err := repo.Get(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.FileKey, stored.FileKey)
}

func TestUploadRefusedForDischargedAdmission(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{admissionID: true}}
	svc, repo, store := newTestService(gate)

	_, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), &admissionID))
	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Equal(t, 0, store.puts)
	assert.Empty(t, repo.files)
}

func TestUploadWithoutAdmissionSkipsGate(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{admissionID: true}}
	svc, _, _ := newTestService(gate)

	_, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), nil))
	assert.NoError(t, err)
}

func TestDownloadRoundTrip(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, _ := newTestService(gate)

	file, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), nil))
	require.NoError(t, err)

	meta, body, err := svc.Download(context.Background(), file.ID)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
	assert.Equal(t, "cbc.pdf", meta.FileName)
}

func TestDeleteRefusedForDischargedAdmission(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, repo, store := newTestService(gate)

	file, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), &admissionID))
	require.NoError(t, err)

	gate.discharged[admissionID] = true

	err = svc.Delete(context.Background(), file.ID)
	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Contains(t, repo.files, file.ID)
	assert.Equal(t, 0, store.removes)
}

func TestDeleteRemovesRowAndObject(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, repo, store := newTestService(gate)

	file, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), nil))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), file.ID))
	assert.Empty(t, repo.files)
	assert.Empty(t, store.objects)
}

func TestPresignDownload(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, _ := newTestService(gate)

	file, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), nil))
	require.NoError(t, err)

	url, err := svc.PresignDownload(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Contains(t, url, file.FileKey)
}

func TestPurgeObjectsRemovesOnlyPatientObjects(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, repo, store := newTestService(gate)

	patientID := uuid.New()
	mine, err := svc.Upload(context.Background(), uploadRequest(patientID, nil))
	require.NoError(t, err)
	other, err := svc.Upload(context.Background(), uploadRequest(uuid.New(), nil))
	require.NoError(t, err)

	require.NoError(t, svc.PurgeObjects(context.Background(), patientID))

	assert.Equal(t, 1, store.removes)
	assert.NotContains(t, store.objects, mine.FileKey)
	assert.Contains(t, store.objects, other.FileKey)
	// rows are left for the patient delete cascade to remove
	assert.Len(t, repo.files, 2)
}
