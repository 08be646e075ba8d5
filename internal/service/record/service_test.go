package record

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlink/admin-api/internal/model"
	"github.com/wardlink/admin-api/internal/service/admission"
	"github.com/wardlink/admin-api/pkg/identifier"
)

type fakeGate struct {
	discharged map[uuid.UUID]bool
	calls      int
}

func (g *fakeGate) EnsureMutable(_ context.Context, admissionID uuid.UUID) error {
	g.calls++
	if g.discharged[admissionID] {
		return admission.ErrAdmissionDischarged
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.DoctorsOrder
	writes int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*model.DoctorsOrder)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *model.DoctorsOrder) error {
	r.writes++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id uuid.UUID) (*model.DoctorsOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *model.DoctorsOrder) error {
	r.writes++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.writes++
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) ListByAdmission(_ context.Context, admissionID uuid.UUID) ([]*model.DoctorsOrder, error) {
	var out []*model.DoctorsOrder
	for _, o := range r.orders {
		if o.AdmissionID == admissionID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeMedicationRepo struct {
	medications map[uuid.UUID]*model.Medication
	writes      int
}

func newFakeMedicationRepo() *fakeMedicationRepo {
	return &fakeMedicationRepo{medications: make(map[uuid.UUID]*model.Medication)}
}

func (r *fakeMedicationRepo) Create(_ context.Context, m *model.Medication) error {
	r.writes++
	r.medications[m.ID] = m
	return nil
}

func (r *fakeMedicationRepo) Get(_ context.Context, id uuid.UUID) (*model.Medication, error) {
	m, ok := r.medications[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMedicationRepo) Update(_ context.Context, m *model.Medication) error {
	r.writes++
	r.medications[m.ID] = m
	return nil
}

func (r *fakeMedicationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.writes++
	delete(r.medications, id)
	return nil
}

func (r *fakeMedicationRepo) ListByAdmission(_ context.Context, admissionID uuid.UUID) ([]*model.Medication, error) {
	var out []*model.Medication
	for _, m := range r.medications {
		if m.AdmissionID == admissionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeNoteRepo struct {
	notes  map[uuid.UUID]*model.Note
	writes int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*model.Note)}
}

func (r *fakeNoteRepo) Create(_ context.Context, n *model.Note) error {
	r.writes++
	r.notes[n.ID] = n
	return nil
}

func (r *fakeNoteRepo) Get(_ context.Context, id uuid.UUID) (*model.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, assert.AnError
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, n *model.Note) error {
	r.writes++
	r.notes[n.ID] = n
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.writes++
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) ListByAdmission(_ context.Context, admissionID uuid.UUID) ([]*model.Note, error) {
	var out []*model.Note
	for _, n := range r.notes {
		if n.AdmissionID == admissionID {
			out = append(out, n)
		}
	}
	return out, nil
}

func newTestService(gate *fakeGate) (*Service, *fakeOrderRepo, *fakeMedicationRepo, *fakeNoteRepo) {
	orders := newFakeOrderRepo()
	medications := newFakeMedicationRepo()
	notes := newFakeNoteRepo()
	idGen := identifier.NewGenerator(identifier.NewCounterSource(0))
	return NewService(orders, medications, notes, gate, idGen), orders, medications, notes
}

func TestCreateOrderChecksGateBeforeWrite(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{admissionID: true}}
	svc, orders, _, _ := newTestService(gate)

	_, err := svc.CreateOrder(context.Background(), admissionID, &model.CreateOrderRequest{
		OrderedBy: "Dr. Reyes",
		Content:   "NPO past midnight",
	})

	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Equal(t, 0, orders.writes)
}

func TestCreateOrderAssignsCode(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, orders, _, _ := newTestService(gate)

	order, err := svc.CreateOrder(context.Background(), admissionID, &model.CreateOrderRequest{
		OrderedBy: "Dr. Reyes",
		Content:   "CBC now",
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-000001", order.Code)
	assert.Equal(t, admissionID, order.AdmissionID)
	assert.Equal(t, 1, orders.writes)
	assert.Equal(t, 1, gate.calls)
}

func TestUpdateOrderRefusedWhenDischarged(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, orders, _, _ := newTestService(gate)

	order, err := svc.CreateOrder(context.Background(), admissionID, &model.CreateOrderRequest{
		OrderedBy: "Dr. Reyes",
		Content:   "CBC now",
	})
	require.NoError(t, err)

	gate.discharged[admissionID] = true
	writesBefore := orders.writes

	newContent := "CBC stat"
	_, err = svc.UpdateOrder(context.Background(), order.ID, &model.UpdateOrderRequest{Content: &newContent})
	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Equal(t, writesBefore, orders.writes)

	stored, err := orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "CBC now", stored.Content)
}

func TestDeleteOrderRefusedWhenDischarged(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, orders, _, _ := newTestService(gate)

	order, err := svc.CreateOrder(context.Background(), admissionID, &model.CreateOrderRequest{
		OrderedBy: "Dr. Reyes",
		Content:   "CBC now",
	})
	require.NoError(t, err)

	gate.discharged[admissionID] = true

	err = svc.DeleteOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)

	_, err = orders.Get(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestCreateMedicationChecksGateBeforeWrite(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{admissionID: true}}
	svc, _, medications, _ := newTestService(gate)

	_, err := svc.CreateMedication(context.Background(), admissionID, &model.CreateMedicationRequest{
		DrugName:  "Paracetamol",
		Dosage:    "500mg",
		Route:     "PO",
		Frequency: "q6h",
	})

	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Equal(t, 0, medications.writes)
}

func TestCreateMedicationAssignsCode(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, medications, _ := newTestService(gate)

	med, err := svc.CreateMedication(context.Background(), admissionID, &model.CreateMedicationRequest{
		DrugName:  "Paracetamol",
		Dosage:    "500mg",
		Route:     "PO",
		Frequency: "q6h",
	})

	require.NoError(t, err)
	assert.Equal(t, "MED-000001", med.Code)
	assert.Equal(t, 1, medications.writes)
}

func TestUpdateMedicationAppliesPartialFields(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, _, _ := newTestService(gate)

	med, err := svc.CreateMedication(context.Background(), admissionID, &model.CreateMedicationRequest{
		DrugName:  "Paracetamol",
		Dosage:    "500mg",
		Route:     "PO",
		Frequency: "q6h",
	})
	require.NoError(t, err)

	newDosage := "1g"
	updated, err := svc.UpdateMedication(context.Background(), med.ID, &model.UpdateMedicationRequest{Dosage: &newDosage})
	require.NoError(t, err)
	assert.Equal(t, "1g", updated.Dosage)
	assert.Equal(t, "Paracetamol", updated.DrugName)
	assert.Equal(t, "q6h", updated.Frequency)
}

func TestCreateNoteChecksGateBeforeWrite(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{admissionID: true}}
	svc, _, _, notes := newTestService(gate)

	_, err := svc.CreateNote(context.Background(), admissionID, &model.CreateNoteRequest{
		Author:  "Nurse Cruz",
		Content: "Patient resting comfortably",
	})

	require.ErrorIs(t, err, admission.ErrAdmissionDischarged)
	assert.Equal(t, 0, notes.writes)
}

func TestCreateNoteAssignsCode(t *testing.T) {
	admissionID := uuid.New()
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, _, notes := newTestService(gate)

	note, err := svc.CreateNote(context.Background(), admissionID, &model.CreateNoteRequest{
		Author:  "Nurse Cruz",
		Content: "Patient resting comfortably",
	})

	require.NoError(t, err)
	assert.Equal(t, "NOTE-000001", note.Code)
	assert.Equal(t, 1, notes.writes)
}

func TestListOrdersFiltersByAdmission(t *testing.T) {
	gate := &fakeGate{discharged: map[uuid.UUID]bool{}}
	svc, _, _, _ := newTestService(gate)

	a1 := uuid.New()
	a2 := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(context.Background(), a1, &model.CreateOrderRequest{OrderedBy: "Dr. Reyes", Content: "order"})
		require.NoError(t, err)
	}
	_, err := svc.CreateOrder(context.Background(), a2, &model.CreateOrderRequest{OrderedBy: "Dr. Reyes", Content: "order"})
	require.NoError(t, err)

	listed, err := svc.ListOrders(context.Background(), a1)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}
