package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

type tutorRepoStub struct {
	tutors  map[string]*models.Tutor
	order   []string
	listErr error
}

func newTutorRepoStub() *tutorRepoStub {
	return &tutorRepoStub{tutors: make(map[string]*models.Tutor)}
}

func (r *tutorRepoStub) add(tutor *models.Tutor) {
	r.tutors[tutor.ID] = tutor
	r.order = append(r.order, tutor.ID)
}

func (r *tutorRepoStub) List(ctx context.Context) ([]models.Tutor, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]models.Tutor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.tutors[id])
	}
	return result, nil
}

func (r *tutorRepoStub) FindByID(ctx context.Context, id string) (*models.Tutor, error) {
	if tutor, ok := r.tutors[id]; ok {
		copy := *tutor
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (r *tutorRepoStub) Create(ctx context.Context, tutor *models.Tutor) error {
	if tutor.ID == "" {
		tutor.ID = fmt.Sprintf("t%d", len(r.tutors)+1)
	}
	r.add(tutor)
	return nil
}

func (r *tutorRepoStub) Update(ctx context.Context, tutor *models.Tutor) error {
	if _, ok := r.tutors[tutor.ID]; !ok {
		return sql.ErrNoRows
	}
	r.tutors[tutor.ID] = tutor
	return nil
}

func (r *tutorRepoStub) Deactivate(ctx context.Context, id string) error {
	if tutor, ok := r.tutors[id]; ok {
		tutor.Active = false
		return nil
	}
	return sql.ErrNoRows
}

func newTutorFixture(repo *tutorRepoStub) *TutorService {
	return NewTutorService(repo, disabledCache(), time.Minute, nil, nil)
}

func TestTutorCatalogReturnsStoreOrder(t *testing.T) {
	repo := newTutorRepoStub()
	repo.add(&models.Tutor{ID: "t2", Name: "B"})
	repo.add(&models.Tutor{ID: "t1", Name: "A"})
	svc := newTutorFixture(repo)

	catalog, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "t2", catalog[0].ID)
	assert.Equal(t, "t1", catalog[1].ID)
}

func TestTutorCatalogPropagatesStoreFailure(t *testing.T) {
	repo := newTutorRepoStub()
	repo.listErr = fmt.Errorf("connection refused")
	svc := newTutorFixture(repo)

	catalog, err := svc.Catalog(context.Background())
	assert.Error(t, err)
	assert.Nil(t, catalog)
}

func TestTutorCreateNormalizesInstruments(t *testing.T) {
	repo := newTutorRepoStub()
	svc := newTutorFixture(repo)

	tutor, err := svc.Create(context.Background(), CreateTutorRequest{
		Name:        " Amelia Hart ",
		Email:       "amelia@museconnect.example",
		Instruments: []string{" Piano ", "", "Keyboard"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Amelia Hart", tutor.Name)
	assert.Equal(t, models.InstrumentList{"Piano", "Keyboard"}, tutor.Instruments)
	assert.True(t, tutor.Active)
}

func TestTutorCreateRejectsInvalidPayload(t *testing.T) {
	svc := newTutorFixture(newTutorRepoStub())

	_, err := svc.Create(context.Background(), CreateTutorRequest{Name: "No Email"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), CreateTutorRequest{
		Name:  "No Instruments",
		Email: "a@museconnect.example",
	})
	assert.Error(t, err)
}

func TestTutorUpdateAppliesChanges(t *testing.T) {
	repo := newTutorRepoStub()
	repo.add(&models.Tutor{ID: "t1", Name: "Old", Email: "old@museconnect.example", Active: true})
	svc := newTutorFixture(repo)

	strikes := 2
	active := false
	tutor, err := svc.Update(context.Background(), "t1", UpdateTutorRequest{
		Name:        "New Name",
		Email:       "new@museconnect.example",
		Instruments: []string{"Cello"},
		Strikes:     &strikes,
		Active:      &active,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", tutor.Name)
	assert.Equal(t, 2, tutor.Strikes)
	assert.False(t, tutor.Active)
}

func TestTutorUpdateUnknownID(t *testing.T) {
	svc := newTutorFixture(newTutorRepoStub())

	_, err := svc.Update(context.Background(), "missing", UpdateTutorRequest{
		Name:        "X",
		Email:       "x@museconnect.example",
		Instruments: []string{"Piano"},
	})
	assert.Error(t, err)
}

func TestTutorDeactivate(t *testing.T) {
	repo := newTutorRepoStub()
	repo.add(&models.Tutor{ID: "t1", Active: true})
	svc := newTutorFixture(repo)

	require.NoError(t, svc.Deactivate(context.Background(), "t1"))
	assert.False(t, repo.tutors["t1"].Active)

	assert.Error(t, svc.Deactivate(context.Background(), "missing"))
}
