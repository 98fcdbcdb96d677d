package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museconnect/tutor-admin-api/internal/models"
)

func tutorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "phone", "instruments", "postcode", "strikes", "active", "created_at", "updated_at"})
}

func TestTutorRepositoryListKeepsStoreOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM tutors").
		WillReturnRows(tutorRows().
			AddRow("t2", "B", "b@example.com", nil, "{Guitar}", nil, 0, true, now, now).
			AddRow("t1", "A", "a@example.com", nil, "{Piano,Violin}", nil, 1, true, now, now))

	tutors, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tutors, 2)
	assert.Equal(t, "t2", tutors[0].ID)
	assert.Equal(t, "t1", tutors[1].ID)
	assert.Equal(t, []string{"Piano", "Violin"}, []string(tutors[1].Instruments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTutorRepositoryCreateAndDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	mock.ExpectExec("INSERT INTO tutors").
		WithArgs(sqlmock.AnyArg(), "Amelia Hart", "amelia@example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 0, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	tutor := &models.Tutor{Name: "Amelia Hart", Email: "amelia@example.com", Instruments: models.InstrumentList{"Piano"}, Active: true}
	require.NoError(t, repo.Create(context.Background(), tutor))
	assert.NotEmpty(t, tutor.ID)

	mock.ExpectExec("UPDATE tutors SET active = FALSE").
		WithArgs("t1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTutorRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM tutors WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTutorRepositoryDeleteAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutors")).
		WillReturnResult(sqlmock.NewResult(0, 4))

	removed, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}

func TestTutorRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTutorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM tutors")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "active"}).AddRow(10, 8))

	total, active, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 8, active)
}
