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
)

func TestStudentSetTutorAssigns(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET tutor_id = $2, is_tutor_assigned = $3, updated_at = $4 WHERE id = $1")).
		WithArgs("s1", "t1", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tutorID := "t1"
	require.NoError(t, repo.SetTutor(context.Background(), "s1", &tutorID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentSetTutorClearsOnNil(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET tutor_id").
		WithArgs("s1", nil, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetTutor(context.Background(), "s1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentSetTutorClearsOnEmptyString(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET tutor_id").
		WithArgs("s1", nil, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	empty := ""
	require.NoError(t, repo.SetTutor(context.Background(), "s1", &empty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentSetTutorUnknownStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET tutor_id").
		WithArgs("missing", nil, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetTutor(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM students WHERE id").
		WithArgs("s1").
		WillReturnRows(studentRows().
			AddRow("s1", "o1", "Alice", 9, "Piano, Drums", nil, nil, false, now, now))

	student, err := repo.FindByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", student.Name)
	assert.Equal(t, []string{"Piano", "Drums"}, []string(student.Instruments))
}

func TestStudentDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentCountAssigned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE is_tutor_assigned = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountAssigned(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
