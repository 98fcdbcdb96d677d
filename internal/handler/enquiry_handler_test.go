package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museconnect/tutor-admin-api/internal/models"
	"github.com/museconnect/tutor-admin-api/internal/service"
	"github.com/museconnect/tutor-admin-api/pkg/response"
)

type ownerSourceStub struct {
	owners []models.BookingOwner
}

func (s *ownerSourceStub) ListWithStudents(ctx context.Context) ([]models.BookingOwner, error) {
	return s.owners, nil
}

func (s *ownerSourceStub) FindByID(ctx context.Context, id string) (*models.BookingOwner, error) {
	for i := range s.owners {
		if s.owners[i].ID == id {
			return &s.owners[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *ownerSourceStub) Delete(ctx context.Context, id string) error { return nil }

type studentSourceStub struct {
	students map[string]*models.Student
	updates  map[string]*string
}

func (s *studentSourceStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if student, ok := s.students[id]; ok {
		return student, nil
	}
	return nil, sql.ErrNoRows
}

func (s *studentSourceStub) SetTutor(ctx context.Context, studentID string, tutorID *string) error {
	if s.updates == nil {
		s.updates = make(map[string]*string)
	}
	s.updates[studentID] = tutorID
	return nil
}

func (s *studentSourceStub) Delete(ctx context.Context, id string) error { return nil }

type tutorSourceStub struct {
	tutors []models.Tutor
}

func (s *tutorSourceStub) Catalog(ctx context.Context) ([]models.Tutor, error) {
	return s.tutors, nil
}

type archiveSinkStub struct{}

func (s *archiveSinkStub) Archive(ctx context.Context, owner *models.BookingOwner) error { return nil }

func newEnquiryTestRouter(owners *ownerSourceStub, students *studentSourceStub, tutors *tutorSourceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cache := service.NewCacheService(nil, nil, time.Minute, nil, false)
	enquiries := service.NewEnquiryService(owners, cache, time.Minute, nil)
	assignments := service.NewAssignmentService(owners, students, tutors, enquiries, nil, nil, nil, nil)
	archive := service.NewArchiveService(owners, students, &archiveSinkStub{}, enquiries, nil)
	exports := service.NewExportService(enquiries, true, nil)
	h := NewEnquiryHandler(enquiries, assignments, archive, exports)

	r := gin.New()
	r.GET("/enquiries", h.List)
	r.GET("/enquiries/export", h.Export)
	r.POST("/enquiries/:id/assignments", h.Assign)
	r.GET("/enquiries/:id/allocatable-tutors", h.AllocatableTutors)
	r.POST("/enquiries/:id/archive", h.Archive)
	r.DELETE("/enquiries/:id", h.Delete)
	return r
}

func TestEnquiryListHandler(t *testing.T) {
	owners := &ownerSourceStub{owners: []models.BookingOwner{
		{ID: "o1", FirstName: "Jane", LastName: "Doe", Students: []models.Student{
			{ID: "s1", Name: "Alice", Instruments: models.InstrumentList{"Piano"}},
		}},
	}}
	r := newEnquiryTestRouter(owners, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enquiries", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	rows, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestAssignHandlerRejectsBadJSON(t *testing.T) {
	r := newEnquiryTestRouter(&ownerSourceStub{}, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enquiries/o1/assignments", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignHandlerAppliesSelections(t *testing.T) {
	owners := &ownerSourceStub{owners: []models.BookingOwner{
		{ID: "o1", Students: []models.Student{{ID: "s1", Name: "Alice"}}},
	}}
	students := &studentSourceStub{}
	r := newEnquiryTestRouter(owners, students, &tutorSourceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enquiries/o1/assignments", strings.NewReader(`{"selections":{"s1":"t1"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, students.updates["s1"])
	assert.Equal(t, "t1", *students.updates["s1"])
}

func TestAssignHandlerUnknownEnquiry(t *testing.T) {
	r := newEnquiryTestRouter(&ownerSourceStub{}, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enquiries/missing/assignments", strings.NewReader(`{"selections":{"s1":"t1"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAllocatableTutorsHandlerRequiresStudentID(t *testing.T) {
	r := newEnquiryTestRouter(&ownerSourceStub{}, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enquiries/o1/allocatable-tutors", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllocatableTutorsHandlerFiltersCatalog(t *testing.T) {
	students := &studentSourceStub{students: map[string]*models.Student{
		"s1": {ID: "s1", Instruments: models.InstrumentList{"Piano"}},
	}}
	tutors := &tutorSourceStub{tutors: []models.Tutor{
		{ID: "t1", Instruments: models.InstrumentList{"Piano"}},
		{ID: "t2", Instruments: models.InstrumentList{"Guitar"}},
	}}
	r := newEnquiryTestRouter(&ownerSourceStub{}, students, tutors)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enquiries/o1/allocatable-tutors?studentId=s1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	rows, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 1)
}

func TestExportHandlerDefaultsToCSV(t *testing.T) {
	owners := &ownerSourceStub{owners: []models.BookingOwner{
		{ID: "o1", FirstName: "Jane", LastName: "Doe"},
	}}
	r := newEnquiryTestRouter(owners, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enquiries/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "enquiries.csv")
}

func TestDeleteHandlerUnknownEnquiry(t *testing.T) {
	r := newEnquiryTestRouter(&ownerSourceStub{}, &studentSourceStub{}, &tutorSourceStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/enquiries/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
