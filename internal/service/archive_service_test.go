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

type archiveOwnerStub struct {
	owners  map[string]*models.BookingOwner
	deleted []string
}

func newArchiveOwnerStub() *archiveOwnerStub {
	return &archiveOwnerStub{owners: make(map[string]*models.BookingOwner)}
}

func (s *archiveOwnerStub) FindByID(ctx context.Context, id string) (*models.BookingOwner, error) {
	if owner, ok := s.owners[id]; ok {
		return owner, nil
	}
	return nil, sql.ErrNoRows
}

func (s *archiveOwnerStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type archiveStudentStub struct {
	deleted []string
	err     error
}

func (s *archiveStudentStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type archiveStoreStub struct {
	snapshots []string
	err       error
}

func (s *archiveStoreStub) Archive(ctx context.Context, owner *models.BookingOwner) error {
	if s.err != nil {
		return s.err
	}
	s.snapshots = append(s.snapshots, owner.ID)
	return nil
}

func newArchiveFixture(owners *archiveOwnerStub, students *archiveStudentStub, store *archiveStoreStub) *ArchiveService {
	enquiries := NewEnquiryService(&ownerReaderStub{}, disabledCache(), time.Minute, nil)
	return NewArchiveService(owners, students, store, enquiries, nil)
}

func TestArchiveSnapshotsWithoutDeleting(t *testing.T) {
	owners := newArchiveOwnerStub()
	owners.owners["o1"] = &models.BookingOwner{ID: "o1"}
	store := &archiveStoreStub{}
	svc := newArchiveFixture(owners, &archiveStudentStub{}, store)

	require.NoError(t, svc.Archive(context.Background(), "o1"))
	assert.Equal(t, []string{"o1"}, store.snapshots)
	assert.Empty(t, owners.deleted)
}

func TestDeleteArchivesBeforeDeleting(t *testing.T) {
	owners := newArchiveOwnerStub()
	owners.owners["o1"] = &models.BookingOwner{ID: "o1"}
	store := &archiveStoreStub{}
	svc := newArchiveFixture(owners, &archiveStudentStub{}, store)

	require.NoError(t, svc.Delete(context.Background(), "o1"))
	assert.Equal(t, []string{"o1"}, store.snapshots)
	assert.Equal(t, []string{"o1"}, owners.deleted)
}

func TestDeleteAbortsWhenArchiveFails(t *testing.T) {
	owners := newArchiveOwnerStub()
	owners.owners["o1"] = &models.BookingOwner{ID: "o1"}
	store := &archiveStoreStub{err: fmt.Errorf("insert failed")}
	svc := newArchiveFixture(owners, &archiveStudentStub{}, store)

	assert.Error(t, svc.Delete(context.Background(), "o1"))
	assert.Empty(t, owners.deleted)
}

func TestDeleteUnknownEnquiry(t *testing.T) {
	svc := newArchiveFixture(newArchiveOwnerStub(), &archiveStudentStub{}, &archiveStoreStub{})

	assert.Error(t, svc.Delete(context.Background(), "missing"))
}

func TestDeleteStudent(t *testing.T) {
	students := &archiveStudentStub{}
	svc := newArchiveFixture(newArchiveOwnerStub(), students, &archiveStoreStub{})

	require.NoError(t, svc.DeleteStudent(context.Background(), "s1"))
	assert.Equal(t, []string{"s1"}, students.deleted)
}

func TestDeleteStudentNotFound(t *testing.T) {
	students := &archiveStudentStub{err: sql.ErrNoRows}
	svc := newArchiveFixture(newArchiveOwnerStub(), students, &archiveStoreStub{})

	assert.Error(t, svc.DeleteStudent(context.Background(), "missing"))
}
