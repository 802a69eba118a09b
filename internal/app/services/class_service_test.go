package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
)

type fakeClassRepo struct {
	classes     map[uuid.UUID]*models.SchoolClass
	enrollments []*models.ClassEnrollment
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[uuid.UUID]*models.SchoolClass)}
}

func (f *fakeClassRepo) WithTx(tx pgx.Tx) repositories.IClassRepository { return f }

func (f *fakeClassRepo) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.SchoolClass, error) {
	class, ok := f.classes[id]
	if !ok || class.SchoolID != schoolID {
		return nil, apperrors.ErrClassNotFound
	}
	copied := *class
	return &copied, nil
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.SchoolClass) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	copied := *class
	f.classes[class.ID] = &copied
	return nil
}

func (f *fakeClassRepo) Update(ctx context.Context, class *models.SchoolClass) error {
	if _, ok := f.classes[class.ID]; !ok {
		return apperrors.ErrClassNotFound
	}
	copied := *class
	f.classes[class.ID] = &copied
	return nil
}

func (f *fakeClassRepo) List(ctx context.Context, schoolID uuid.UUID, filter repositories.ListFilter) ([]*models.SchoolClass, int64, error) {
	return nil, 0, nil
}

func (f *fakeClassRepo) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	delete(f.classes, id)
	return nil
}

func (f *fakeClassRepo) GetActiveEnrollment(ctx context.Context, schoolID, studentID uuid.UUID) (*models.ClassEnrollment, error) {
	for _, e := range f.enrollments {
		if e.SchoolID == schoolID && e.StudentID == studentID && e.Status == models.ClassEnrollmentActive {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeClassRepo) CloseActiveEnrollments(ctx context.Context, schoolID, studentID uuid.UUID) error {
	for _, e := range f.enrollments {
		if e.SchoolID == schoolID && e.StudentID == studentID && e.Status == models.ClassEnrollmentActive {
			e.Status = models.ClassEnrollmentClosed
		}
	}
	return nil
}

func (f *fakeClassRepo) CreateEnrollment(ctx context.Context, enrollment *models.ClassEnrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	for _, e := range f.enrollments {
		if e.SchoolID == enrollment.SchoolID && e.StudentID == enrollment.StudentID &&
			e.Status == models.ClassEnrollmentActive {
			return apperrors.ErrAlreadyInClass
		}
	}
	copied := *enrollment
	f.enrollments = append(f.enrollments, &copied)
	return nil
}

type classFixture struct {
	service  *ClassService
	classes  *fakeClassRepo
	schoolID uuid.UUID
	student  uuid.UUID
}

func newClassFixture(t *testing.T) *classFixture {
	t.Helper()

	schoolID := uuid.New()
	identities := newFakeIdentityRepo()
	students := newFakeStudentRepo(identities)

	student := &models.Student{
		SchoolID:         schoolID,
		IdentityID:       uuid.New(),
		EnrollmentNumber: "M-001",
		Grade:            "5A",
		Active:           true,
	}
	require.NoError(t, students.Create(context.Background(), student))

	classes := newFakeClassRepo()
	return &classFixture{
		service:  NewClassService(&fakeTxRunner{}, classes, students),
		classes:  classes,
		schoolID: schoolID,
		student:  student.ID,
	}
}

func (f *classFixture) createClass(t *testing.T, name string) uuid.UUID {
	t.Helper()
	resp, err := f.service.CreateClass(context.Background(), f.schoolID, &dto.CreateClassRequest{
		Name:         name,
		Grade:        "5A",
		AcademicYear: 2026,
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestReenrollStudentOpensEnrollment(t *testing.T) {
	f := newClassFixture(t)
	classID := f.createClass(t, "5A Morning")

	resp, err := f.service.ReenrollStudent(context.Background(), f.schoolID, f.student,
		&dto.ReenrollStudentRequest{ClassID: classID.String()})
	require.NoError(t, err)
	assert.Equal(t, classID.String(), resp.ID)

	active, err := f.classes.GetActiveEnrollment(context.Background(), f.schoolID, f.student)
	require.NoError(t, err)
	assert.Equal(t, classID, active.ClassID)
}

func TestReenrollStudentClosesPreviousEnrollment(t *testing.T) {
	f := newClassFixture(t)
	ctx := context.Background()
	first := f.createClass(t, "5A Morning")
	second := f.createClass(t, "5B Afternoon")

	_, err := f.service.ReenrollStudent(ctx, f.schoolID, f.student,
		&dto.ReenrollStudentRequest{ClassID: first.String()})
	require.NoError(t, err)

	_, err = f.service.ReenrollStudent(ctx, f.schoolID, f.student,
		&dto.ReenrollStudentRequest{ClassID: second.String()})
	require.NoError(t, err)

	active, err := f.classes.GetActiveEnrollment(ctx, f.schoolID, f.student)
	require.NoError(t, err)
	assert.Equal(t, second, active.ClassID)

	// Exactly one open enrollment remains
	open := 0
	for _, e := range f.classes.enrollments {
		if e.Status == models.ClassEnrollmentActive {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestReenrollStudentRejectsInactiveClass(t *testing.T) {
	f := newClassFixture(t)
	ctx := context.Background()
	classID := f.createClass(t, "5A Morning")

	_, err := f.service.UpdateClass(ctx, f.schoolID, classID, &dto.UpdateClassRequest{
		Name:         "5A Morning",
		Grade:        "5A",
		AcademicYear: 2026,
		Active:       boolPtr(false),
	})
	require.NoError(t, err)

	_, err = f.service.ReenrollStudent(ctx, f.schoolID, f.student,
		&dto.ReenrollStudentRequest{ClassID: classID.String()})
	assert.ErrorIs(t, err, apperrors.ErrClassInactive)
}

func TestReenrollStudentUnknownStudent(t *testing.T) {
	f := newClassFixture(t)
	classID := f.createClass(t, "5A Morning")

	_, err := f.service.ReenrollStudent(context.Background(), f.schoolID, uuid.New(),
		&dto.ReenrollStudentRequest{ClassID: classID.String()})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func boolPtr(b bool) *bool { return &b }
