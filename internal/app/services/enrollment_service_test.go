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
	"github.com/escolabr/escolar/internal/db"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/auth"
)

// fakeTxRunner executes the function directly; the fakes below ignore the
// nil transaction.
type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type schoolLink struct{ identityID, schoolID uuid.UUID }

type fakeIdentityRepo struct {
	identities map[uuid.UUID]*models.Identity
	attached   map[schoolLink]bool
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{
		identities: make(map[uuid.UUID]*models.Identity),
		attached:   make(map[schoolLink]bool),
	}
}

func (f *fakeIdentityRepo) WithTx(tx pgx.Tx) repositories.IIdentityRepository { return f }

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	if identity, ok := f.identities[id]; ok {
		copied := *identity
		return &copied, nil
	}
	return nil, apperrors.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) GetByCPF(ctx context.Context, cpf string) (*models.Identity, error) {
	for _, identity := range f.identities {
		if identity.CPF != nil && *identity.CPF == cpf {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, apperrors.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	for _, identity := range f.identities {
		if identity.Email != nil && *identity.Email == email {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, apperrors.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) CPFExists(ctx context.Context, cpf string) (bool, error) {
	_, err := f.GetByCPF(ctx, cpf)
	return err == nil, nil
}

func (f *fakeIdentityRepo) Create(ctx context.Context, identity *models.Identity) error {
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	copied := *identity
	f.identities[identity.ID] = &copied
	return nil
}

func (f *fakeIdentityRepo) Update(ctx context.Context, identity *models.Identity) error {
	if _, ok := f.identities[identity.ID]; !ok {
		return apperrors.ErrIdentityNotFound
	}
	copied := *identity
	f.identities[identity.ID] = &copied
	return nil
}

func (f *fakeIdentityRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeIdentityRepo) AttachToSchool(ctx context.Context, identityID, schoolID uuid.UUID) error {
	f.attached[schoolLink{identityID, schoolID}] = true
	return nil
}

func (f *fakeIdentityRepo) SchoolsFor(ctx context.Context, identityID uuid.UUID) ([]*models.School, error) {
	return nil, nil
}

type fakeRoleRepo struct {
	roles map[uuid.UUID][]string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID][]string)}
}

func (f *fakeRoleRepo) WithTx(tx pgx.Tx) repositories.IRoleRepository  { return f }
func (f *fakeRoleRepo) EnsureRole(ctx context.Context, n string) error { return nil }

func (f *fakeRoleRepo) AssignRole(ctx context.Context, identityID uuid.UUID, roleName string) error {
	for _, role := range f.roles[identityID] {
		if role == roleName {
			return nil
		}
	}
	f.roles[identityID] = append(f.roles[identityID], roleName)
	return nil
}

func (f *fakeRoleRepo) HasAnyRole(ctx context.Context, identityID uuid.UUID) (bool, error) {
	return len(f.roles[identityID]) > 0, nil
}

func (f *fakeRoleRepo) GetRoleNames(ctx context.Context, identityID uuid.UUID) ([]string, error) {
	return f.roles[identityID], nil
}

type fakeSchoolRepo struct {
	schools map[uuid.UUID]*models.School
}

func newFakeSchoolRepo(ids ...uuid.UUID) *fakeSchoolRepo {
	repo := &fakeSchoolRepo{schools: make(map[uuid.UUID]*models.School)}
	for _, id := range ids {
		repo.schools[id] = &models.School{ID: id, Name: "School " + id.String()[:8], Active: true}
	}
	return repo
}

func (f *fakeSchoolRepo) WithTx(tx pgx.Tx) repositories.ISchoolRepository { return f }

func (f *fakeSchoolRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.School, error) {
	if school, ok := f.schools[id]; ok {
		return school, nil
	}
	return nil, apperrors.ErrSchoolNotFound
}

func (f *fakeSchoolRepo) Create(ctx context.Context, s *models.School) error { return nil }
func (f *fakeSchoolRepo) Update(ctx context.Context, s *models.School) error { return nil }
func (f *fakeSchoolRepo) List(ctx context.Context, filter repositories.ListFilter) ([]*models.School, int64, error) {
	return nil, 0, nil
}
func (f *fakeSchoolRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeStudentRepo struct {
	students   map[uuid.UUID]*models.Student
	identities *fakeIdentityRepo
}

func newFakeStudentRepo(identities *fakeIdentityRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[uuid.UUID]*models.Student), identities: identities}
}

func (f *fakeStudentRepo) WithTx(tx pgx.Tx) repositories.IStudentRepository { return f }

func (f *fakeStudentRepo) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok || student.SchoolID != schoolID {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	copied.Identity, _ = f.identities.GetByID(ctx, student.IdentityID)
	return &copied, nil
}

func (f *fakeStudentRepo) GetByIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (*models.Student, error) {
	for _, student := range f.students {
		if student.SchoolID == schoolID && student.IdentityID == identityID {
			copied := *student
			return &copied, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentRepo) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	_, err := f.GetByIdentity(ctx, schoolID, identityID)
	return err == nil, nil
}

func (f *fakeStudentRepo) EnrollmentNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	for _, student := range f.students {
		if student.SchoolID != schoolID || student.EnrollmentNumber != number {
			continue
		}
		if excludeID != nil && student.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	copied := *student
	copied.Identity = nil
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	copied := *student
	copied.Identity = nil
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentRepo) List(ctx context.Context, schoolID uuid.UUID, filter repositories.ListFilter) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, student := range f.students {
		if student.SchoolID == schoolID {
			copied := *student
			copied.Identity, _ = f.identities.GetByID(ctx, student.IdentityID)
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) GetByIDs(ctx context.Context, schoolID uuid.UUID, ids []uuid.UUID) ([]*models.Student, error) {
	var out []*models.Student
	for _, id := range ids {
		if student, ok := f.students[id]; ok && student.SchoolID == schoolID {
			copied := *student
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	student, ok := f.students[id]
	if !ok || student.SchoolID != schoolID {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeTeacherRepo struct {
	teachers   map[uuid.UUID]*models.Teacher
	identities *fakeIdentityRepo
}

func newFakeTeacherRepo(identities *fakeIdentityRepo) *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: make(map[uuid.UUID]*models.Teacher), identities: identities}
}

func (f *fakeTeacherRepo) WithTx(tx pgx.Tx) repositories.ITeacherRepository { return f }

func (f *fakeTeacherRepo) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Teacher, error) {
	teacher, ok := f.teachers[id]
	if !ok || teacher.SchoolID != schoolID {
		return nil, apperrors.ErrTeacherNotFound
	}
	copied := *teacher
	copied.Identity, _ = f.identities.GetByID(ctx, teacher.IdentityID)
	return &copied, nil
}

func (f *fakeTeacherRepo) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	for _, teacher := range f.teachers {
		if teacher.SchoolID == schoolID && teacher.IdentityID == identityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeacherRepo) RegistrationNumberExists(ctx context.Context, schoolID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	for _, teacher := range f.teachers {
		if teacher.SchoolID != schoolID || teacher.RegistrationNumber != number {
			continue
		}
		if excludeID != nil && teacher.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}
	copied := *teacher
	copied.Identity = nil
	f.teachers[teacher.ID] = &copied
	return nil
}

func (f *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := f.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	copied := *teacher
	copied.Identity = nil
	f.teachers[teacher.ID] = &copied
	return nil
}

func (f *fakeTeacherRepo) List(ctx context.Context, schoolID uuid.UUID, filter repositories.ListFilter) ([]*models.Teacher, int64, error) {
	return nil, 0, nil
}

func (f *fakeTeacherRepo) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	delete(f.teachers, id)
	return nil
}

type fakeGuardianRepo struct {
	guardians  map[uuid.UUID]*models.Guardian
	links      map[uuid.UUID][]uuid.UUID
	identities *fakeIdentityRepo
	students   *fakeStudentRepo
}

func newFakeGuardianRepo(identities *fakeIdentityRepo, students *fakeStudentRepo) *fakeGuardianRepo {
	return &fakeGuardianRepo{
		guardians:  make(map[uuid.UUID]*models.Guardian),
		links:      make(map[uuid.UUID][]uuid.UUID),
		identities: identities,
		students:   students,
	}
}

func (f *fakeGuardianRepo) WithTx(tx pgx.Tx) repositories.IGuardianRepository { return f }

func (f *fakeGuardianRepo) GetByID(ctx context.Context, schoolID, id uuid.UUID) (*models.Guardian, error) {
	guardian, ok := f.guardians[id]
	if !ok || guardian.SchoolID != schoolID {
		return nil, apperrors.ErrGuardianNotFound
	}
	copied := *guardian
	copied.Identity, _ = f.identities.GetByID(ctx, guardian.IdentityID)
	return &copied, nil
}

func (f *fakeGuardianRepo) ExistsForIdentity(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error) {
	for _, guardian := range f.guardians {
		if guardian.SchoolID == schoolID && guardian.IdentityID == identityID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGuardianRepo) Create(ctx context.Context, guardian *models.Guardian) error {
	if guardian.ID == uuid.Nil {
		guardian.ID = uuid.New()
	}
	copied := *guardian
	copied.Identity = nil
	f.guardians[guardian.ID] = &copied
	return nil
}

func (f *fakeGuardianRepo) Update(ctx context.Context, guardian *models.Guardian) error {
	if _, ok := f.guardians[guardian.ID]; !ok {
		return apperrors.ErrGuardianNotFound
	}
	copied := *guardian
	copied.Identity = nil
	f.guardians[guardian.ID] = &copied
	return nil
}

func (f *fakeGuardianRepo) List(ctx context.Context, schoolID uuid.UUID, filter repositories.ListFilter) ([]*models.Guardian, int64, error) {
	return nil, 0, nil
}

func (f *fakeGuardianRepo) SoftDelete(ctx context.Context, schoolID, id uuid.UUID) error {
	delete(f.guardians, id)
	return nil
}

func (f *fakeGuardianRepo) LinkStudent(ctx context.Context, guardianID, studentID uuid.UUID) error {
	for _, linked := range f.links[guardianID] {
		if linked == studentID {
			return nil
		}
	}
	f.links[guardianID] = append(f.links[guardianID], studentID)
	return nil
}

func (f *fakeGuardianRepo) GetStudents(ctx context.Context, schoolID, guardianID uuid.UUID) ([]*models.Student, error) {
	return f.students.GetByIDs(ctx, schoolID, f.links[guardianID])
}

type enrollmentFixture struct {
	service    *EnrollmentService
	identities *fakeIdentityRepo
	roles      *fakeRoleRepo
	students   *fakeStudentRepo
	teachers   *fakeTeacherRepo
	guardians  *fakeGuardianRepo
	schoolA    uuid.UUID
	schoolB    uuid.UUID
}

func newEnrollmentFixture() *enrollmentFixture {
	schoolA := uuid.New()
	schoolB := uuid.New()

	identities := newFakeIdentityRepo()
	roles := newFakeRoleRepo()
	students := newFakeStudentRepo(identities)
	teachers := newFakeTeacherRepo(identities)
	guardians := newFakeGuardianRepo(identities, students)

	service := NewEnrollmentService(&fakeTxRunner{}, identities, roles,
		newFakeSchoolRepo(schoolA, schoolB), students, teachers, guardians)

	return &enrollmentFixture{
		service:    service,
		identities: identities,
		roles:      roles,
		students:   students,
		teachers:   teachers,
		guardians:  guardians,
		schoolA:    schoolA,
		schoolB:    schoolB,
	}
}

func strPtr(s string) *string { return &s }

// Valid CPFs with correct check digits.
const (
	cpfAlice = "52998224725"
	cpfBruno = "11144477735"
)

func studentRequest(name, cpf, email, number string) *dto.CreateStudentRequest {
	req := &dto.CreateStudentRequest{
		EnrollmentNumber: number,
		Grade:            "5A",
	}
	req.FullName = name
	if cpf != "" {
		req.CPF = strPtr(cpf)
	}
	if email != "" {
		req.Email = strPtr(email)
	}
	return req
}

func TestEnrollStudentCreatesIdentityWithDefaults(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	resp, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", "529.982.247-25", "alice@example.com", "M-001"))
	require.NoError(t, err)

	assert.Equal(t, "Alice Souza", resp.FullName)
	require.NotNil(t, resp.CPF)
	assert.Equal(t, cpfAlice, *resp.CPF)
	assert.Equal(t, "M-001", resp.EnrollmentNumber)
	assert.True(t, resp.Active)

	require.Len(t, f.identities.identities, 1)
	var identity *models.Identity
	for _, i := range f.identities.identities {
		identity = i
	}

	// No explicit password: the CPF digits become the initial credential
	assert.True(t, auth.CheckPassword(identity.PasswordHash, cpfAlice))

	roles, _ := f.roles.GetRoleNames(ctx, identity.ID)
	assert.Equal(t, []string{models.RoleStudent}, roles)

	assert.True(t, f.identities.attached[schoolLink{identity.ID, f.schoolA}])
}

func TestEnrollStudentExplicitPasswordWins(t *testing.T) {
	f := newEnrollmentFixture()

	req := studentRequest("Alice Souza", cpfAlice, "", "M-001")
	req.Password = strPtr("supersecret1")

	_, err := f.service.EnrollStudent(context.Background(), f.schoolA, req)
	require.NoError(t, err)

	for _, identity := range f.identities.identities {
		assert.True(t, auth.CheckPassword(identity.PasswordHash, "supersecret1"))
		assert.False(t, auth.CheckPassword(identity.PasswordHash, cpfAlice))
	}
}

func TestEnrollSamePersonAsTeacherReusesIdentity(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)

	teacherReq := &dto.CreateTeacherRequest{
		RegistrationNumber: "T-100",
		Subjects:           []string{"math", "physics"},
	}
	teacherReq.FullName = "Alice S. Souza"
	teacherReq.CPF = strPtr(cpfAlice)

	resp, err := f.service.EnrollTeacher(ctx, f.schoolB, teacherReq)
	require.NoError(t, err)

	// Same person, no second identity
	require.Len(t, f.identities.identities, 1)
	assert.Equal(t, []string{"math", "physics"}, resp.Subjects)

	var identity *models.Identity
	for _, i := range f.identities.identities {
		identity = i
	}

	// Reuse refreshed the name but kept the credential and the student role
	assert.Equal(t, "Alice S. Souza", identity.FullName)
	assert.True(t, auth.CheckPassword(identity.PasswordHash, cpfAlice))
	roles, _ := f.roles.GetRoleNames(ctx, identity.ID)
	assert.Equal(t, []string{models.RoleStudent}, roles)

	assert.True(t, f.identities.attached[schoolLink{identity.ID, f.schoolB}])
}

func TestEnrollReuseByCPFBackfillsMissingEmail(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	// First contact: CPF only, no email on file
	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)

	var originalHash string
	for _, identity := range f.identities.identities {
		require.Nil(t, identity.Email)
		originalHash = identity.PasswordHash
	}

	teacherReq := &dto.CreateTeacherRequest{RegistrationNumber: "T-100"}
	teacherReq.FullName = "Alice Souza"
	teacherReq.CPF = strPtr(cpfAlice)
	teacherReq.Email = strPtr("alice@example.com")

	_, err = f.service.EnrollTeacher(ctx, f.schoolB, teacherReq)
	require.NoError(t, err)

	// Same person: the email was filled in on the existing identity, no
	// second row, credential untouched
	require.Len(t, f.identities.identities, 1)
	for _, identity := range f.identities.identities {
		require.NotNil(t, identity.Email)
		assert.Equal(t, "alice@example.com", *identity.Email)
		assert.Equal(t, originalHash, identity.PasswordHash)
	}
}

func TestEnrollStudentConflictingIdentityRejected(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)
	_, err = f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Bruno Lima", cpfBruno, "bruno@example.com", "M-002"))
	require.NoError(t, err)

	// Alice's CPF with Bruno's email: two different people
	_, err = f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Mallory", cpfAlice, "bruno@example.com", "M-003"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflictingIdentity)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
	assert.Contains(t, validationErr.Fields, "email")

	// Nothing was persisted for the rejected request
	assert.Len(t, f.identities.identities, 2)
	assert.Len(t, f.students.students, 2)
}

func TestEnrollStudentTwiceSameSchoolRejected(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)

	_, err = f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-099"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	// Attributed to the cpf because one was sent
	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
	assert.NotContains(t, validationErr.Fields, "email")
}

func TestEnrollStudentTwiceEmailOnlyAttributedToEmail(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", "", "alice@example.com", "M-001"))
	require.NoError(t, err)

	_, err = f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", "", "alice@example.com", "M-099"))
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}

func TestEnrollSameStudentInOtherSchoolAllowed(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)

	_, err = f.service.EnrollStudent(ctx, f.schoolB,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)

	assert.Len(t, f.identities.identities, 1)
	assert.Len(t, f.students.students, 2)
}

func TestEnrollStudentDuplicateEnrollmentNumber(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)

	_, err = f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Bruno Lima", cpfBruno, "", "M-001"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollmentNumber)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "enrollmentNumber")
}

func TestEnrollStudentRequiresCPFOrEmail(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.EnrollStudent(context.Background(), f.schoolA,
		studentRequest("Alice Souza", "", "", "M-001"))
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
	assert.Contains(t, validationErr.Fields, "email")
}

func TestEnrollStudentRejectsBadCPFCheckDigits(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.EnrollStudent(context.Background(), f.schoolA,
		studentRequest("Alice Souza", "52998224724", "", "M-001"))
	require.Error(t, err)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "cpf")
}

func TestEnrollStudentUnknownSchool(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.EnrollStudent(context.Background(), uuid.New(),
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}

func TestUpdateStudentKeepsCredentialAndIgnoresSelfNumber(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	created, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "alice@example.com", "M-001"))
	require.NoError(t, err)
	studentID := uuid.MustParse(created.ID)

	var originalHash string
	for _, identity := range f.identities.identities {
		originalHash = identity.PasswordHash
	}

	// Same enrollment number plus a new password, which must be ignored
	updateReq := studentRequest("Alice Updated", cpfAlice, "alice@example.com", "M-001")
	updateReq.Grade = "6B"
	updateReq.Password = strPtr("newpassword123")

	resp, err := f.service.UpdateStudent(ctx, f.schoolA, studentID, updateReq)
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", resp.FullName)
	assert.Equal(t, "6B", resp.Grade)

	for _, identity := range f.identities.identities {
		assert.Equal(t, originalHash, identity.PasswordHash)
	}
}

func TestUpdateStudentRejectsTakenNumber(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)
	created, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Bruno Lima", cpfBruno, "", "M-002"))
	require.NoError(t, err)

	updateReq := studentRequest("Bruno Lima", cpfBruno, "", "M-001")
	_, err = f.service.UpdateStudent(ctx, f.schoolA, uuid.MustParse(created.ID), updateReq)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollmentNumber)
}

func TestUpdateStudentRejectsRekeyToOtherPerson(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	_, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)
	created, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Bruno Lima", cpfBruno, "", "M-002"))
	require.NoError(t, err)

	updateReq := studentRequest("Bruno Lima", cpfAlice, "", "M-002")
	_, err = f.service.UpdateStudent(ctx, f.schoolA, uuid.MustParse(created.ID), updateReq)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCPFAlreadyExists)
}

func TestEnrollGuardianAndLinkStudents(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	student, err := f.service.EnrollStudent(ctx, f.schoolA,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)

	guardianReq := &dto.CreateGuardianRequest{Relationship: strPtr("mother")}
	guardianReq.FullName = "Maria Souza"
	guardianReq.Email = strPtr("maria@example.com")

	guardian, err := f.service.EnrollGuardian(ctx, f.schoolA, guardianReq)
	require.NoError(t, err)

	linked, err := f.service.LinkStudents(ctx, f.schoolA, uuid.MustParse(guardian.ID),
		&dto.LinkStudentsRequest{StudentIDs: []string{student.ID}})
	require.NoError(t, err)
	require.Len(t, linked.Students, 1)
	assert.Equal(t, student.ID, linked.Students[0].ID)

	// Linking again is a no-op
	linked, err = f.service.LinkStudents(ctx, f.schoolA, uuid.MustParse(guardian.ID),
		&dto.LinkStudentsRequest{StudentIDs: []string{student.ID}})
	require.NoError(t, err)
	assert.Len(t, linked.Students, 1)
}

func TestLinkStudentsRejectsOtherSchool(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	student, err := f.service.EnrollStudent(ctx, f.schoolB,
		studentRequest("Alice Souza", cpfAlice, "", "M-001"))
	require.NoError(t, err)

	guardianReq := &dto.CreateGuardianRequest{}
	guardianReq.FullName = "Maria Souza"
	guardianReq.Email = strPtr("maria@example.com")
	guardian, err := f.service.EnrollGuardian(ctx, f.schoolA, guardianReq)
	require.NoError(t, err)

	_, err = f.service.LinkStudents(ctx, f.schoolA, uuid.MustParse(guardian.ID),
		&dto.LinkStudentsRequest{StudentIDs: []string{student.ID}})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestEnrollTeacherDuplicateRegistrationNumber(t *testing.T) {
	f := newEnrollmentFixture()
	ctx := context.Background()

	first := &dto.CreateTeacherRequest{RegistrationNumber: "T-100"}
	first.FullName = "Alice Souza"
	first.CPF = strPtr(cpfAlice)
	_, err := f.service.EnrollTeacher(ctx, f.schoolA, first)
	require.NoError(t, err)

	second := &dto.CreateTeacherRequest{RegistrationNumber: "T-100"}
	second.FullName = "Bruno Lima"
	second.CPF = strPtr(cpfBruno)
	_, err = f.service.EnrollTeacher(ctx, f.schoolA, second)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRegistrationNumber)
}
