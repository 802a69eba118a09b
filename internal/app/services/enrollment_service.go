package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/db"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/auth"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// TxRunner runs a function inside a database transaction. *db.PostgresDB
// satisfies it; tests substitute a fake that calls the function directly.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// EnrollmentService implements the reconciliation-and-enrollment core: one
// person (identity) may hold a student, teacher and guardian profile in any
// number of schools, keyed by CPF or email. All three profile kinds share a
// single resolve-or-create path; only the profile payload differs.
type EnrollmentService struct {
	tx         TxRunner
	identities repositories.IIdentityRepository
	roles      repositories.IRoleRepository
	schools    repositories.ISchoolRepository
	students   repositories.IStudentRepository
	teachers   repositories.ITeacherRepository
	guardians  repositories.IGuardianRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	tx TxRunner,
	identities repositories.IIdentityRepository,
	roles repositories.IRoleRepository,
	schools repositories.ISchoolRepository,
	students repositories.IStudentRepository,
	teachers repositories.ITeacherRepository,
	guardians repositories.IGuardianRepository,
) *EnrollmentService {
	return &EnrollmentService{
		tx:         tx,
		identities: identities,
		roles:      roles,
		schools:    schools,
		students:   students,
		teachers:   teachers,
		guardians:  guardians,
	}
}

// resolveIdentity looks up an existing identity by CPF first, then by email.
// When both keys are present and each resolves to a different identity the
// request is ambiguous and is rejected against both fields.
func resolveIdentity(ctx context.Context, identities repositories.IIdentityRepository, person *dto.PersonInput) (*models.Identity, error) {
	var byCPF, byEmail *models.Identity

	if person.CPF != nil {
		found, err := identities.GetByCPF(ctx, *person.CPF)
		if err != nil && !errors.Is(err, apperrors.ErrIdentityNotFound) {
			return nil, err
		}
		byCPF = found
	}

	if person.Email != nil {
		found, err := identities.GetByEmail(ctx, *person.Email)
		if err != nil && !errors.Is(err, apperrors.ErrIdentityNotFound) {
			return nil, err
		}
		byEmail = found
	}

	if byCPF != nil && byEmail != nil && byCPF.ID != byEmail.ID {
		return nil, apperrors.NewValidationError(apperrors.ErrConflictingIdentity,
			"cpf", "cpf belongs to a different person than the email",
			"email", "email belongs to a different person than the cpf")
	}

	if byCPF != nil {
		return byCPF, nil
	}
	return byEmail, nil
}

// initialPassword picks the credential for a brand-new identity: the explicit
// password when given, else the CPF digits, else a random one the person must
// reset to use.
func initialPassword(person *dto.PersonInput) string {
	if person.Password != nil && *person.Password != "" {
		return *person.Password
	}
	if person.CPF != nil {
		return *person.CPF
	}
	return randomPassword()
}

func randomPassword() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to a
		// fresh UUID rather than a predictable value.
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

// createOrReuseIdentity resolves the person to an existing identity or
// creates one. On reuse the mutable fields are refreshed and missing keys are
// filled in, but the stored credential is never touched.
func createOrReuseIdentity(ctx context.Context, identities repositories.IIdentityRepository, person *dto.PersonInput) (*models.Identity, bool, error) {
	identity, err := resolveIdentity(ctx, identities, person)
	if err != nil {
		return nil, false, err
	}

	if identity != nil {
		identity.FullName = person.FullName
		if person.CPF != nil {
			identity.CPF = person.CPF
		}
		if person.Email != nil {
			identity.Email = person.Email
		}
		if person.Phone != nil {
			identity.Phone = person.Phone
		}
		if person.Active != nil {
			identity.Active = *person.Active
		}
		if err := identities.Update(ctx, identity); err != nil {
			return nil, false, err
		}
		return identity, false, nil
	}

	hash, err := auth.HashPassword(initialPassword(person))
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	identity = &models.Identity{
		FullName:     person.FullName,
		CPF:          person.CPF,
		Email:        person.Email,
		Phone:        person.Phone,
		PasswordHash: hash,
		Active:       true,
	}
	if person.Active != nil {
		identity.Active = *person.Active
	}
	if err := identities.Create(ctx, identity); err != nil {
		return nil, false, err
	}
	return identity, true, nil
}

// identityKeyField names the field an already-enrolled rejection is reported
// against: the cpf when one was sent, otherwise the email.
func identityKeyField(person *dto.PersonInput) string {
	if person.CPF != nil {
		return "cpf"
	}
	return "email"
}

// profileGate describes the per-kind pieces of the shared enrollment path:
// how to detect an existing profile, which error that is, and which role a
// brand-new identity gets.
type profileGate struct {
	exists      func(ctx context.Context, schoolID, identityID uuid.UUID) (bool, error)
	alreadyErr  error
	alreadyMsg  string
	defaultRole string
}

// admitIdentity runs the kind-independent half of every enrollment: verify
// the school, resolve or create the identity, reject a duplicate profile,
// grant the default role to new identities and link the identity to the
// school. It must run inside the caller's transaction.
func (s *EnrollmentService) admitIdentity(
	ctx context.Context,
	tx pgx.Tx,
	schoolID uuid.UUID,
	person *dto.PersonInput,
	gate profileGate,
) (*models.Identity, error) {
	schools := s.schools.WithTx(tx)
	identities := s.identities.WithTx(tx)
	roles := s.roles.WithTx(tx)

	if _, err := schools.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}

	identity, created, err := createOrReuseIdentity(ctx, identities, person)
	if err != nil {
		return nil, err
	}

	if !created {
		exists, err := gate.exists(ctx, schoolID, identity.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewValidationError(gate.alreadyErr,
				identityKeyField(person), gate.alreadyMsg)
		}
	}

	if created {
		hasRoles, err := roles.HasAnyRole(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		if !hasRoles {
			if err := roles.AssignRole(ctx, identity.ID, gate.defaultRole); err != nil {
				return nil, err
			}
		}
	}

	if err := identities.AttachToSchool(ctx, identity.ID, schoolID); err != nil {
		return nil, err
	}

	return identity, nil
}

// EnrollStudent enrolls a person as a student of the given school, creating
// or reusing the identity keyed by CPF/email.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, schoolID uuid.UUID, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	birthDate, err := helpers.ParseDate(req.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"birthDate", "birthDate must be YYYY-MM-DD")
	}
	enrolledAt, err := helpers.ParseDate(req.EnrolledAt)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"enrolledAt", "enrolledAt must be YYYY-MM-DD")
	}

	var student *models.Student
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.students.WithTx(tx)

		identity, err := s.admitIdentity(ctx, tx, schoolID, &req.PersonInput, profileGate{
			exists:      students.ExistsForIdentity,
			alreadyErr:  apperrors.ErrAlreadyEnrolled,
			alreadyMsg:  "this person is already enrolled at this school",
			defaultRole: models.RoleStudent,
		})
		if err != nil {
			return err
		}

		taken, err := students.EnrollmentNumberExists(ctx, schoolID, req.EnrollmentNumber, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidationError(apperrors.ErrDuplicateEnrollmentNumber,
				"enrollmentNumber", "enrollment number already in use at this school")
		}

		student = &models.Student{
			SchoolID:         schoolID,
			IdentityID:       identity.ID,
			EnrollmentNumber: req.EnrollmentNumber,
			Grade:            req.Grade,
			Section:          req.Section,
			BirthDate:        birthDate,
			EnrolledAt:       enrolledAt,
			MedicalNotes:     req.MedicalNotes,
			Active:           true,
		}
		if req.Active != nil {
			student.Active = *req.Active
		}
		if err := students.Create(ctx, student); err != nil {
			return err
		}
		student.Identity = identity

		logger.Info().
			Str("schoolID", schoolID.String()).
			Str("studentID", student.ID.String()).
			Str("identityID", identity.ID.String()).
			Msg("Student enrolled")
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromStudent(student)
	return &resp, nil
}

// UpdateStudent updates an enrollment and the mutable identity fields of the
// person behind it. The credential is never changed here.
func (s *EnrollmentService) UpdateStudent(ctx context.Context, schoolID, studentID uuid.UUID, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	birthDate, err := helpers.ParseDate(req.BirthDate)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"birthDate", "birthDate must be YYYY-MM-DD")
	}
	enrolledAt, err := helpers.ParseDate(req.EnrolledAt)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"enrolledAt", "enrolledAt must be YYYY-MM-DD")
	}

	var student *models.Student
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		students := s.students.WithTx(tx)
		identities := s.identities.WithTx(tx)

		student, err = students.GetByID(ctx, schoolID, studentID)
		if err != nil {
			return err
		}

		if err := s.updateProfileIdentity(ctx, identities, student.Identity, &req.PersonInput); err != nil {
			return err
		}

		taken, err := students.EnrollmentNumberExists(ctx, schoolID, req.EnrollmentNumber, &student.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidationError(apperrors.ErrDuplicateEnrollmentNumber,
				"enrollmentNumber", "enrollment number already in use at this school")
		}

		student.EnrollmentNumber = req.EnrollmentNumber
		student.Grade = req.Grade
		student.Section = req.Section
		student.BirthDate = birthDate
		student.EnrolledAt = enrolledAt
		student.MedicalNotes = req.MedicalNotes
		if req.Active != nil {
			student.Active = *req.Active
		}
		return students.Update(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromStudent(student)
	return &resp, nil
}

// updateProfileIdentity refreshes the identity behind an existing profile.
// Re-keying to a CPF or email held by someone else is rejected against the
// offending field; the password hash is carried over untouched.
func (s *EnrollmentService) updateProfileIdentity(
	ctx context.Context,
	identities repositories.IIdentityRepository,
	identity *models.Identity,
	person *dto.PersonInput,
) error {
	if identity == nil {
		return apperrors.ErrIdentityNotFound
	}

	if person.CPF != nil {
		other, err := identities.GetByCPF(ctx, *person.CPF)
		if err != nil && !errors.Is(err, apperrors.ErrIdentityNotFound) {
			return err
		}
		if other != nil && other.ID != identity.ID {
			return apperrors.NewValidationError(apperrors.ErrCPFAlreadyExists,
				"cpf", "cpf already belongs to another person")
		}
	}
	if person.Email != nil {
		other, err := identities.GetByEmail(ctx, *person.Email)
		if err != nil && !errors.Is(err, apperrors.ErrIdentityNotFound) {
			return err
		}
		if other != nil && other.ID != identity.ID {
			return apperrors.NewValidationError(apperrors.ErrEmailAlreadyExists,
				"email", "email already belongs to another person")
		}
	}

	identity.FullName = person.FullName
	if person.CPF != nil {
		identity.CPF = person.CPF
	}
	if person.Email != nil {
		identity.Email = person.Email
	}
	if person.Phone != nil {
		identity.Phone = person.Phone
	}
	if person.Active != nil {
		identity.Active = *person.Active
	}
	return identities.Update(ctx, identity)
}

// EnrollTeacher registers a person as a teacher of the given school.
func (s *EnrollmentService) EnrollTeacher(ctx context.Context, schoolID uuid.UUID, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	var teacher *models.Teacher
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		teachers := s.teachers.WithTx(tx)

		identity, err := s.admitIdentity(ctx, tx, schoolID, &req.PersonInput, profileGate{
			exists:      teachers.ExistsForIdentity,
			alreadyErr:  apperrors.ErrAlreadyTeacher,
			alreadyMsg:  "this person is already a teacher at this school",
			defaultRole: models.RoleTeacher,
		})
		if err != nil {
			return err
		}

		taken, err := teachers.RegistrationNumberExists(ctx, schoolID, req.RegistrationNumber, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidationError(apperrors.ErrDuplicateRegistrationNumber,
				"registrationNumber", "registration number already in use at this school")
		}

		teacher = &models.Teacher{
			SchoolID:           schoolID,
			IdentityID:         identity.ID,
			RegistrationNumber: req.RegistrationNumber,
			Subjects:           req.Subjects,
			Specialization:     req.Specialization,
			Active:             true,
		}
		if req.Active != nil {
			teacher.Active = *req.Active
		}
		if err := teachers.Create(ctx, teacher); err != nil {
			return err
		}
		teacher.Identity = identity

		logger.Info().
			Str("schoolID", schoolID.String()).
			Str("teacherID", teacher.ID.String()).
			Str("identityID", identity.ID.String()).
			Msg("Teacher registered")
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromTeacher(teacher)
	return &resp, nil
}

// UpdateTeacher updates a teaching profile and its identity fields.
func (s *EnrollmentService) UpdateTeacher(ctx context.Context, schoolID, teacherID uuid.UUID, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	var teacher *models.Teacher
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		teachers := s.teachers.WithTx(tx)
		identities := s.identities.WithTx(tx)

		var err error
		teacher, err = teachers.GetByID(ctx, schoolID, teacherID)
		if err != nil {
			return err
		}

		if err := s.updateProfileIdentity(ctx, identities, teacher.Identity, &req.PersonInput); err != nil {
			return err
		}

		taken, err := teachers.RegistrationNumberExists(ctx, schoolID, req.RegistrationNumber, &teacher.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidationError(apperrors.ErrDuplicateRegistrationNumber,
				"registrationNumber", "registration number already in use at this school")
		}

		teacher.RegistrationNumber = req.RegistrationNumber
		teacher.Subjects = req.Subjects
		teacher.Specialization = req.Specialization
		if req.Active != nil {
			teacher.Active = *req.Active
		}
		return teachers.Update(ctx, teacher)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromTeacher(teacher)
	return &resp, nil
}

// EnrollGuardian registers a person as a guardian at the given school.
func (s *EnrollmentService) EnrollGuardian(ctx context.Context, schoolID uuid.UUID, req *dto.CreateGuardianRequest) (*dto.GuardianResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	var guardian *models.Guardian
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		guardians := s.guardians.WithTx(tx)

		identity, err := s.admitIdentity(ctx, tx, schoolID, &req.PersonInput, profileGate{
			exists:      guardians.ExistsForIdentity,
			alreadyErr:  apperrors.ErrAlreadyGuardian,
			alreadyMsg:  "this person is already a guardian at this school",
			defaultRole: models.RoleGuardian,
		})
		if err != nil {
			return err
		}

		guardian = &models.Guardian{
			SchoolID:     schoolID,
			IdentityID:   identity.ID,
			Relationship: req.Relationship,
			Profession:   req.Profession,
		}
		if err := guardians.Create(ctx, guardian); err != nil {
			return err
		}
		guardian.Identity = identity

		logger.Info().
			Str("schoolID", schoolID.String()).
			Str("guardianID", guardian.ID.String()).
			Str("identityID", identity.ID.String()).
			Msg("Guardian registered")
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromGuardian(guardian)
	return &resp, nil
}

// UpdateGuardian updates a guardianship profile and its identity fields.
func (s *EnrollmentService) UpdateGuardian(ctx context.Context, schoolID, guardianID uuid.UUID, req *dto.UpdateGuardianRequest) (*dto.GuardianResponse, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	var guardian *models.Guardian
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		guardians := s.guardians.WithTx(tx)
		identities := s.identities.WithTx(tx)

		var err error
		guardian, err = guardians.GetByID(ctx, schoolID, guardianID)
		if err != nil {
			return err
		}

		if err := s.updateProfileIdentity(ctx, identities, guardian.Identity, &req.PersonInput); err != nil {
			return err
		}

		guardian.Relationship = req.Relationship
		guardian.Profession = req.Profession
		return guardians.Update(ctx, guardian)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromGuardian(guardian)
	return &resp, nil
}

// LinkStudents associates a guardian with students of the same school.
// Already-linked pairs are skipped, so the operation is safe to repeat.
func (s *EnrollmentService) LinkStudents(ctx context.Context, schoolID, guardianID uuid.UUID, req *dto.LinkStudentsRequest) (*dto.GuardianResponse, error) {
	studentIDs := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, raw := range req.StudentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
				"studentIds", "studentIds must be valid UUIDs")
		}
		studentIDs = append(studentIDs, id)
	}

	var guardian *models.Guardian
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		guardians := s.guardians.WithTx(tx)
		students := s.students.WithTx(tx)

		var err error
		guardian, err = guardians.GetByID(ctx, schoolID, guardianID)
		if err != nil {
			return err
		}

		found, err := students.GetByIDs(ctx, schoolID, studentIDs)
		if err != nil {
			return err
		}
		if len(found) != len(studentIDs) {
			return apperrors.NewValidationError(apperrors.ErrStudentNotFound,
				"studentIds", "one or more students do not belong to this school")
		}

		for _, student := range found {
			if err := guardians.LinkStudent(ctx, guardian.ID, student.ID); err != nil {
				return err
			}
		}

		guardian.Students, err = guardians.GetStudents(ctx, schoolID, guardian.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromGuardian(guardian)
	return &resp, nil
}

// GetStudent returns a student of the school.
func (s *EnrollmentService) GetStudent(ctx context.Context, schoolID, studentID uuid.UUID) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromStudent(student)
	return &resp, nil
}

// ListStudents returns a page of the school's students.
func (s *EnrollmentService) ListStudents(ctx context.Context, schoolID uuid.UUID, filter *dto.ListFilterRequest) (*dto.StudentListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	students, total, err := s.students.List(ctx, schoolID, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentListResponse{
		Students:   make([]dto.StudentResponse, 0, len(students)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, student := range students {
		resp.Students = append(resp.Students, dto.FromStudent(student))
	}
	return resp, nil
}

// DeleteStudent soft-deletes a student enrollment. The identity and its
// other profiles are untouched.
func (s *EnrollmentService) DeleteStudent(ctx context.Context, schoolID, studentID uuid.UUID) error {
	return s.students.SoftDelete(ctx, schoolID, studentID)
}

// GetTeacher returns a teacher of the school.
func (s *EnrollmentService) GetTeacher(ctx context.Context, schoolID, teacherID uuid.UUID) (*dto.TeacherResponse, error) {
	teacher, err := s.teachers.GetByID(ctx, schoolID, teacherID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromTeacher(teacher)
	return &resp, nil
}

// ListTeachers returns a page of the school's teachers.
func (s *EnrollmentService) ListTeachers(ctx context.Context, schoolID uuid.UUID, filter *dto.ListFilterRequest) (*dto.TeacherListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	teachers, total, err := s.teachers.List(ctx, schoolID, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.TeacherListResponse{
		Teachers:   make([]dto.TeacherResponse, 0, len(teachers)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, teacher := range teachers {
		resp.Teachers = append(resp.Teachers, dto.FromTeacher(teacher))
	}
	return resp, nil
}

// DeleteTeacher soft-deletes a teaching profile.
func (s *EnrollmentService) DeleteTeacher(ctx context.Context, schoolID, teacherID uuid.UUID) error {
	return s.teachers.SoftDelete(ctx, schoolID, teacherID)
}

// GetGuardian returns a guardian of the school with linked students loaded.
func (s *EnrollmentService) GetGuardian(ctx context.Context, schoolID, guardianID uuid.UUID) (*dto.GuardianResponse, error) {
	guardian, err := s.guardians.GetByID(ctx, schoolID, guardianID)
	if err != nil {
		return nil, err
	}
	guardian.Students, err = s.guardians.GetStudents(ctx, schoolID, guardian.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromGuardian(guardian)
	return &resp, nil
}

// ListGuardians returns a page of the school's guardians.
func (s *EnrollmentService) ListGuardians(ctx context.Context, schoolID uuid.UUID, filter *dto.ListFilterRequest) (*dto.GuardianListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	guardians, total, err := s.guardians.List(ctx, schoolID, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.GuardianListResponse{
		Guardians:  make([]dto.GuardianResponse, 0, len(guardians)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, guardian := range guardians {
		resp.Guardians = append(resp.Guardians, dto.FromGuardian(guardian))
	}
	return resp, nil
}

// DeleteGuardian soft-deletes a guardianship profile.
func (s *EnrollmentService) DeleteGuardian(ctx context.Context, schoolID, guardianID uuid.UUID) error {
	return s.guardians.SoftDelete(ctx, schoolID, guardianID)
}
