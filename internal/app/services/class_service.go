package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// ClassService handles classes and the student-to-class enrollments.
type ClassService struct {
	tx       TxRunner
	classes  repositories.IClassRepository
	students repositories.IStudentRepository
}

// NewClassService creates a new ClassService
func NewClassService(tx TxRunner, classes repositories.IClassRepository, students repositories.IStudentRepository) *ClassService {
	return &ClassService{tx: tx, classes: classes, students: students}
}

// CreateClass creates a class in the given school.
func (s *ClassService) CreateClass(ctx context.Context, schoolID uuid.UUID, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := &models.SchoolClass{
		SchoolID:     schoolID,
		Name:         req.Name,
		Grade:        req.Grade,
		Letter:       req.Letter,
		AcademicYear: req.AcademicYear,
		Active:       true,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	logger.Info().
		Str("schoolID", schoolID.String()).
		Str("classID", class.ID.String()).
		Msg("Class created")

	resp := dto.FromClass(class)
	return &resp, nil
}

// GetClass returns a class of the school.
func (s *ClassService) GetClass(ctx context.Context, schoolID, classID uuid.UUID) (*dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromClass(class)
	return &resp, nil
}

// UpdateClass updates a class's mutable fields.
func (s *ClassService) UpdateClass(ctx context.Context, schoolID, classID uuid.UUID, req *dto.UpdateClassRequest) (*dto.ClassResponse, error) {
	class, err := s.classes.GetByID(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}

	class.Name = req.Name
	class.Grade = req.Grade
	class.Letter = req.Letter
	class.AcademicYear = req.AcademicYear
	if req.Active != nil {
		class.Active = *req.Active
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}

	resp := dto.FromClass(class)
	return &resp, nil
}

// ListClasses returns a page of the school's classes.
func (s *ClassService) ListClasses(ctx context.Context, schoolID uuid.UUID, filter *dto.ListFilterRequest) (*dto.ClassListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	classes, total, err := s.classes.List(ctx, schoolID, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ClassListResponse{
		Classes:    make([]dto.ClassResponse, 0, len(classes)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, class := range classes {
		resp.Classes = append(resp.Classes, dto.FromClass(class))
	}
	return resp, nil
}

// DeleteClass soft-deletes a class.
func (s *ClassService) DeleteClass(ctx context.Context, schoolID, classID uuid.UUID) error {
	return s.classes.SoftDelete(ctx, schoolID, classID)
}

// ReenrollStudent moves a student to another class: any open enrollment is
// closed and a new active one is created, in one transaction.
func (s *ClassService) ReenrollStudent(ctx context.Context, schoolID, studentID uuid.UUID, req *dto.ReenrollStudentRequest) (*dto.ClassResponse, error) {
	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"classId", "classId must be a valid UUID")
	}

	var class *models.SchoolClass
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		classes := s.classes.WithTx(tx)
		students := s.students.WithTx(tx)

		if _, err := students.GetByID(ctx, schoolID, studentID); err != nil {
			return err
		}

		class, err = classes.GetByID(ctx, schoolID, classID)
		if err != nil {
			return err
		}
		if !class.Active {
			return apperrors.ErrClassInactive
		}

		if err := classes.CloseActiveEnrollments(ctx, schoolID, studentID); err != nil {
			return err
		}

		return classes.CreateEnrollment(ctx, &models.ClassEnrollment{
			SchoolID:  schoolID,
			ClassID:   class.ID,
			StudentID: studentID,
			Status:    models.ClassEnrollmentActive,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("schoolID", schoolID.String()).
		Str("studentID", studentID.String()).
		Str("classID", class.ID.String()).
		Msg("Student re-enrolled into class")

	resp := dto.FromClass(class)
	return &resp, nil
}
