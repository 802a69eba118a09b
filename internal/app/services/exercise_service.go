package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/apperrors"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/pkg/logger"
)

// ExerciseService handles the exercises and exams a teacher publishes for
// their classes. Every operation is scoped to the school and the owning
// teacher, both taken explicitly from the request path.
type ExerciseService struct {
	tx        TxRunner
	teachers  repositories.ITeacherRepository
	classes   repositories.IClassRepository
	exercises repositories.IExerciseRepository
	exams     repositories.IExamRepository
}

// NewExerciseService creates a new ExerciseService
func NewExerciseService(
	tx TxRunner,
	teachers repositories.ITeacherRepository,
	classes repositories.IClassRepository,
	exercises repositories.IExerciseRepository,
	exams repositories.IExamRepository,
) *ExerciseService {
	return &ExerciseService{
		tx:        tx,
		teachers:  teachers,
		classes:   classes,
		exercises: exercises,
		exams:     exams,
	}
}

// assignmentTarget validates the pieces every exercise or exam needs: the
// owning teacher and the target class, both within the same school.
func (s *ExerciseService) assignmentTarget(ctx context.Context, tx pgx.Tx, schoolID, teacherID uuid.UUID, rawClassID string) (uuid.UUID, error) {
	classID, err := uuid.Parse(rawClassID)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			"classId", "classId must be a valid UUID")
	}

	if _, err := s.teachers.WithTx(tx).GetByID(ctx, schoolID, teacherID); err != nil {
		return uuid.Nil, err
	}
	if _, err := s.classes.WithTx(tx).GetByID(ctx, schoolID, classID); err != nil {
		return uuid.Nil, err
	}
	return classID, nil
}

func requiredDate(value, field string) (time.Time, error) {
	parsed, err := helpers.ParseDate(&value)
	if err != nil || parsed == nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.ErrValidationFailed,
			field, field+" must be YYYY-MM-DD")
	}
	return *parsed, nil
}

// CreateExercise publishes an exercise for one of the teacher's classes.
func (s *ExerciseService) CreateExercise(ctx context.Context, schoolID, teacherID uuid.UUID, req *dto.CreateExerciseRequest) (*dto.ExerciseResponse, error) {
	dueDate, err := requiredDate(req.DueDate, "dueDate")
	if err != nil {
		return nil, err
	}

	var exercise *models.Exercise
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		classID, err := s.assignmentTarget(ctx, tx, schoolID, teacherID, req.ClassID)
		if err != nil {
			return err
		}

		exercise = &models.Exercise{
			SchoolID:      schoolID,
			TeacherID:     teacherID,
			ClassID:       classID,
			Subject:       req.Subject,
			Title:         req.Title,
			Description:   req.Description,
			DueDate:       dueDate,
			AttachmentURL: req.AttachmentURL,
		}
		return s.exercises.WithTx(tx).Create(ctx, exercise)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("schoolID", schoolID.String()).
		Str("teacherID", teacherID.String()).
		Str("exerciseID", exercise.ID.String()).
		Msg("Exercise created")

	resp := dto.FromExercise(exercise)
	return &resp, nil
}

// GetExercise returns one of the teacher's exercises.
func (s *ExerciseService) GetExercise(ctx context.Context, schoolID, teacherID, exerciseID uuid.UUID) (*dto.ExerciseResponse, error) {
	exercise, err := s.exercises.GetByID(ctx, schoolID, teacherID, exerciseID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromExercise(exercise)
	return &resp, nil
}

// UpdateExercise updates one of the teacher's exercises. Moving it to a class
// outside the school is rejected.
func (s *ExerciseService) UpdateExercise(ctx context.Context, schoolID, teacherID, exerciseID uuid.UUID, req *dto.UpdateExerciseRequest) (*dto.ExerciseResponse, error) {
	dueDate, err := requiredDate(req.DueDate, "dueDate")
	if err != nil {
		return nil, err
	}

	var exercise *models.Exercise
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exercises := s.exercises.WithTx(tx)

		var err error
		exercise, err = exercises.GetByID(ctx, schoolID, teacherID, exerciseID)
		if err != nil {
			return err
		}

		classID, err := s.assignmentTarget(ctx, tx, schoolID, teacherID, req.ClassID)
		if err != nil {
			return err
		}

		exercise.ClassID = classID
		exercise.Subject = req.Subject
		exercise.Title = req.Title
		exercise.Description = req.Description
		exercise.DueDate = dueDate
		exercise.AttachmentURL = req.AttachmentURL
		return exercises.Update(ctx, exercise)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromExercise(exercise)
	return &resp, nil
}

func assignmentFilter(filter *dto.ExerciseFilterRequest) (repositories.AssignmentFilter, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	out := repositories.AssignmentFilter{
		Search:  filter.Search,
		Subject: filter.Subject,
		Offset:  offset,
		Limit:   limit,
	}
	if filter.ClassID != nil && *filter.ClassID != "" {
		classID, err := uuid.Parse(*filter.ClassID)
		if err != nil {
			return out, apperrors.NewValidationError(apperrors.ErrValidationFailed,
				"classId", "classId must be a valid UUID")
		}
		out.ClassID = &classID
	}
	return out, nil
}

// ListExercises returns a page of the teacher's exercises.
func (s *ExerciseService) ListExercises(ctx context.Context, schoolID, teacherID uuid.UUID, filter *dto.ExerciseFilterRequest) (*dto.ExerciseListResponse, error) {
	repoFilter, err := assignmentFilter(filter)
	if err != nil {
		return nil, err
	}

	exercises, total, err := s.exercises.List(ctx, schoolID, teacherID, repoFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExerciseListResponse{
		Exercises:  make([]dto.ExerciseResponse, 0, len(exercises)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, repoFilter.Limit),
	}
	for _, exercise := range exercises {
		resp.Exercises = append(resp.Exercises, dto.FromExercise(exercise))
	}
	return resp, nil
}

// DeleteExercise soft-deletes one of the teacher's exercises.
func (s *ExerciseService) DeleteExercise(ctx context.Context, schoolID, teacherID, exerciseID uuid.UUID) error {
	return s.exercises.SoftDelete(ctx, schoolID, teacherID, exerciseID)
}

// CreateExam schedules an exam for one of the teacher's classes.
func (s *ExerciseService) CreateExam(ctx context.Context, schoolID, teacherID uuid.UUID, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	examDate, err := requiredDate(req.ExamDate, "examDate")
	if err != nil {
		return nil, err
	}

	var exam *models.Exam
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		classID, err := s.assignmentTarget(ctx, tx, schoolID, teacherID, req.ClassID)
		if err != nil {
			return err
		}

		exam = &models.Exam{
			SchoolID:        schoolID,
			TeacherID:       teacherID,
			ClassID:         classID,
			Subject:         req.Subject,
			Title:           req.Title,
			Description:     req.Description,
			ExamDate:        examDate,
			StartTime:       req.StartTime,
			Room:            req.Room,
			DurationMinutes: req.DurationMinutes,
		}
		return s.exams.WithTx(tx).Create(ctx, exam)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("schoolID", schoolID.String()).
		Str("teacherID", teacherID.String()).
		Str("examID", exam.ID.String()).
		Msg("Exam scheduled")

	resp := dto.FromExam(exam)
	return &resp, nil
}

// GetExam returns one of the teacher's exams.
func (s *ExerciseService) GetExam(ctx context.Context, schoolID, teacherID, examID uuid.UUID) (*dto.ExamResponse, error) {
	exam, err := s.exams.GetByID(ctx, schoolID, teacherID, examID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromExam(exam)
	return &resp, nil
}

// UpdateExam updates one of the teacher's exams.
func (s *ExerciseService) UpdateExam(ctx context.Context, schoolID, teacherID, examID uuid.UUID, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	examDate, err := requiredDate(req.ExamDate, "examDate")
	if err != nil {
		return nil, err
	}

	var exam *models.Exam
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		exams := s.exams.WithTx(tx)

		var err error
		exam, err = exams.GetByID(ctx, schoolID, teacherID, examID)
		if err != nil {
			return err
		}

		classID, err := s.assignmentTarget(ctx, tx, schoolID, teacherID, req.ClassID)
		if err != nil {
			return err
		}

		exam.ClassID = classID
		exam.Subject = req.Subject
		exam.Title = req.Title
		exam.Description = req.Description
		exam.ExamDate = examDate
		exam.StartTime = req.StartTime
		exam.Room = req.Room
		exam.DurationMinutes = req.DurationMinutes
		return exams.Update(ctx, exam)
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromExam(exam)
	return &resp, nil
}

// ListExams returns a page of the teacher's exams.
func (s *ExerciseService) ListExams(ctx context.Context, schoolID, teacherID uuid.UUID, filter *dto.ExerciseFilterRequest) (*dto.ExamListResponse, error) {
	repoFilter, err := assignmentFilter(filter)
	if err != nil {
		return nil, err
	}

	exams, total, err := s.exams.List(ctx, schoolID, teacherID, repoFilter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExamListResponse{
		Exams:      make([]dto.ExamResponse, 0, len(exams)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, repoFilter.Limit),
	}
	for _, exam := range exams {
		resp.Exams = append(resp.Exams, dto.FromExam(exam))
	}
	return resp, nil
}

// DeleteExam soft-deletes one of the teacher's exams.
func (s *ExerciseService) DeleteExam(ctx context.Context, schoolID, teacherID, examID uuid.UUID) error {
	return s.exams.SoftDelete(ctx, schoolID, teacherID, examID)
}
