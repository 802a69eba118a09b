package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/escolabr/escolar/internal/app/models"
	"github.com/escolabr/escolar/internal/app/models/dto"
	"github.com/escolabr/escolar/internal/app/repositories"
	"github.com/escolabr/escolar/internal/pkg/helpers"
	"github.com/escolabr/escolar/internal/pkg/logger"
	"github.com/escolabr/escolar/internal/pkg/validation"
)

// SchoolService handles school management.
type SchoolService struct {
	schools repositories.ISchoolRepository
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schools repositories.ISchoolRepository) *SchoolService {
	return &SchoolService{schools: schools}
}

// CreateSchool registers a new school.
func (s *SchoolService) CreateSchool(ctx context.Context, req *dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	school := &models.School{
		Name:     req.Name,
		Document: normalizeDocument(req.Document),
		Phone:    normalizePhonePtr(req.Phone),
		Active:   true,
	}

	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}

	logger.Info().Str("schoolID", school.ID.String()).Str("name", school.Name).Msg("School created")

	resp := dto.FromSchool(school)
	return &resp, nil
}

// GetSchool returns a school by id.
func (s *SchoolService) GetSchool(ctx context.Context, id uuid.UUID) (*dto.SchoolResponse, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSchool(school)
	return &resp, nil
}

// UpdateSchool updates a school's mutable fields.
func (s *SchoolService) UpdateSchool(ctx context.Context, id uuid.UUID, req *dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Document = normalizeDocument(req.Document)
	school.Phone = normalizePhonePtr(req.Phone)
	if req.Active != nil {
		school.Active = *req.Active
	}

	if err := s.schools.Update(ctx, school); err != nil {
		return nil, err
	}

	resp := dto.FromSchool(school)
	return &resp, nil
}

// ListSchools returns a page of schools.
func (s *SchoolService) ListSchools(ctx context.Context, filter *dto.ListFilterRequest) (*dto.SchoolListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	schools, total, err := s.schools.List(ctx, repositories.ListFilter{
		Search: filter.Search,
		Active: filter.Active,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SchoolListResponse{
		Schools:    make([]dto.SchoolResponse, 0, len(schools)),
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}
	for _, school := range schools {
		resp.Schools = append(resp.Schools, dto.FromSchool(school))
	}
	return resp, nil
}

// DeleteSchool soft-deletes a school.
func (s *SchoolService) DeleteSchool(ctx context.Context, id uuid.UUID) error {
	return s.schools.SoftDelete(ctx, id)
}

func normalizeDocument(document *string) *string {
	if document == nil {
		return nil
	}
	d := validation.NormalizeCPF(*document)
	if d == "" {
		return nil
	}
	return &d
}

func normalizePhonePtr(phone *string) *string {
	if phone == nil {
		return nil
	}
	p := validation.NormalizePhone(*phone)
	if p == "" {
		return nil
	}
	return &p
}
