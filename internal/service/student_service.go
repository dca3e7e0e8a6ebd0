package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// StudentService orchestrates student management use cases.
type StudentService interface {
	List(ctx context.Context, req dto.StudentListRequest) (dto.ListResponse[dto.StudentResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.StudentResponse, error)
	Create(ctx context.Context, req dto.StudentCreateRequest, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.StudentUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type studentService struct {
	repo      repository.StudentRepository
	schools   repository.SchoolRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, schools repository.SchoolRepository, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		schools:   schools,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.ListResponse[dto.StudentResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.StudentResponse]{}, err
	}

	filter := repository.StudentFilter{
		Name:     strings.TrimSpace(req.Name),
		SchoolID: optionalID(req.SchoolID),
		Grade:    strings.TrimSpace(req.Grade),
		Status:   req.Status,
		SortBy:   defaultString(req.SortBy, "lastName"),
		SortDesc: sortDesc(req.ListQuery, "asc"),
		Page:     pageOf(req.ListQuery),
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.StudentResponse]{}, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}
	return dto.ListResponse[dto.StudentResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *studentService) Get(ctx context.Context, id uuid.UUID) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, storageError(apperror.ResourceStudent, err)
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest, actor Actor) (uuid.UUID, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return uuid.Nil, err
	}

	schoolID, err := parseID("schoolId", req.SchoolID)
	if err != nil {
		return uuid.Nil, err
	}
	dateOfBirth, err := optionalDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return uuid.Nil, err
	}
	if err := ensureExists(ctx, s.schools.Exists, apperror.ResourceSchool, schoolID); err != nil {
		return uuid.Nil, err
	}

	student := models.Student{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dateOfBirth,
		Grade:       strings.TrimSpace(req.Grade),
		Status:      defaultString(req.Status, models.StudentStatusActive),
		SchoolID:    schoolID,
	}
	if err := s.repo.Create(ctx, &student); err != nil {
		return uuid.Nil, storageError(apperror.ResourceStudent, err)
	}

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceStudent, student.ID, nil)
	return student.ID, nil
}

func (s *studentService) Update(ctx context.Context, id uuid.UUID, req dto.StudentUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}
	if err := ensureExists(ctx, s.repo.Exists, apperror.ResourceStudent, id); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("first_name", "firstName", req.FirstName)
	changes.setString("last_name", "lastName", req.LastName)
	changes.setString("grade", "grade", req.Grade)
	changes.setString("status", "status", req.Status)
	if err := changes.setNullableDate("date_of_birth", "dateOfBirth", req.DateOfBirth); err != nil {
		return err
	}
	if req.SchoolID != nil {
		schoolID, err := parseID("schoolId", *req.SchoolID)
		if err != nil {
			return err
		}
		if err := ensureExists(ctx, s.schools.Exists, apperror.ResourceSchool, schoolID); err != nil {
			return err
		}
		changes.setID("school_id", "schoolId", &schoolID)
	}

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceStudent, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceStudent, id, changes.metadata())
	return nil
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceStudent, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceStudent, id, nil)
	return nil
}
