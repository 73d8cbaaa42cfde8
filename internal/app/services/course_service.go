package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
	"github.com/mertpolat/coursehub/internal/pkg/validation"
)

// CourseService defines the interface for course and enrollment operations
type CourseService interface {
	CreateCourse(ctx context.Context, principal models.Principal, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	CreateLesson(ctx context.Context, principal models.Principal, courseID int64, req *dto.CreateLessonRequest) (*models.Lesson, error)
	GetCourse(ctx context.Context, courseID int64) (*dto.CourseResponse, error)
	GetAllCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	Enroll(ctx context.Context, principal models.Principal, courseID int64) error
}

// CourseStore is the course persistence surface the service needs.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error)
	CourseExists(ctx context.Context, id int64) (bool, error)
}

// EnrollmentWriter records course memberships.
type EnrollmentWriter interface {
	CreateEnrollment(ctx context.Context, courseID, userID int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courses     CourseStore
	enrollments EnrollmentWriter
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, enrollments EnrollmentWriter) CourseService {
	return &courseServiceImpl{
		courses:     courses,
		enrollments: enrollments,
	}
}

// CreateCourse creates a course owned by the calling instructor.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, principal models.Principal, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if principal.Role != models.RoleInstructor {
		return nil, apperrors.NewForbiddenError("only instructors can create courses")
	}

	if !validation.IsValidCourseCode(req.Code) {
		return nil, apperrors.NewValidationError("course code must be an uppercase subject prefix followed by a number, e.g. GO101")
	}

	course := &models.Course{
		InstructorID: principal.ID,
		Code:         req.Code,
		Title:        req.Title,
		Description:  req.Description,
	}

	id, err := s.courses.CreateCourse(ctx, course)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return nil, apperrors.NewConflictError("course code already in use")
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	course.ID = id

	logger.Info().Int64("courseID", id).Int64("instructorID", principal.ID).Str("code", course.Code).Msg("Course created")
	return courseToResponse(course), nil
}

// CreateLesson adds a lesson to a course the calling instructor owns.
func (s *courseServiceImpl) CreateLesson(ctx context.Context, principal models.Principal, courseID int64, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading course: %w", err)
	}

	if course.InstructorID != principal.ID {
		return nil, apperrors.NewForbiddenError("only the course instructor can add lessons")
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    req.Title,
		Position: req.Position,
	}
	id, err := s.courses.CreateLesson(ctx, lesson)
	if err != nil {
		return nil, fmt.Errorf("error creating lesson: %w", err)
	}
	lesson.ID = id

	return lesson, nil
}

// GetCourse retrieves a course by ID.
func (s *courseServiceImpl) GetCourse(ctx context.Context, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return courseToResponse(course), nil
}

// GetAllCourses retrieves a paginated list of courses.
func (s *courseServiceImpl) GetAllCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	courses, pagination, err := s.courses.GetAllCourses(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, *courseToResponse(course))
	}
	return &dto.CourseListResponse{
		Courses:        responses,
		PaginationInfo: pagination,
	}, nil
}

// Enroll joins the calling student to a course. The enrollment primary key
// makes a repeated join a conflict instead of a second row.
func (s *courseServiceImpl) Enroll(ctx context.Context, principal models.Principal, courseID int64) error {
	if principal.Role != models.RoleStudent {
		return apperrors.NewForbiddenError("only students can enroll in courses")
	}

	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	if err := s.enrollments.CreateEnrollment(ctx, courseID, principal.ID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			return apperrors.NewConflictError("already enrolled in this course")
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("userID", principal.ID).Msg("Student enrolled")
	return nil
}

func courseToResponse(course *models.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:           course.ID,
		InstructorID: course.InstructorID,
		Code:         course.Code,
		Title:        course.Title,
		Description:  course.Description,
	}
}
