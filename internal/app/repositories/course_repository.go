package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/dberrors"
	"github.com/mertpolat/coursehub/internal/pkg/helpers"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// CourseRepository handles database operations for courses and lessons.
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) selectCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "instructor_id", "code", "title", "description", "created_at", "updated_at",
	).From("courses").PlaceholderFormat(squirrel.Dollar)
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.InstructorID, &course.Code, &course.Title,
		&course.Description, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &course, nil
}

// CreateCourse inserts a new course and returns its ID.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := squirrel.Insert("courses").
		Columns("instructor_id", "code", "title", "description").
		Values(course.InstructorID, course.Code, course.Title, course.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}
	return id, nil
}

// GetCourseByID retrieves a single course by its ID.
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}
	return scanCourse(r.DB.QueryRow(ctx, sqlStr, args...))
}

// CourseExists reports whether a course row resolves for the given ID.
func (r *CourseRepository) CourseExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error checking course existence")
		return false, err
	}
	return exists, nil
}

// GetAllCourses retrieves a paginated list of courses.
func (r *CourseRepository) GetAllCourses(ctx context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	var totalItems int64
	if err := r.DB.QueryRow(ctx, "SELECT count(*) FROM courses").Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing course count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Course{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectCourseQuery().
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one course during get all")
			continue
		}
		courses = append(courses, course)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through course rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return courses, pagination, nil
}

// CreateLesson inserts a new lesson for a course and returns its ID.
func (r *CourseRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) (int64, error) {
	sql, args, err := squirrel.Insert("lessons").
		Columns("course_id", "title", "position").
		Values(lesson.CourseID, lesson.Title, lesson.Position).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create lesson SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create lesson query")
		return 0, err
	}
	return id, nil
}

// LessonExists reports whether a lesson row resolves for the given ID within a course.
func (r *CourseRepository) LessonExists(ctx context.Context, lessonID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM lessons WHERE id = $1)", lessonID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("lessonID", lessonID).Msg("Error checking lesson existence")
		return false, err
	}
	return exists, nil
}
