package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/dberrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments.
// The (course_id, user_id) primary key is the storage-level uniqueness
// constraint; duplicate joins surface as a conflict, never a second row.
type EnrollmentRepository struct {
	DB *pgxpool.Pool
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// CreateEnrollment joins a user to a course.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, courseID, userID int64) error {
	sql, args, err := squirrel.Insert("enrollments").
		Columns("course_id", "user_id").
		Values(courseID, userID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return err
	}

	_, err = r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_pkey") {
			return apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error executing create enrollment query")
		return err
	}
	return nil
}

// EnrollmentExists reports whether the user is enrolled in the course.
func (r *EnrollmentRepository) EnrollmentExists(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2)",
		courseID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error checking enrollment existence")
		return false, err
	}
	return exists, nil
}
