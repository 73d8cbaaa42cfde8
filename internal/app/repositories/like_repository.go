package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/dberrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// LikeRepository handles database operations for likes. The
// likes_course_id_user_id_key unique constraint, not any prior read, decides
// concurrent toggle races.
type LikeRepository struct {
	DB *pgxpool.Pool
}

// NewLikeRepository creates a new instance of LikeRepository.
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{DB: db}
}

// CreateLike inserts a like row for the (course, user) pair. A duplicate
// insert, racing or otherwise, is reported as apperrors.ErrConflict.
func (r *LikeRepository) CreateLike(ctx context.Context, courseID, userID int64) error {
	sql, args, err := squirrel.Insert("likes").
		Columns("course_id", "user_id").
		Values(courseID, userID).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create like SQL")
		return err
	}

	_, err = r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "likes_course_id_user_id_key") {
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error executing create like query")
		return err
	}
	return nil
}

// DeleteLike removes the like row for the (course, user) pair and reports
// whether a row was actually deleted.
func (r *LikeRepository) DeleteLike(ctx context.Context, courseID, userID int64) (bool, error) {
	sql, args, err := squirrel.Delete("likes").
		Where(squirrel.Eq{"course_id": courseID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete like SQL")
		return false, err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error executing delete like query")
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}

// CountByCourse counts like rows scoped to the course.
func (r *LikeRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx,
		"SELECT count(*) FROM likes WHERE course_id = $1", courseID).Scan(&count)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing like count query")
		return 0, err
	}
	return count, nil
}
