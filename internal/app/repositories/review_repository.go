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

// ReviewRepository handles database operations for reviews. The
// reviews_course_id_user_id_key unique constraint serializes concurrent
// submissions for the same (course, user) pair.
type ReviewRepository struct {
	DB *pgxpool.Pool
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) selectReviewQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "course_id", "user_id", "rating", "comment", "status", "created_at", "updated_at",
	).From("reviews").PlaceholderFormat(squirrel.Dollar)
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID, &review.CourseID, &review.UserID, &review.Rating,
		&review.Comment, &review.Status, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		logger.Error().Err(err).Msg("Error scanning review row")
		return nil, err
	}
	return &review, nil
}

// CreateReview inserts a new review and returns the stored row. A racing
// duplicate insert for the same (course, user) pair is reported as
// apperrors.ErrAlreadyReviewed from the unique constraint, regardless of
// what any prior existence check observed.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	sql, args, err := squirrel.Insert("reviews").
		Columns("course_id", "user_id", "rating", "comment", "status").
		Values(review.CourseID, review.UserID, review.Rating, review.Comment, review.Status).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create review SQL")
		return nil, err
	}

	stored := *review
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "reviews_course_id_user_id_key") {
			return nil, apperrors.ErrAlreadyReviewed
		}
		logger.Error().Err(err).Msg("Error executing create review query")
		return nil, err
	}
	return &stored, nil
}

// ReviewExists reports whether a review exists for the (course, user) pair.
func (r *ReviewRepository) ReviewExists(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM reviews WHERE course_id = $1 AND user_id = $2)",
		courseID, userID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error checking review existence")
		return false, err
	}
	return exists, nil
}

// GetCourseReviews retrieves a paginated list of reviews for a course,
// optionally filtered by status.
func (r *ReviewRepository) GetCourseReviews(ctx context.Context, courseID int64, status *models.ReviewStatus, page, size int) ([]*models.Review, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("reviews").
		Where(squirrel.Eq{"course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectReviewQuery().Where(squirrel.Eq{"course_id": courseID})

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *status})
		listBuilder = listBuilder.Where(squirrel.Eq{"status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building review count SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing review count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Review{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := listBuilder.
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course reviews SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get course reviews query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one review during get course reviews")
			continue
		}
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through review rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return reviews, pagination, nil
}

// GetCourseRatingAggregate computes the mean rating and review count straight
// from the current review rows. Nothing here is cached or persisted.
func (r *ReviewRepository) GetCourseRatingAggregate(ctx context.Context, courseID int64) (avgRating float64, totalReviews int64, err error) {
	err = r.DB.QueryRow(ctx,
		"SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE course_id = $1",
		courseID).Scan(&avgRating, &totalReviews)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error computing course rating aggregate")
		return 0, 0, err
	}
	return avgRating, totalReviews, nil
}
