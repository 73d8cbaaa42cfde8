package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// ReviewStore is the persistence surface the review service needs.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	ReviewExists(ctx context.Context, courseID, userID int64) (bool, error)
	GetCourseReviews(ctx context.Context, courseID int64, status *models.ReviewStatus, page, size int) ([]*models.Review, dto.PaginationInfo, error)
	GetCourseRatingAggregate(ctx context.Context, courseID int64) (float64, int64, error)
}

// LikeCounter counts like rows scoped to a course.
type LikeCounter interface {
	CountByCourse(ctx context.Context, courseID int64) (int64, error)
}

// ReviewEntitlements gates review creation on enrollment.
type ReviewEntitlements interface {
	ValidateCanReview(ctx context.Context, userID, courseID int64) error
}

// ReviewService defines the interface for review and course statistics operations
type ReviewService interface {
	SubmitReview(ctx context.Context, userID, courseID int64, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	GetCourseReviews(ctx context.Context, courseID int64, page, size int) (*dto.ReviewListResponse, error)
	GetCourseStats(ctx context.Context, courseID int64) (*dto.CourseStatsResponse, error)
}

// reviewServiceImpl implements ReviewService
type reviewServiceImpl struct {
	reviews      ReviewStore
	likes        LikeCounter
	courses      CourseFinder
	entitlements ReviewEntitlements
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews ReviewStore, likes LikeCounter, courses CourseFinder, entitlements ReviewEntitlements) ReviewService {
	return &reviewServiceImpl{
		reviews:      reviews,
		likes:        likes,
		courses:      courses,
		entitlements: entitlements,
	}
}

// SubmitReview creates a review for a course. At most one review exists per
// (course, user) pair; a duplicate submission fails with a conflict instead
// of overwriting. The unique constraint backs the pre-check, so a racing
// duplicate insert also lands on the conflict path.
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, userID, courseID int64, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	if err := s.entitlements.ValidateCanReview(ctx, userID, courseID); err != nil {
		return nil, err
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be an integer between 1 and 5")
	}

	reviewed, err := s.reviews.ReviewExists(ctx, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing review: %w", err)
	}
	if reviewed {
		return nil, apperrors.NewConflictError("course already reviewed")
	}

	review := &models.Review{
		CourseID: courseID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		// Reviews go live on creation; only profiles sit in a moderation queue.
		Status: models.ReviewStatusApproved,
	}

	stored, err := s.reviews.CreateReview(ctx, review)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyReviewed) {
			// Lost the race against a concurrent submission for the same pair.
			return nil, apperrors.NewConflictError("course already reviewed")
		}
		return nil, fmt.Errorf("error creating review: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("userID", userID).Int("rating", stored.Rating).Msg("Review submitted")
	return reviewToResponse(stored), nil
}

// GetCourseReviews retrieves the approved reviews for a course with pagination.
func (s *reviewServiceImpl) GetCourseReviews(ctx context.Context, courseID int64, page, size int) (*dto.ReviewListResponse, error) {
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	status := models.ReviewStatusApproved
	reviews, pagination, err := s.reviews.GetCourseReviews(ctx, courseID, &status, page, size)
	if err != nil {
		return nil, fmt.Errorf("error getting course reviews: %w", err)
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, *reviewToResponse(review))
	}

	return &dto.ReviewListResponse{
		Reviews:        responses,
		PaginationInfo: pagination,
	}, nil
}

// GetCourseStats recomputes the course aggregates from the current review and
// like rows on every call. Nothing is cached, so the output can never drift
// from the source rows. The mean is rounded to one decimal place; an empty
// review set yields 0.
func (s *reviewServiceImpl) GetCourseStats(ctx context.Context, courseID int64) (*dto.CourseStatsResponse, error) {
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	avgRating, totalReviews, err := s.reviews.GetCourseRatingAggregate(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error computing rating aggregate: %w", err)
	}

	totalLikes, err := s.likes.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}

	return &dto.CourseStatsResponse{
		AverageRating: math.Round(avgRating*10) / 10,
		TotalReviews:  totalReviews,
		TotalLikes:    totalLikes,
	}, nil
}

func reviewToResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        review.ID,
		CourseID:  review.CourseID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Status:    string(review.Status),
		CreatedAt: review.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
