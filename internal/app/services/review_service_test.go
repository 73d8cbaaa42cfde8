package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
)

type fakeCourseFinder struct {
	exists bool
	err    error
}

func (f *fakeCourseFinder) CourseExists(ctx context.Context, id int64) (bool, error) {
	return f.exists, f.err
}

type fakeReviewStore struct {
	existing  bool
	createErr error
	created   *models.Review
	reviews   []*models.Review
	avg       float64
	count     int64
}

func (f *fakeReviewStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *review
	stored.ID = 1
	f.created = &stored
	return &stored, nil
}

func (f *fakeReviewStore) ReviewExists(ctx context.Context, courseID, userID int64) (bool, error) {
	return f.existing, nil
}

func (f *fakeReviewStore) GetCourseReviews(ctx context.Context, courseID int64, status *models.ReviewStatus, page, size int) ([]*models.Review, dto.PaginationInfo, error) {
	return f.reviews, dto.PaginationInfo{CurrentPage: page, PageSize: size, TotalItems: int64(len(f.reviews))}, nil
}

func (f *fakeReviewStore) GetCourseRatingAggregate(ctx context.Context, courseID int64) (float64, int64, error) {
	return f.avg, f.count, nil
}

type fakeLikeCounter struct {
	count int64
}

func (f *fakeLikeCounter) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	return f.count, nil
}

type fakeEntitlements struct {
	err error
}

func (f *fakeEntitlements) ValidateCanReview(ctx context.Context, userID, courseID int64) error {
	return f.err
}

func TestSubmitReview(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewService(store, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	comment := "solid introduction"
	resp, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: 4, Comment: &comment})
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if resp.Rating != 4 || resp.CourseID != 3 || resp.UserID != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if store.created == nil {
		t.Fatal("expected review to be stored")
	}
	if store.created.Status != models.ReviewStatusApproved {
		t.Fatalf("new reviews should be approved, got %s", store.created.Status)
	}
}

func TestSubmitReviewCourseMissing(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{}, &fakeLikeCounter{}, &fakeCourseFinder{exists: false}, &fakeEntitlements{})

	_, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: 4})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestSubmitReviewNotEnrolled(t *testing.T) {
	gate := &fakeEntitlements{err: apperrors.NewForbiddenError("must be enrolled in the course to review it")}
	svc := NewReviewService(&fakeReviewStore{}, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, gate)

	_, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: 4})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{}, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: rating})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestSubmitReviewDuplicate(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{existing: true}, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	_, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: 4})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitReviewRaceLosesToConstraint(t *testing.T) {
	// The pre-check saw no review, but a concurrent submission won the
	// insert. The constraint error must surface as the same conflict.
	store := &fakeReviewStore{existing: false, createErr: apperrors.ErrAlreadyReviewed}
	svc := NewReviewService(store, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	_, err := svc.SubmitReview(context.Background(), 7, 3, &dto.SubmitReviewRequest{Rating: 4})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetCourseStatsRoundsToOneDecimal(t *testing.T) {
	store := &fakeReviewStore{avg: 3.8571428, count: 7}
	svc := NewReviewService(store, &fakeLikeCounter{count: 12}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	stats, err := svc.GetCourseStats(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetCourseStats failed: %v", err)
	}
	if stats.AverageRating != 3.9 {
		t.Fatalf("expected average 3.9, got %v", stats.AverageRating)
	}
	if stats.TotalReviews != 7 || stats.TotalLikes != 12 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestGetCourseStatsEmptyCourse(t *testing.T) {
	svc := NewReviewService(&fakeReviewStore{}, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	stats, err := svc.GetCourseStats(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetCourseStats failed: %v", err)
	}
	if stats.AverageRating != 0 || stats.TotalReviews != 0 || stats.TotalLikes != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestGetCourseReviewsFiltersToApproved(t *testing.T) {
	comment := "ok"
	store := &fakeReviewStore{reviews: []*models.Review{
		{ID: 1, CourseID: 3, UserID: 7, Rating: 5, Comment: &comment, Status: models.ReviewStatusApproved},
	}}
	svc := NewReviewService(store, &fakeLikeCounter{}, &fakeCourseFinder{exists: true}, &fakeEntitlements{})

	resp, err := svc.GetCourseReviews(context.Background(), 3, 1, 10)
	if err != nil {
		t.Fatalf("GetCourseReviews failed: %v", err)
	}
	if len(resp.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(resp.Reviews))
	}
	if resp.Reviews[0].Status != string(models.ReviewStatusApproved) {
		t.Fatalf("unexpected status: %s", resp.Reviews[0].Status)
	}
}
