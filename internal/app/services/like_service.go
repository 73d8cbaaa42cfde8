package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// LikeStore is the persistence surface the like service needs. CreateLike
// reports a duplicate row as apperrors.ErrConflict, driven by the storage
// unique constraint.
type LikeStore interface {
	CreateLike(ctx context.Context, courseID, userID int64) error
	DeleteLike(ctx context.Context, courseID, userID int64) (bool, error)
}

// LikeService defines the interface for like toggling
type LikeService interface {
	ToggleLike(ctx context.Context, userID, courseID int64) (*dto.ToggleLikeResponse, error)
}

// likeServiceImpl implements LikeService
type likeServiceImpl struct {
	likes   LikeStore
	courses CourseFinder
}

// NewLikeService creates a new LikeService
func NewLikeService(likes LikeStore, courses CourseFinder) LikeService {
	return &likeServiceImpl{
		likes:   likes,
		courses: courses,
	}
}

// ToggleLike flips the like state for the (course, user) pair: an existing
// like is removed, a missing one is created. The delete-then-insert order
// means the storage constraint, not a prior read, settles concurrent
// double-toggles: a conflict on insert proves a racer created the row after
// our delete missed, so the losing call removes it and reports the unlike
// outcome instead of an error.
func (s *likeServiceImpl) ToggleLike(ctx context.Context, userID, courseID int64) (*dto.ToggleLikeResponse, error) {
	exists, err := s.courses.CourseExists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	deleted, err := s.likes.DeleteLike(ctx, courseID, userID)
	if err != nil {
		return nil, fmt.Errorf("error removing like: %w", err)
	}
	if deleted {
		logger.Debug().Int64("courseID", courseID).Int64("userID", userID).Msg("Like removed")
		return &dto.ToggleLikeResponse{Liked: false}, nil
	}

	err = s.likes.CreateLike(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent toggle inserted the row first. Treat the pair as
			// liked and complete this call as the unlike half of the toggle.
			if _, delErr := s.likes.DeleteLike(ctx, courseID, userID); delErr != nil {
				return nil, fmt.Errorf("error resolving like race: %w", delErr)
			}
			logger.Debug().Int64("courseID", courseID).Int64("userID", userID).Msg("Like toggle race resolved as unlike")
			return &dto.ToggleLikeResponse{Liked: false}, nil
		}
		return nil, fmt.Errorf("error creating like: %w", err)
	}

	logger.Debug().Int64("courseID", courseID).Int64("userID", userID).Msg("Like created")
	return &dto.ToggleLikeResponse{Liked: true}, nil
}
