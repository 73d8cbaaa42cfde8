package auth

import (
	"context"
	"fmt"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// EnrollmentChecker answers whether a user is enrolled in a course.
type EnrollmentChecker interface {
	EnrollmentExists(ctx context.Context, courseID, userID int64) (bool, error)
}

// EntitlementService decides whether a principal may act on a specific
// resource instance. Pure predicate evaluation against persisted state; no
// side effects.
type EntitlementService struct {
	enrollments EnrollmentChecker
}

// NewEntitlementService creates a new EntitlementService.
func NewEntitlementService(enrollments EnrollmentChecker) *EntitlementService {
	return &EntitlementService{enrollments: enrollments}
}

// CanReview reports whether the user may review the course. Enrollment is
// the sole gate, checked at creation time only; it is never re-validated
// against reviews that already exist.
func (s *EntitlementService) CanReview(ctx context.Context, userID, courseID int64) (bool, error) {
	enrolled, err := s.enrollments.EnrollmentExists(ctx, courseID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error checking enrollment for review entitlement")
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}

// ValidateCanReview validates review entitlement or returns a forbidden error.
func (s *EntitlementService) ValidateCanReview(ctx context.Context, userID, courseID int64) error {
	canReview, err := s.CanReview(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !canReview {
		return apperrors.NewForbiddenError("must be enrolled in the course to review it")
	}
	return nil
}

// CanDelete reports whether the requester may delete a resource owned by
// ownerID. Ownership is strict: admins get no bypass here.
func (s *EntitlementService) CanDelete(ownerID, requesterID int64) bool {
	return ownerID == requesterID
}

// ValidateCanDelete validates delete entitlement or returns a forbidden error.
func (s *EntitlementService) ValidateCanDelete(ownerID, requesterID int64) error {
	if !s.CanDelete(ownerID, requesterID) {
		return apperrors.NewForbiddenError("only the owner may delete this resource")
	}
	return nil
}

// CanModerate reports whether the role carries moderation powers.
func (s *EntitlementService) CanModerate(role models.RoleType) bool {
	return role == models.RoleAdmin
}

// ValidateCanModerate validates moderation entitlement or returns a forbidden error.
func (s *EntitlementService) ValidateCanModerate(role models.RoleType) error {
	if !s.CanModerate(role) {
		return apperrors.NewForbiddenError("moderation requires the admin role")
	}
	return nil
}
