package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
)

type fakeEnrollmentChecker struct {
	enrolled bool
	err      error
}

func (f *fakeEnrollmentChecker) EnrollmentExists(ctx context.Context, courseID, userID int64) (bool, error) {
	return f.enrolled, f.err
}

func TestCanReview(t *testing.T) {
	svc := NewEntitlementService(&fakeEnrollmentChecker{enrolled: true})
	ok, err := svc.CanReview(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("CanReview failed: %v", err)
	}
	if !ok {
		t.Fatal("enrolled user should be allowed to review")
	}

	svc = NewEntitlementService(&fakeEnrollmentChecker{enrolled: false})
	ok, err = svc.CanReview(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("CanReview failed: %v", err)
	}
	if ok {
		t.Fatal("unenrolled user should not be allowed to review")
	}
}

func TestCanReviewPropagatesError(t *testing.T) {
	svc := NewEntitlementService(&fakeEnrollmentChecker{err: errors.New("connection reset")})
	_, err := svc.CanReview(context.Background(), 7, 3)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestValidateCanReview(t *testing.T) {
	svc := NewEntitlementService(&fakeEnrollmentChecker{enrolled: false})
	err := svc.ValidateCanReview(context.Background(), 7, 3)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestValidateCanDelete(t *testing.T) {
	svc := NewEntitlementService(nil)

	if err := svc.ValidateCanDelete(7, 7); err != nil {
		t.Fatalf("owner should be allowed to delete: %v", err)
	}
	if err := svc.ValidateCanDelete(7, 8); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("non-owner should be denied, got %v", err)
	}
	// No admin bypass on ownership
	if err := svc.ValidateCanDelete(7, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected denial regardless of requester identity, got %v", err)
	}
}

func TestValidateCanModerate(t *testing.T) {
	svc := NewEntitlementService(nil)

	if err := svc.ValidateCanModerate(models.RoleAdmin); err != nil {
		t.Fatalf("admin should be allowed to moderate: %v", err)
	}
	for _, role := range []models.RoleType{models.RoleStudent, models.RoleInstructor} {
		if err := svc.ValidateCanModerate(role); !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("role %s: expected permission denied, got %v", role, err)
		}
	}
}
