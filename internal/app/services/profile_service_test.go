package services

import (
	"context"
	"errors"
	"testing"

	appauth "github.com/mertpolat/coursehub/internal/app/auth"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
)

type fakeProfileStore struct {
	byID     map[int64]*models.Profile
	byUserID map[int64]*models.Profile
	upserted *models.Profile
}

func newFakeProfileStore(profiles ...*models.Profile) *fakeProfileStore {
	s := &fakeProfileStore{
		byID:     make(map[int64]*models.Profile),
		byUserID: make(map[int64]*models.Profile),
	}
	for _, p := range profiles {
		s.byID[p.ID] = p
		s.byUserID[p.UserID] = p
	}
	return s
}

func (f *fakeProfileStore) GetProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProfileStore) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	p, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProfileStore) UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	stored := *profile
	if stored.ID == 0 {
		stored.ID = int64(len(f.byID) + 1)
	}
	f.upserted = &stored
	f.byID[stored.ID] = &stored
	f.byUserID[stored.UserID] = &stored
	return &stored, nil
}

func (f *fakeProfileStore) UpdateProfileStatus(ctx context.Context, id int64, status models.ProfileStatus, reason *string) error {
	p, ok := f.byID[id]
	if !ok {
		return apperrors.ErrProfileNotFound
	}
	p.Status = status
	p.RejectionReason = reason
	return nil
}

func newProfileService(store ProfileStore, requireApproval bool) ProfileService {
	gate := appauth.NewEntitlementService(nil)
	return NewProfileService(store, gate, ModerationPolicy{RequireApprovalOnEdit: requireApproval})
}

func TestEditProfileFirstEditCreatesPending(t *testing.T) {
	store := newFakeProfileStore()
	svc := newProfileService(store, true)

	bio := "Ten years teaching distributed systems"
	resp, err := svc.EditProfile(context.Background(), models.Principal{ID: 5, Role: models.RoleInstructor}, &dto.EditProfileRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusPending) {
		t.Fatalf("expected PENDING after first edit, got %s", resp.Status)
	}
	if resp.Bio == nil || *resp.Bio != bio {
		t.Fatalf("bio not persisted: %+v", resp)
	}
}

func TestEditProfileReturnsActiveToQueue(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusActive})
	svc := newProfileService(store, true)

	exp := "updated experience"
	resp, err := svc.EditProfile(context.Background(), models.Principal{ID: 5, Role: models.RoleInstructor}, &dto.EditProfileRequest{Experience: &exp})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusPending) {
		t.Fatalf("edit should re-enter the queue, got %s", resp.Status)
	}
}

func TestEditProfileClearsRejectionReason(t *testing.T) {
	reason := "incomplete qualifications"
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusRejected, RejectionReason: &reason})
	svc := newProfileService(store, true)

	quals := "MSc, 4 industry certifications"
	resp, err := svc.EditProfile(context.Background(), models.Principal{ID: 5, Role: models.RoleInstructor}, &dto.EditProfileRequest{Qualifications: &quals})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusPending) {
		t.Fatalf("rejected profile should re-enter the queue, got %s", resp.Status)
	}
	if resp.RejectionReason != nil {
		t.Fatalf("rejection reason should clear on resubmission, got %q", *resp.RejectionReason)
	}
}

func TestEditProfileAdminStaysActive(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 9, Status: models.ProfileStatusActive})
	svc := newProfileService(store, true)

	bio := "admin-curated bio"
	resp, err := svc.EditProfile(context.Background(), models.Principal{ID: 9, Role: models.RoleAdmin}, &dto.EditProfileRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusActive) {
		t.Fatalf("admin edits should not enter the queue, got %s", resp.Status)
	}
}

func TestEditProfilePolicyDisabledKeepsStatus(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusActive})
	svc := newProfileService(store, false)

	bio := "minor wording tweak"
	resp, err := svc.EditProfile(context.Background(), models.Principal{ID: 5, Role: models.RoleInstructor}, &dto.EditProfileRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusActive) {
		t.Fatalf("with approval-on-edit off the status should hold, got %s", resp.Status)
	}
}

func TestApproveProfile(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusPending})
	svc := newProfileService(store, true)

	resp, err := svc.ApproveProfile(context.Background(), models.Principal{ID: 9, Role: models.RoleAdmin}, 1)
	if err != nil {
		t.Fatalf("ApproveProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusActive) {
		t.Fatalf("expected ACTIVE, got %s", resp.Status)
	}
}

func TestRejectProfileRecordsReason(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusPending})
	svc := newProfileService(store, true)

	reason := "bio contains contact information"
	resp, err := svc.RejectProfile(context.Background(), models.Principal{ID: 9, Role: models.RoleAdmin}, 1, &dto.RejectProfileRequest{Reason: &reason})
	if err != nil {
		t.Fatalf("RejectProfile failed: %v", err)
	}
	if resp.Status != string(models.ProfileStatusRejected) {
		t.Fatalf("expected REJECTED, got %s", resp.Status)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != reason {
		t.Fatalf("reason not recorded: %+v", resp)
	}
}

func TestModerateNonPendingFails(t *testing.T) {
	for _, status := range []models.ProfileStatus{models.ProfileStatusActive, models.ProfileStatusRejected} {
		store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: status})
		svc := newProfileService(store, true)

		_, err := svc.ApproveProfile(context.Background(), models.Principal{ID: 9, Role: models.RoleAdmin}, 1)
		if !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Fatalf("status %s: expected invalid transition, got %v", status, err)
		}
	}
}

func TestModerateRequiresAdmin(t *testing.T) {
	store := newFakeProfileStore(&models.Profile{ID: 1, UserID: 5, Status: models.ProfileStatusPending})
	svc := newProfileService(store, true)

	_, err := svc.ApproveProfile(context.Background(), models.Principal{ID: 5, Role: models.RoleInstructor}, 1)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestModerateMissingProfile(t *testing.T) {
	svc := newProfileService(newFakeProfileStore(), true)

	_, err := svc.ApproveProfile(context.Background(), models.Principal{ID: 9, Role: models.RoleAdmin}, 42)
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
