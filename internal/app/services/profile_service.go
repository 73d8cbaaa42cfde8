package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// ProfileStore is the persistence surface the profile service needs.
type ProfileStore interface {
	GetProfileByID(ctx context.Context, id int64) (*models.Profile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateProfileStatus(ctx context.Context, id int64, status models.ProfileStatus, reason *string) error
}

// ModerationGate gates approve/reject on the principal's role.
type ModerationGate interface {
	ValidateCanModerate(role models.RoleType) error
}

// ModerationPolicy names the rule that decides when an edit re-enters the
// moderation queue. Kept explicit and per-content-type so future content
// kinds can choose different triggers.
type ModerationPolicy struct {
	// RequireApprovalOnEdit forces any non-admin profile edit to PENDING
	// until an admin acts.
	RequireApprovalOnEdit bool
}

// ProfileService defines the interface for profile editing and moderation
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	EditProfile(ctx context.Context, principal models.Principal, req *dto.EditProfileRequest) (*dto.ProfileResponse, error)
	ApproveProfile(ctx context.Context, principal models.Principal, profileID int64) (*dto.ProfileResponse, error)
	RejectProfile(ctx context.Context, principal models.Principal, profileID int64, req *dto.RejectProfileRequest) (*dto.ProfileResponse, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profiles ProfileStore
	gate     ModerationGate
	policy   ModerationPolicy
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles ProfileStore, gate ModerationGate, policy ModerationPolicy) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		gate:     gate,
		policy:   policy,
	}
}

// GetProfile retrieves the profile belonging to a user.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return profileToResponse(profile), nil
}

// EditProfile persists the edited fields immediately; moderation controls
// visibility, not field content. A non-admin edit moves the profile to
// PENDING regardless of its previous state; rejected profiles stay editable
// and re-enter the queue like any other. Admin edits keep
// the profile ACTIVE. The first edit creates the row.
func (s *profileServiceImpl) EditProfile(ctx context.Context, principal models.Principal, req *dto.EditProfileRequest) (*dto.ProfileResponse, error) {
	existing, err := s.profiles.GetProfileByUserID(ctx, principal.ID)
	if err != nil && !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	profile := &models.Profile{UserID: principal.ID}
	if existing != nil {
		*profile = *existing
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
	}
	if req.Qualifications != nil {
		profile.Qualifications = req.Qualifications
	}

	profile.Status = s.statusAfterEdit(principal, existing)
	if profile.Status == models.ProfileStatusPending {
		profile.RejectionReason = nil
	}

	stored, err := s.profiles.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	logger.Info().Int64("userID", principal.ID).Str("status", string(stored.Status)).Msg("Profile edited")
	return profileToResponse(stored), nil
}

// statusAfterEdit applies the moderation policy to an edit.
func (s *profileServiceImpl) statusAfterEdit(principal models.Principal, existing *models.Profile) models.ProfileStatus {
	if principal.IsAdmin() {
		return models.ProfileStatusActive
	}
	if s.policy.RequireApprovalOnEdit {
		return models.ProfileStatusPending
	}
	if existing != nil {
		return existing.Status
	}
	return models.ProfileStatusActive
}

// ApproveProfile moves a PENDING profile to ACTIVE. Approving a profile in
// any other state fails with an invalid-transition error rather than being
// silently absorbed.
func (s *profileServiceImpl) ApproveProfile(ctx context.Context, principal models.Principal, profileID int64) (*dto.ProfileResponse, error) {
	return s.moderate(ctx, principal, profileID, models.ProfileStatusActive, nil)
}

// RejectProfile moves a PENDING profile to REJECTED with an optional reason.
// The profile is never deleted; the owner can edit it back into the queue.
func (s *profileServiceImpl) RejectProfile(ctx context.Context, principal models.Principal, profileID int64, req *dto.RejectProfileRequest) (*dto.ProfileResponse, error) {
	var reason *string
	if req != nil {
		reason = req.Reason
	}
	return s.moderate(ctx, principal, profileID, models.ProfileStatusRejected, reason)
}

func (s *profileServiceImpl) moderate(ctx context.Context, principal models.Principal, profileID int64, target models.ProfileStatus, reason *string) (*dto.ProfileResponse, error) {
	if err := s.gate.ValidateCanModerate(principal.Role); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfileByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}

	if profile.Status != models.ProfileStatusPending {
		return nil, apperrors.NewInvalidTransitionError(
			fmt.Sprintf("profile is %s, only PENDING profiles can be moderated", profile.Status))
	}

	if err := s.profiles.UpdateProfileStatus(ctx, profileID, target, reason); err != nil {
		return nil, fmt.Errorf("error updating profile status: %w", err)
	}

	profile.Status = target
	profile.RejectionReason = reason
	logger.Info().Int64("profileID", profileID).Int64("moderatorID", principal.ID).Str("status", string(target)).Msg("Profile moderated")
	return profileToResponse(profile), nil
}

func profileToResponse(profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Bio:             profile.Bio,
		Experience:      profile.Experience,
		Qualifications:  profile.Qualifications,
		Status:          string(profile.Status),
		RejectionReason: profile.RejectionReason,
	}
}
