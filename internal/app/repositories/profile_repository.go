package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// ProfileRepository handles database operations for profiles.
type ProfileRepository struct {
	DB *pgxpool.Pool
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) selectProfileQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "user_id", "bio", "experience", "qualifications",
		"status", "rejection_reason", "created_at", "updated_at",
	).From("profiles").PlaceholderFormat(squirrel.Dollar)
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Bio, &profile.Experience,
		&profile.Qualifications, &profile.Status, &profile.RejectionReason,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Msg("Error scanning profile row")
		return nil, err
	}
	return &profile, nil
}

// GetProfileByID retrieves a profile by its ID.
func (r *ProfileRepository) GetProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	sqlStr, args, err := r.selectProfileQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by ID SQL")
		return nil, err
	}
	return scanProfile(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetProfileByUserID retrieves the profile belonging to a user.
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	sqlStr, args, err := r.selectProfileQuery().Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile by user ID SQL")
		return nil, err
	}
	return scanProfile(r.DB.QueryRow(ctx, sqlStr, args...))
}

// UpsertProfile writes the profile fields and status for a user, creating the
// row on first edit. The profiles_user_id_key constraint keeps the relation
// one-to-one; ON CONFLICT folds a racing first edit into an update.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	sql := `
		INSERT INTO profiles (user_id, bio, experience, qualifications, status, rejection_reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			experience = EXCLUDED.experience,
			qualifications = EXCLUDED.qualifications,
			status = EXCLUDED.status,
			rejection_reason = EXCLUDED.rejection_reason,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	stored := *profile
	err := r.DB.QueryRow(ctx, sql,
		profile.UserID, profile.Bio, profile.Experience, profile.Qualifications,
		profile.Status, profile.RejectionReason,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("userID", profile.UserID).Msg("Error executing upsert profile query")
		return nil, err
	}
	return &stored, nil
}

// UpdateProfileStatus moves a profile to a new moderation state, recording an
// optional rejection reason.
func (r *ProfileRepository) UpdateProfileStatus(ctx context.Context, id int64, status models.ProfileStatus, reason *string) error {
	sql, args, err := squirrel.Update("profiles").
		Set("status", status).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile status SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profileID", id).Msg("Error executing update profile status query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}
	return nil
}
