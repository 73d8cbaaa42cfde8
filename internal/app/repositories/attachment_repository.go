package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// AttachmentRepository handles database operations for attachments.
type AttachmentRepository struct {
	DB *pgxpool.Pool
}

// NewAttachmentRepository creates a new instance of AttachmentRepository.
func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) selectAttachmentQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "owner_id", "course_id", "lesson_id", "file_name",
		"storage_key", "url", "kind", "mime_type", "file_size", "created_at",
	).From("attachments").PlaceholderFormat(squirrel.Dollar)
}

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	var att models.Attachment
	err := row.Scan(
		&att.ID, &att.OwnerID, &att.CourseID, &att.LessonID, &att.FileName,
		&att.StorageKey, &att.URL, &att.Kind, &att.MimeType, &att.FileSize, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning attachment row")
		return nil, err
	}
	return &att, nil
}

// CreateAttachment inserts the metadata row for an already-stored file and
// returns the stored row. Callers must have committed the bytes first.
func (r *AttachmentRepository) CreateAttachment(ctx context.Context, att *models.Attachment) (*models.Attachment, error) {
	sql, args, err := squirrel.Insert("attachments").
		Columns("owner_id", "course_id", "lesson_id", "file_name", "storage_key", "url", "kind", "mime_type", "file_size").
		Values(att.OwnerID, att.CourseID, att.LessonID, att.FileName, att.StorageKey, att.URL, att.Kind, att.MimeType, att.FileSize).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create attachment SQL")
		return nil, err
	}

	stored := *att
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create attachment query")
		return nil, err
	}
	return &stored, nil
}

// GetAttachmentByID retrieves an attachment by its ID.
func (r *AttachmentRepository) GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error) {
	sqlStr, args, err := r.selectAttachmentQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get attachment by ID SQL")
		return nil, err
	}
	return scanAttachment(r.DB.QueryRow(ctx, sqlStr, args...))
}

// DeleteAttachment removes the metadata row for an attachment.
func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("attachments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete attachment SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("attachmentID", id).Msg("Error executing delete attachment query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}
	return nil
}

// ListStorageKeys returns every storage key referenced by a metadata row.
// The orphan reconciliation sweep diffs this set against the storage backend.
func (r *AttachmentRepository) ListStorageKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.DB.Query(ctx, "SELECT storage_key FROM attachments")
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list storage keys query")
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logger.Error().Err(err).Msg("Error scanning storage key")
			continue
		}
		keys[key] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through storage key rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return keys, nil
}
