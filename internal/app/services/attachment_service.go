package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	"github.com/mertpolat/coursehub/internal/pkg/filestorage"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// Size ceilings per attachment category.
const (
	MaxVideoSize   = 50 << 20 // 50 MiB
	MaxDefaultSize = 5 << 20  // 5 MiB
)

// allowedMimeTypes maps each accepted MIME type to its attachment category.
var allowedMimeTypes = map[string]models.AttachmentKind{
	"image/jpeg":      models.AttachmentKindImage,
	"image/png":       models.AttachmentKindImage,
	"image/gif":       models.AttachmentKindImage,
	"video/mp4":       models.AttachmentKindVideo,
	"video/mpeg":      models.AttachmentKindVideo,
	"application/pdf": models.AttachmentKindPDF,
}

// AttachmentStore is the persistence surface the attachment service needs.
type AttachmentStore interface {
	CreateAttachment(ctx context.Context, att *models.Attachment) (*models.Attachment, error)
	GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
	ListStorageKeys(ctx context.Context) (map[string]struct{}, error)
}

// LessonFinder answers whether a lesson ID resolves to an existing lesson.
type LessonFinder interface {
	LessonExists(ctx context.Context, lessonID int64) (bool, error)
}

// DeleteGate gates attachment deletion on ownership.
type DeleteGate interface {
	ValidateCanDelete(ownerID, requesterID int64) error
}

// UploadInput carries everything needed to store one uploaded file.
type UploadInput struct {
	Content  io.Reader
	MimeType string
	FileSize int64
	FileName string
	OwnerID  int64
	CourseID *int64
	LessonID *int64
}

// AttachmentService defines the interface for attachment upload and deletion
type AttachmentService interface {
	Upload(ctx context.Context, input UploadInput) (*dto.AttachmentResponse, error)
	Delete(ctx context.Context, attachmentID, requesterID int64) error
	ReconcileOrphans(ctx context.Context) (int, error)
}

// attachmentServiceImpl implements AttachmentService
type attachmentServiceImpl struct {
	attachments AttachmentStore
	courses     CourseFinder
	lessons     LessonFinder
	gate        DeleteGate
	storage     filestorage.FileStorage
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachments AttachmentStore, courses CourseFinder, lessons LessonFinder, gate DeleteGate, storage filestorage.FileStorage) AttachmentService {
	return &attachmentServiceImpl{
		attachments: attachments,
		courses:     courses,
		lessons:     lessons,
		gate:        gate,
		storage:     storage,
	}
}

// Upload validates the file, stores its bytes, and only then creates the
// metadata row. The ordering guarantees no metadata row ever points at
// missing bytes; the reconciliation sweep reclaims bytes whose metadata
// insert did not complete.
func (s *attachmentServiceImpl) Upload(ctx context.Context, input UploadInput) (*dto.AttachmentResponse, error) {
	kind, ok := allowedMimeTypes[strings.ToLower(input.MimeType)]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported type %q", input.MimeType))
	}

	limit := int64(MaxDefaultSize)
	if kind == models.AttachmentKindVideo {
		limit = MaxVideoSize
	}
	if input.FileSize > limit {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("file size %d exceeds the %d MiB limit for %s uploads", input.FileSize, limit>>20, strings.ToLower(string(kind))))
	}

	if input.CourseID != nil {
		exists, err := s.courses.CourseExists(ctx, *input.CourseID)
		if err != nil {
			return nil, fmt.Errorf("error checking course: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrCourseNotFound
		}
	}
	if input.LessonID != nil {
		exists, err := s.lessons.LessonExists(ctx, *input.LessonID)
		if err != nil {
			return nil, fmt.Errorf("error checking lesson: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrLessonNotFound
		}
	}

	key := uuid.New().String() + sanitizeExtension(input.FileName)
	url, err := s.storage.Save(key, input.Content)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	att := &models.Attachment{
		OwnerID:    input.OwnerID,
		CourseID:   input.CourseID,
		LessonID:   input.LessonID,
		FileName:   input.FileName,
		StorageKey: key,
		URL:        url,
		Kind:       kind,
		MimeType:   input.MimeType,
		FileSize:   input.FileSize,
	}

	stored, err := s.attachments.CreateAttachment(ctx, att)
	if err != nil {
		// The bytes are committed but the row is not. Reclaim eagerly; the
		// sweep catches anything this cleanup misses.
		if delErr := s.storage.Delete(key); delErr != nil {
			logger.Warn().Err(delErr).Str("key", key).Msg("Failed to reclaim stored bytes after metadata insert failure")
		}
		return nil, fmt.Errorf("error creating attachment record: %w", err)
	}

	logger.Info().Int64("attachmentID", stored.ID).Int64("ownerID", stored.OwnerID).Str("key", key).Msg("Attachment uploaded")
	return attachmentToResponse(stored), nil
}

// Delete removes an attachment's bytes and metadata row on behalf of its
// owner. Byte deletion failures are logged and the row is removed anyway: a
// dangling stored object is recoverable by the sweep, a metadata row pointing
// at unremovable storage would dangle silently forever.
func (s *attachmentServiceImpl) Delete(ctx context.Context, attachmentID, requesterID int64) error {
	att, err := s.attachments.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAttachmentNotFound) {
			return err
		}
		return fmt.Errorf("error loading attachment: %w", err)
	}

	if err := s.gate.ValidateCanDelete(att.OwnerID, requesterID); err != nil {
		return err
	}

	if err := s.storage.Delete(att.StorageKey); err != nil {
		logger.Warn().Err(err).Int64("attachmentID", attachmentID).Str("key", att.StorageKey).Msg("Failed to delete stored bytes, removing metadata anyway")
	}

	if err := s.attachments.DeleteAttachment(ctx, attachmentID); err != nil {
		return fmt.Errorf("error deleting attachment record: %w", err)
	}

	logger.Info().Int64("attachmentID", attachmentID).Int64("requesterID", requesterID).Msg("Attachment deleted")
	return nil
}

// orphanGracePeriod shields in-flight uploads from the reconcile sweep.
// Bytes are committed before their metadata row exists, so a key younger
// than this may belong to an upload still between the two steps.
const orphanGracePeriod = 15 * time.Minute

// ReconcileOrphans scans the storage namespace for keys with no matching
// metadata row and reclaims them. This is the safety net for crashes between
// the byte write and the metadata insert; there is no transaction spanning
// the two stores. Returns the number of keys reclaimed.
func (s *attachmentServiceImpl) ReconcileOrphans(ctx context.Context) (int, error) {
	// Snapshot storage before metadata. An upload finishing between the two
	// listings shows up in the metadata set instead of as a phantom orphan;
	// the reverse order would reclaim it.
	objects, err := s.storage.ListKeys()
	if err != nil {
		return 0, fmt.Errorf("error listing storage keys: %w", err)
	}

	known, err := s.attachments.ListStorageKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing attachment keys: %w", err)
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	reclaimed := 0
	for _, obj := range objects {
		if _, ok := known[obj.Key]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			// Too fresh to judge; the next sweep settles it.
			continue
		}
		if err := s.storage.Delete(obj.Key); err != nil {
			logger.Warn().Err(err).Str("key", obj.Key).Msg("Failed to reclaim orphaned storage key")
			continue
		}
		reclaimed++
	}

	if reclaimed > 0 {
		logger.Info().Int("reclaimed", reclaimed).Msg("Orphaned storage keys reclaimed")
	}
	return reclaimed, nil
}

// sanitizeExtension keeps only a plausible file extension from the original
// name; everything else in the storage key comes from the generated UUID.
func sanitizeExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}

func attachmentToResponse(att *models.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:        att.ID,
		OwnerID:   att.OwnerID,
		CourseID:  att.CourseID,
		LessonID:  att.LessonID,
		FileName:  att.FileName,
		URL:       att.URL,
		Kind:      string(att.Kind),
		MimeType:  att.MimeType,
		FileSize:  att.FileSize,
		CreatedAt: att.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
