package models

import "time"

// Attachment records an uploaded file. The storage key is the name of the
// object in the storage backend; URL is how clients reach it.
type Attachment struct {
	ID         int64          `json:"id" db:"id"`
	OwnerID    int64          `json:"ownerId" db:"owner_id"`
	CourseID   *int64         `json:"courseId,omitempty" db:"course_id"`
	LessonID   *int64         `json:"lessonId,omitempty" db:"lesson_id"`
	FileName   string         `json:"fileName" db:"file_name"`
	StorageKey string         `json:"-" db:"storage_key"`
	URL        string         `json:"url" db:"url"`
	Kind       AttachmentKind `json:"kind" db:"kind"`
	MimeType   string         `json:"mimeType" db:"mime_type"`
	FileSize   int64          `json:"fileSize" db:"file_size"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}
