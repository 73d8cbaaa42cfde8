package dto

// UploadAttachmentRequest holds the multipart form fields accompanying an
// uploaded file. The file itself is read from the "file" form part.
type UploadAttachmentRequest struct {
	CourseID *int64 `form:"courseId" binding:"omitempty,gt=0"`
	LessonID *int64 `form:"lessonId" binding:"omitempty,gt=0"`
}

// AttachmentResponse is the outward representation of an attachment.
type AttachmentResponse struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	CourseID  *int64 `json:"courseId,omitempty"`
	LessonID  *int64 `json:"lessonId,omitempty"`
	FileName  string `json:"fileName"`
	URL       string `json:"url"`
	Kind      string `json:"kind"`
	MimeType  string `json:"mimeType"`
	FileSize  int64  `json:"fileSize"`
	CreatedAt string `json:"createdAt"`
}
