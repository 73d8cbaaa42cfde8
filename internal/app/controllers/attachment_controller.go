package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/app/services"
	"github.com/mertpolat/coursehub/internal/middleware"
)

// AttachmentController handles file attachment upload and deletion
type AttachmentController struct {
	attachmentService services.AttachmentService
}

// NewAttachmentController creates a new AttachmentController
func NewAttachmentController(attachmentService services.AttachmentService) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService}
}

// Upload godoc
// @Summary Upload a file attachment
// @Description Accepts image, video, or PDF uploads. Videos may be up to 50MB, other files up to 5MB.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "File to upload"
// @Param courseId formData int false "Course to attach to"
// @Param lessonId formData int false "Lesson to attach to"
// @Success 201 {object} dto.APIResponse{data=dto.AttachmentResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /attachments [post]
func (c *AttachmentController) Upload(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}

	var req dto.UploadAttachmentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format"),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "A file part named 'file' is required"),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Could not read the uploaded file"),
		})
		return
	}
	defer file.Close()

	resp, err := c.attachmentService.Upload(ctx.Request.Context(), services.UploadInput{
		Content:  file,
		MimeType: fileHeader.Header.Get("Content-Type"),
		FileSize: fileHeader.Size,
		FileName: fileHeader.Filename,
		OwnerID:  principal.ID,
		CourseID: req.CourseID,
		LessonID: req.LessonID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// Delete godoc
// @Summary Delete an attachment
// @Description Removes the stored bytes and the metadata row. Only the owner may delete.
// @Tags attachments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Attachment ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /attachments/{id} [delete]
func (c *AttachmentController) Delete(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}
	attachmentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attachmentService.Delete(ctx.Request.Context(), attachmentID, principal.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
