package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/app/services"
	"github.com/mertpolat/coursehub/internal/middleware"
)

// ProfileController handles instructor profile endpoints
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetMyProfile godoc
// @Summary Get the calling user's profile
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /profile [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// EditProfile godoc
// @Summary Create or update the calling user's profile
// @Description Non-admin edits re-enter the moderation queue as PENDING.
// @Tags profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.EditProfileRequest true "Profile data"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Router /profile [put]
func (c *ProfileController) EditProfile(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}

	var req dto.EditProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.profileService.EditProfile(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ApproveProfile godoc
// @Summary Approve a pending profile
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /profiles/{id}/approve [post]
func (c *ProfileController) ApproveProfile(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}
	profileID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.profileService.ApproveProfile(ctx.Request.Context(), principal, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// RejectProfile godoc
// @Summary Reject a pending profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Profile ID"
// @Param request body dto.RejectProfileRequest false "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /profiles/{id}/reject [post]
func (c *ProfileController) RejectProfile(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}
	profileID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// The reason body is optional
	var req dto.RejectProfileRequest
	if ctx.Request.ContentLength > 0 {
		if !bindJSON(ctx, &req) {
			return
		}
	}

	resp, err := c.profileService.RejectProfile(ctx.Request.Context(), principal, profileID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
