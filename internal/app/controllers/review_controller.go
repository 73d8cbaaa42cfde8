package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/app/services"
	"github.com/mertpolat/coursehub/internal/middleware"
	"github.com/mertpolat/coursehub/internal/pkg/helpers"
)

// ReviewController handles review, like, and course statistics endpoints
type ReviewController struct {
	reviewService services.ReviewService
	likeService   services.LikeService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService, likeService services.LikeService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		likeService:   likeService,
	}
}

// SubmitReview godoc
// @Summary Review a course
// @Description Create a review for a course. One review per user per course; repeats conflict.
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body dto.SubmitReviewRequest true "Review data"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /courses/{id}/reviews [post]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.reviewService.SubmitReview(ctx.Request.Context(), principal.ID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetCourseReviews godoc
// @Summary List reviews for a course
// @Tags reviews
// @Produce json
// @Param id path int true "Course ID"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewListResponse}
// @Router /courses/{id}/reviews [get]
func (c *ReviewController) GetCourseReviews(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.reviewService.GetCourseReviews(ctx.Request.Context(), courseID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetCourseStats godoc
// @Summary Get derived statistics for a course
// @Description Average rating, review count, and like count computed from current rows.
// @Tags reviews
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseStatsResponse}
// @Router /courses/{id}/stats [get]
func (c *ReviewController) GetCourseStats(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.reviewService.GetCourseStats(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ToggleLike godoc
// @Summary Toggle the calling user's like on a course
// @Tags reviews
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleLikeResponse}
// @Router /courses/{id}/like [post]
func (c *ReviewController) ToggleLike(ctx *gin.Context) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.likeService.ToggleLike(ctx.Request.Context(), principal.ID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
