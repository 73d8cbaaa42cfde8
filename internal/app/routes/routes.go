package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mertpolat/coursehub/internal/app/controllers"
	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	reviewController *controllers.ReviewController,
	profileController *controllers.ProfileController,
	attachmentController *controllers.AttachmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public Course routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/reviews", reviewController.GetCourseReviews)
		courses.GET("/:id/stats", reviewController.GetCourseStats)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		coursesProtected := authenticated.Group("/courses")
		{
			coursesProtected.POST("/:id/reviews", reviewController.SubmitReview)
			coursesProtected.POST("/:id/like", reviewController.ToggleLike)

			// Instructor-only course management
			coursesInstructorProtected := coursesProtected.Group("")
			coursesInstructorProtected.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
			{
				coursesInstructorProtected.POST("", courseController.CreateCourse)
				coursesInstructorProtected.POST("/:id/lessons", courseController.CreateLesson)
			}

			// Students enroll themselves
			coursesStudentProtected := coursesProtected.Group("")
			coursesStudentProtected.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				coursesStudentProtected.POST("/:id/enroll", courseController.Enroll)
			}
		}

		// Own profile routes
		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetMyProfile)
			profile.PUT("", profileController.EditProfile)
		}

		// Moderation routes are restricted to admins
		profilesAdminProtected := authenticated.Group("/profiles")
		profilesAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			profilesAdminProtected.POST("/:id/approve", profileController.ApproveProfile)
			profilesAdminProtected.POST("/:id/reject", profileController.RejectProfile)
		}

		// Attachment routes
		attachments := authenticated.Group("/attachments")
		{
			attachments.POST("", attachmentController.Upload)
			attachments.DELETE("/:id", attachmentController.Delete)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
