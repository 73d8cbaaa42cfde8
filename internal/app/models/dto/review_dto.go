package dto

// SubmitReviewRequest represents the data needed to review a course.
// The rating bound is re-checked in the service so rule violations surface
// as the application's validation error, not only as a binding failure.
type SubmitReviewRequest struct {
	Rating  int     `json:"rating" binding:"required" example:"4"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000" example:"Great course, heavy workload"`
}

// ReviewResponse is the outward representation of a review.
type ReviewResponse struct {
	ID        int64   `json:"id"`
	CourseID  int64   `json:"courseId"`
	UserID    int64   `json:"userId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// ReviewListResponse is a paginated list of reviews for a course.
type ReviewListResponse struct {
	Reviews        []ReviewResponse `json:"reviews"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// ToggleLikeResponse reports the resulting like state after a toggle.
type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}
