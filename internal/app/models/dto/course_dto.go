package dto

// CreateCourseRequest represents the data needed to create a course.
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required,alphanum,uppercase,min=3,max=10" example:"CENG304"`
	Title       string  `json:"title" binding:"required,min=3,max=255" example:"Distributed Systems"`
	Description *string `json:"description,omitempty" example:"Consensus, replication, and failure models"`
}

// CreateLessonRequest represents the data needed to add a lesson to a course.
type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required,min=3,max=255" example:"Week 1 - Introduction"`
	Position int    `json:"position" binding:"gte=0" example:"1"`
}

// CourseResponse is the outward representation of a course.
type CourseResponse struct {
	ID           int64   `json:"id"`
	InstructorID int64   `json:"instructorId"`
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
}

// CourseListResponse is a paginated list of courses.
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// CourseStatsResponse carries derived aggregates for a course. Values are
// computed from the current review and like rows on every call.
type CourseStatsResponse struct {
	AverageRating float64 `json:"averageRating" example:"4.0"`
	TotalReviews  int64   `json:"totalReviews" example:"3"`
	TotalLikes    int64   `json:"totalLikes" example:"17"`
}
