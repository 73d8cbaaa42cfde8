package services

import "context"

// CourseFinder answers whether a course ID resolves to an existing course.
// Shared by the services that must reject operations against unknown courses.
type CourseFinder interface {
	CourseExists(ctx context.Context, id int64) (bool, error)
}
