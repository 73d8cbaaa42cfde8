package models

import "time"

// Course represents a course owned by exactly one instructor.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	Code         string    `json:"code" db:"code"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description,omitempty" db:"description"` // Nullable
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Instructor *User `json:"instructor,omitempty"`
}

// Lesson is a unit of content within a course. Attachments may scope to one.
type Lesson struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Title    string `json:"title" db:"title"`
	Position int    `json:"position" db:"position"`
}
