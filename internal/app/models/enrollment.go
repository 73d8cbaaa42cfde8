package models

import "time"

// Enrollment links a student to a course. Identity is the
// (course_id, user_id) pair; its existence is the sole gate
// for review eligibility.
type Enrollment struct {
	CourseID   int64     `json:"courseId" db:"course_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
}
