package models

import "time"

// Review is a rating with optional comment, at most one per (course, user).
type Review struct {
	ID        int64        `json:"id" db:"id"`
	CourseID  int64        `json:"courseId" db:"course_id"`
	UserID    int64        `json:"userId" db:"user_id"`
	Rating    int          `json:"rating" db:"rating"` // 1..5
	Comment   *string      `json:"comment,omitempty" db:"comment"`
	Status    ReviewStatus `json:"status" db:"status"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}

// Like has no payload beyond its existence for a (course, user) pair.
type Like struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
