package models

import "time"

// Profile is the one-to-one editable profile of a user. Field content is
// persisted immediately on edit; Status controls visibility, not content.
type Profile struct {
	ID              int64         `json:"id" db:"id"`
	UserID          int64         `json:"userId" db:"user_id"`
	Bio             *string       `json:"bio,omitempty" db:"bio"`
	Experience      *string       `json:"experience,omitempty" db:"experience"`
	Qualifications  *string       `json:"qualifications,omitempty" db:"qualifications"`
	Status          ProfileStatus `json:"status" db:"status"`
	RejectionReason *string       `json:"rejectionReason,omitempty" db:"rejection_reason"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}
