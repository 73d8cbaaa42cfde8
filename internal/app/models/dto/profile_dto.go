package dto

// EditProfileRequest carries the mutable profile fields. Absent fields are
// left untouched.
type EditProfileRequest struct {
	Bio            *string `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Experience     *string `json:"experience,omitempty" binding:"omitempty,max=2000"`
	Qualifications *string `json:"qualifications,omitempty" binding:"omitempty,max=2000"`
}

// RejectProfileRequest optionally records why a profile was rejected.
type RejectProfileRequest struct {
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=1000"`
}

// ProfileResponse is the outward representation of a profile.
type ProfileResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	Bio             *string `json:"bio,omitempty"`
	Experience      *string `json:"experience,omitempty"`
	Qualifications  *string `json:"qualifications,omitempty"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}
