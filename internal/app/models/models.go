package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleInstructor RoleType = "INSTRUCTOR"
	RoleAdmin      RoleType = "ADMIN"
)

// ReviewStatus controls the visibility of a review
type ReviewStatus string

const (
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusPending  ReviewStatus = "PENDING"
)

// ProfileStatus is the moderation state of a profile
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "ACTIVE"
	ProfileStatusPending  ProfileStatus = "PENDING"
	ProfileStatusRejected ProfileStatus = "REJECTED"
)

// AttachmentKind is the declared category of an uploaded file
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "IMAGE"
	AttachmentKindVideo AttachmentKind = "VIDEO"
	AttachmentKindPDF   AttachmentKind = "PDF"
	AttachmentKindOther AttachmentKind = "OTHER"
)
