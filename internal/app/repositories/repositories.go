package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	ReviewRepository     *ReviewRepository
	LikeRepository       *LikeRepository
	ProfileRepository    *ProfileRepository
	AttachmentRepository *AttachmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		ReviewRepository:     NewReviewRepository(db),
		LikeRepository:       NewLikeRepository(db),
		ProfileRepository:    NewProfileRepository(db),
		AttachmentRepository: NewAttachmentRepository(db),
	}
}
