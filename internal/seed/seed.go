package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/mertpolat/coursehub/internal/app/models"
	appRepos "github.com/mertpolat/coursehub/internal/app/repositories"
	"github.com/mertpolat/coursehub/internal/db"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	pkgAuth "github.com/mertpolat/coursehub/internal/pkg/auth"
)

// Default accounts created on first startup. Passwords are for local
// development only.
var defaultUsers = []struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      appModels.RoleType
}{
	{"admin@coursehub.app", "admin1234", "Default", "Admin", appModels.RoleAdmin},
	{"instructor@coursehub.app", "teach1234", "Default", "Instructor", appModels.RoleInstructor},
	{"student@coursehub.app", "learn1234", "Default", "Student", appModels.RoleStudent},
}

// CreateDefaultData creates default users and a sample course if they don't exist.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(database.Pool)
	courseRepo := appRepos.NewCourseRepository(database.Pool)

	lgr.Info().Msg("Checking/Creating default data (Users/Courses)...")
	var finalErr error

	userIDs := make(map[appModels.RoleType]int64)
	for _, du := range defaultUsers {
		hashed, err := pkgAuth.HashPassword(du.Password)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}

		id, err := userRepo.CreateUser(ctx, &appModels.User{
			Email:     du.Email,
			Password:  hashed,
			FirstName: du.FirstName,
			LastName:  du.LastName,
			RoleType:  du.Role,
			IsActive:  true,
		})
		if err != nil {
			if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Str("email", du.Email).Msg("Error creating default user")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			// Find existing ID if needed
			existing, errGet := userRepo.GetUserByEmail(ctx, du.Email)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("email", du.Email).Msg("Error looking up existing default user")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			id = existing.ID
		}
		userIDs[du.Role] = id
	}

	instructorID, ok := userIDs[appModels.RoleInstructor]
	if !ok {
		return finalErr
	}

	description := "A first course to click around in after a fresh setup."
	sampleCourse := &appModels.Course{
		InstructorID: instructorID,
		Code:         "GO101",
		Title:        "Introduction to Go",
		Description:  &description,
	}

	courseID, err := courseRepo.CreateCourse(ctx, sampleCourse)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return finalErr
		}
		lgr.Error().Err(err).Msg("Error creating sample course")
		return errors.Join(finalErr, err)
	}

	// Lessons go in together so a partial seed never leaves a half-built course
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lessons := []string{"Getting Started", "Types and Methods", "Concurrency"}
		for i, title := range lessons {
			_, err := tx.Exec(ctx,
				"INSERT INTO lessons (course_id, title, position) VALUES ($1, $2, $3)",
				courseID, title, i+1)
			if err != nil {
				return fmt.Errorf("failed to insert lesson %q: %w", title, err)
			}
		}
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating sample lessons")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
