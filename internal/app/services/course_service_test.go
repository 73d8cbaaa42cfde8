package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses   map[int64]*models.Course
	nextID    int64
	createErr error
	lessons   []*models.Lesson
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[int64]*models.Course), nextID: 1}
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, course *models.Course) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	stored := *course
	stored.ID = id
	f.courses[id] = &stored
	return id, nil
}

func (f *fakeCourseStore) CreateLesson(_ context.Context, lesson *models.Lesson) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *lesson
	stored.ID = id
	f.lessons = append(f.lessons, &stored)
	return id, nil
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) GetAllCourses(_ context.Context, page, size int) ([]*models.Course, dto.PaginationInfo, error) {
	out := make([]*models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		out = append(out, course)
	}
	return out, dto.PaginationInfo{CurrentPage: page, PageSize: size, TotalItems: int64(len(out))}, nil
}

func (f *fakeCourseStore) CourseExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.courses[id]
	return ok, nil
}

type fakeEnrollmentWriter struct {
	err      error
	enrolled [][2]int64
}

func (f *fakeEnrollmentWriter) CreateEnrollment(_ context.Context, courseID, userID int64) error {
	if f.err != nil {
		return f.err
	}
	f.enrolled = append(f.enrolled, [2]int64{courseID, userID})
	return nil
}

func TestCreateCourse(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, &fakeEnrollmentWriter{})

	resp, err := svc.CreateCourse(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, &dto.CreateCourseRequest{
		Code:  "GO101",
		Title: "Introduction to Go",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if resp.InstructorID != 7 || resp.Code != "GO101" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(store.courses) != 1 {
		t.Fatalf("expected 1 stored course, got %d", len(store.courses))
	}
}

func TestCreateCourseRequiresInstructor(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), &fakeEnrollmentWriter{})

	_, err := svc.CreateCourse(context.Background(), models.Principal{ID: 2, Role: models.RoleStudent}, &dto.CreateCourseRequest{
		Code:  "GO101",
		Title: "Introduction to Go",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestCreateCourseRejectsMalformedCode(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), &fakeEnrollmentWriter{})

	_, err := svc.CreateCourse(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, &dto.CreateCourseRequest{
		Code:  "go-101",
		Title: "Introduction to Go",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	store := newFakeCourseStore()
	store.createErr = apperrors.ErrCourseAlreadyExists
	svc := NewCourseService(store, &fakeEnrollmentWriter{})

	_, err := svc.CreateCourse(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, &dto.CreateCourseRequest{
		Code:  "GO101",
		Title: "Introduction to Go",
	})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateLessonOwnershipCheck(t *testing.T) {
	store := newFakeCourseStore()
	store.courses[1] = &models.Course{ID: 1, InstructorID: 7, Code: "GO101"}
	svc := NewCourseService(store, &fakeEnrollmentWriter{})

	lesson, err := svc.CreateLesson(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, 1, &dto.CreateLessonRequest{Title: "Week 1", Position: 1})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	if lesson.CourseID != 1 || lesson.ID == 0 {
		t.Fatalf("unexpected lesson %+v", lesson)
	}

	_, err = svc.CreateLesson(context.Background(), models.Principal{ID: 8, Role: models.RoleInstructor}, 1, &dto.CreateLessonRequest{Title: "Week 2", Position: 2})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-owner, got %v", err)
	}
}

func TestCreateLessonMissingCourse(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), &fakeEnrollmentWriter{})

	_, err := svc.CreateLesson(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, 42, &dto.CreateLessonRequest{Title: "Week 1", Position: 1})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected course not found, got %v", err)
	}
}

func TestEnroll(t *testing.T) {
	store := newFakeCourseStore()
	store.courses[1] = &models.Course{ID: 1, InstructorID: 7, Code: "GO101"}
	enrollments := &fakeEnrollmentWriter{}
	svc := NewCourseService(store, enrollments)

	if err := svc.Enroll(context.Background(), models.Principal{ID: 3, Role: models.RoleStudent}, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if len(enrollments.enrolled) != 1 || enrollments.enrolled[0] != [2]int64{1, 3} {
		t.Fatalf("unexpected enrollments %v", enrollments.enrolled)
	}
}

func TestEnrollRequiresStudent(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), &fakeEnrollmentWriter{})

	err := svc.Enroll(context.Background(), models.Principal{ID: 7, Role: models.RoleInstructor}, 1)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestEnrollMissingCourse(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), &fakeEnrollmentWriter{})

	err := svc.Enroll(context.Background(), models.Principal{ID: 3, Role: models.RoleStudent}, 99)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected course not found, got %v", err)
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	store := newFakeCourseStore()
	store.courses[1] = &models.Course{ID: 1, InstructorID: 7, Code: "GO101"}
	svc := NewCourseService(store, &fakeEnrollmentWriter{err: apperrors.ErrAlreadyEnrolled})

	err := svc.Enroll(context.Background(), models.Principal{ID: 3, Role: models.RoleStudent}, 1)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
