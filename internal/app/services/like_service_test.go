package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
)

// fakeLikeStore scripts the outcomes of the delete and create calls so the
// race interleavings can be replayed deterministically.
type fakeLikeStore struct {
	deleteResults []bool
	createErr     error
	deletes       int
	creates       int
}

func (f *fakeLikeStore) CreateLike(ctx context.Context, courseID, userID int64) error {
	f.creates++
	return f.createErr
}

func (f *fakeLikeStore) DeleteLike(ctx context.Context, courseID, userID int64) (bool, error) {
	idx := f.deletes
	f.deletes++
	if idx < len(f.deleteResults) {
		return f.deleteResults[idx], nil
	}
	return false, nil
}

func TestToggleLikeCreates(t *testing.T) {
	store := &fakeLikeStore{deleteResults: []bool{false}}
	svc := NewLikeService(store, &fakeCourseFinder{exists: true})

	resp, err := svc.ToggleLike(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !resp.Liked {
		t.Fatal("expected liked=true after toggling an absent like")
	}
	if store.creates != 1 {
		t.Fatalf("expected 1 create, got %d", store.creates)
	}
}

func TestToggleLikeRemoves(t *testing.T) {
	store := &fakeLikeStore{deleteResults: []bool{true}}
	svc := NewLikeService(store, &fakeCourseFinder{exists: true})

	resp, err := svc.ToggleLike(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if resp.Liked {
		t.Fatal("expected liked=false after toggling an existing like")
	}
	if store.creates != 0 {
		t.Fatalf("expected no creates, got %d", store.creates)
	}
}

func TestToggleLikeResolvesInsertRace(t *testing.T) {
	// The delete missed, then the insert hit the unique constraint because a
	// concurrent toggle created the row in between. The losing call must
	// remove the row and report the unlike outcome instead of an error.
	store := &fakeLikeStore{deleteResults: []bool{false, true}, createErr: apperrors.ErrConflict}
	svc := NewLikeService(store, &fakeCourseFinder{exists: true})

	resp, err := svc.ToggleLike(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if resp.Liked {
		t.Fatal("expected liked=false when losing the insert race")
	}
	if store.deletes != 2 {
		t.Fatalf("expected the racing row to be deleted, got %d deletes", store.deletes)
	}
}

func TestToggleLikeCourseMissing(t *testing.T) {
	svc := NewLikeService(&fakeLikeStore{}, &fakeCourseFinder{exists: false})

	_, err := svc.ToggleLike(context.Background(), 7, 3)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
