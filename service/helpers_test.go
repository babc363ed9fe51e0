package service_test

import (
	"context"
	"course-studio/dto"
	"course-studio/pkg/mux/muxtest"
	"course-studio/repository"
	"course-studio/repository/testutil"
	"course-studio/service"
	"errors"
	"sync"
	"testing"
)

const (
	owner    = "user_owner"
	stranger = "user_stranger"
)

type fakeQueue struct {
	mu       sync.Mutex
	err      error
	messages []dto.AssetCleanupMessage
}

func (q *fakeQueue) Enqueue(_ context.Context, msg dto.AssetCleanupMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, msg)
	return nil
}

type fixture struct {
	repo       repository.Repository
	videos     *muxtest.Client
	queue      *fakeQueue
	courses    service.CourseService
	chapters   service.ChapterService
	attachment service.AttachmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := testutil.NewRepo(t)
	videos := muxtest.New()
	queue := &fakeQueue{}
	return &fixture{
		repo:       repo,
		videos:     videos,
		queue:      queue,
		courses:    service.NewCourseService(repo, videos, queue, nil),
		chapters:   service.NewChapterService(repo, videos, queue, nil),
		attachment: service.NewAttachmentService(repo, nil),
	}
}

func assertValidation(t *testing.T, err error) {
	t.Helper()
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func assertIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("err = %v, want %v", err, target)
	}
}
