package service_test

import (
	"context"
	"course-studio/dto"
	"course-studio/repository/testutil"
	"course-studio/service"
	"github.com/google/uuid"
	"testing"
)

func TestAttachmentName(t *testing.T) {
	tests := map[string]string{
		"https://cdn.example.com/files/notes.pdf": "notes.pdf",
		"https://cdn.example.com/files/":          "unnamed",
		"slides.key":                              "slides.key",
	}
	for url, want := range tests {
		if got := service.AttachmentName(url); got != want {
			t.Errorf("AttachmentName(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestAttachments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.repo, owner, "Course")
	other := testutil.SeedCourse(t, f.repo, owner, "Other")

	att, err := f.attachment.Create(ctx, owner, course.ID, dto.CreateAttachmentRequest{Url: "https://cdn.example.com/files/notes.pdf"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if att.Name != "notes.pdf" || att.CourseId != course.ID {
		t.Fatalf("attachment = %+v", att)
	}

	_, err = f.attachment.Create(ctx, owner, course.ID, dto.CreateAttachmentRequest{Url: ""})
	assertValidation(t, err)
	_, err = f.attachment.Create(ctx, stranger, course.ID, dto.CreateAttachmentRequest{Url: "https://x/y"})
	assertIs(t, err, service.ErrUnauthorized)

	assertIs(t, f.attachment.Delete(ctx, owner, other.ID, att.ID), service.ErrNotFound)
	assertIs(t, f.attachment.Delete(ctx, owner, course.ID, uuid.New()), service.ErrNotFound)
	if err := f.attachment.Delete(ctx, owner, course.ID, att.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
