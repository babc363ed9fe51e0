package service

import (
	"course-studio/entities"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestTransitionPublish(t *testing.T) {
	complete := Completeness{Total: 3}
	incomplete := Completeness{Total: 3, Missing: []string{"videoUrl"}}

	tests := []struct {
		name         string
		current      bool
		requested    bool
		completeness Completeness
		want         bool
		wantErr      bool
	}{
		{name: "publish complete", current: false, requested: true, completeness: complete, want: true},
		{name: "publish incomplete", current: false, requested: true, completeness: incomplete, want: false, wantErr: true},
		{name: "republish complete", current: true, requested: true, completeness: complete, want: true},
		{name: "republish incomplete keeps state", current: true, requested: true, completeness: incomplete, want: true, wantErr: true},
		{name: "unpublish incomplete", current: true, requested: false, completeness: incomplete, want: false},
		{name: "unpublish draft", current: false, requested: false, completeness: complete, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TransitionPublish(tt.current, tt.requested, tt.completeness)
			if got != tt.want {
				t.Errorf("next = %v, want %v", got, tt.want)
			}
			var verr *ValidationError
			if tt.wantErr != errors.As(err, &verr) {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCourseCompleteness(t *testing.T) {
	zero := 0.0
	course := &entities.Course{Title: "Go", Description: strPtr(" "), Price: &zero}

	c := CourseCompleteness(course, 0)
	want := []string{"description", "imageUrl", "categoryId", "publishedChapter"}
	if len(c.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", c.Missing, want)
	}
	for i := range want {
		if c.Missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", c.Missing, want)
		}
	}
	completion := c.Completion()
	if completion.Completed != 2 || completion.Total != 6 {
		t.Fatalf("completion = %+v", completion)
	}
}

func TestChapterCompleteness(t *testing.T) {
	chapter := &entities.Chapter{Title: "Intro", Description: strPtr("Welcome"), VideoUrl: strPtr("https://videos.example.com/intro.mp4")}
	if c := ChapterCompleteness(chapter); !c.Complete() {
		t.Fatalf("chapter should be complete, missing %v", c.Missing)
	}
	chapter.VideoUrl = nil
	if c := ChapterCompleteness(chapter); c.Complete() || c.Missing[0] != "videoUrl" {
		t.Fatalf("missing = %v", c.Missing)
	}
}
