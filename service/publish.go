package service

import (
	"course-studio/dto"
	"course-studio/entities"
	"fmt"
	"strings"
)

// Completeness is the result of checking the fields publishing depends on.
type Completeness struct {
	Total   int
	Missing []string
}

func (c Completeness) Complete() bool {
	return len(c.Missing) == 0
}

func (c Completeness) Completion() dto.Completion {
	missing := c.Missing
	if missing == nil {
		missing = []string{}
	}
	return dto.Completion{
		Completed: c.Total - len(c.Missing),
		Total:     c.Total,
		Missing:   missing,
	}
}

type requirement struct {
	name string
	ok   bool
}

func check(reqs ...requirement) Completeness {
	c := Completeness{Total: len(reqs)}
	for _, r := range reqs {
		if !r.ok {
			c.Missing = append(c.Missing, r.name)
		}
	}
	return c
}

func filled(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// CourseCompleteness requires every descriptive field plus at least one
// published chapter. A price of zero counts as set.
func CourseCompleteness(course *entities.Course, publishedChapters int64) Completeness {
	return check(
		requirement{"title", strings.TrimSpace(course.Title) != ""},
		requirement{"description", filled(course.Description)},
		requirement{"imageUrl", filled(course.ImageUrl)},
		requirement{"price", course.Price != nil},
		requirement{"categoryId", course.CategoryId != nil},
		requirement{"publishedChapter", publishedChapters > 0},
	)
}

func ChapterCompleteness(chapter *entities.Chapter) Completeness {
	return check(
		requirement{"title", strings.TrimSpace(chapter.Title) != ""},
		requirement{"description", filled(chapter.Description)},
		requirement{"videoUrl", filled(chapter.VideoUrl)},
	)
}

// TransitionPublish computes the next published flag. Unpublishing always
// succeeds; publishing, including re-publishing, needs a complete entity.
func TransitionPublish(current, requested bool, completeness Completeness) (bool, error) {
	if !requested {
		return false, nil
	}
	if !completeness.Complete() {
		return current, newValidationError("isPublished", fmt.Sprintf("cannot publish, missing: %s", strings.Join(completeness.Missing, ", ")))
	}
	return true, nil
}
