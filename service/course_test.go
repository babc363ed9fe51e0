package service_test

import (
	"context"
	"course-studio/dto"
	"course-studio/repository/testutil"
	"course-studio/service"
	"testing"
)

func TestCreateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course, err := f.courses.Create(ctx, owner, dto.CreateCourseRequest{Title: "  Go in practice "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.Title != "Go in practice" || course.OwnerUserId != owner || course.IsPublished {
		t.Fatalf("course = %+v", course)
	}

	_, err = f.courses.Create(ctx, owner, dto.CreateCourseRequest{Title: "   "})
	assertValidation(t, err)

	_, err = f.courses.Create(ctx, "", dto.CreateCourseRequest{Title: "Go"})
	assertIs(t, err, service.ErrUnauthorized)
}

func TestCourseOwnershipGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.repo, owner, "Mine")

	_, err := f.courses.Get(ctx, stranger, course.ID)
	assertIs(t, err, service.ErrUnauthorized)

	_, err = f.courses.Update(ctx, stranger, course.ID, dto.UpdateCourseRequest{Title: testutil.Ptr("Theirs")})
	assertIs(t, err, service.ErrUnauthorized)

	assertIs(t, f.courses.Delete(ctx, stranger, course.ID), service.ErrUnauthorized)

	_, err = f.courses.Publish(ctx, "", course.ID)
	assertIs(t, err, service.ErrUnauthorized)

	got, err := f.courses.Get(ctx, owner, course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Course.Title != "Mine" {
		t.Fatalf("title changed by stranger: %q", got.Course.Title)
	}
}

func TestUpdateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCompleteCourse(t, f.repo, owner)
	category := testutil.SeedCategory(t, f.repo, "DevOps")

	updated, err := f.courses.Update(ctx, owner, course.ID, dto.UpdateCourseRequest{
		Description: testutil.Ptr(""),
		Price:       testutil.Ptr(0.0),
		CategoryId:  testutil.Ptr(category.ID.String()),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != nil {
		t.Errorf("description = %q, want cleared", *updated.Description)
	}
	if updated.Price == nil || *updated.Price != 0 {
		t.Errorf("price = %v, want 0", updated.Price)
	}
	if updated.CategoryId == nil || *updated.CategoryId != category.ID {
		t.Errorf("category = %v, want %v", updated.CategoryId, category.ID)
	}
	if updated.Title != course.Title {
		t.Errorf("title = %q, want untouched", updated.Title)
	}

	_, err = f.courses.Update(ctx, owner, course.ID, dto.UpdateCourseRequest{Title: testutil.Ptr(" ")})
	assertValidation(t, err)

	_, err = f.courses.Update(ctx, owner, course.ID, dto.UpdateCourseRequest{CategoryId: testutil.Ptr("9d2f4a36-8a43-4c53-9a54-1c0e0c8a0f11")})
	assertValidation(t, err)

	_, err = f.courses.Update(ctx, owner, course.ID, dto.UpdateCourseRequest{CategoryId: testutil.Ptr("not-a-uuid")})
	assertValidation(t, err)
}

func TestPublishCourseRequiresCompleteness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCompleteCourse(t, f.repo, owner)

	_, err := f.courses.Publish(ctx, owner, course.ID)
	assertValidation(t, err)

	testutil.SeedChapter(t, f.repo, course.ID, "intro", 0, true)
	published, err := f.courses.Publish(ctx, owner, course.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("course should be published")
	}

	again, err := f.courses.Publish(ctx, owner, course.ID)
	if err != nil || !again.IsPublished {
		t.Fatalf("republish = %v, %v", again, err)
	}

	if _, err := f.courses.Update(ctx, owner, course.ID, dto.UpdateCourseRequest{ImageUrl: testutil.Ptr("")}); err != nil {
		t.Fatalf("clear image: %v", err)
	}
	_, err = f.courses.Publish(ctx, owner, course.ID)
	assertValidation(t, err)

	unpublished, err := f.courses.Unpublish(ctx, owner, course.ID)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if unpublished.IsPublished {
		t.Fatal("course should be draft")
	}
}

func TestGetCourseCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCompleteCourse(t, f.repo, owner)
	testutil.SeedChapter(t, f.repo, course.ID, "b", 1, false)
	testutil.SeedChapter(t, f.repo, course.ID, "a", 0, true)

	detail, err := f.courses.Get(ctx, owner, course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Completion.Completed != 6 || detail.Completion.Total != 6 {
		t.Fatalf("completion = %+v", detail.Completion)
	}
	if len(detail.Course.Chapters) != 2 || detail.Course.Chapters[0].Title != "a" {
		t.Fatalf("chapters not ordered by position: %+v", detail.Course.Chapters)
	}
}

func TestDeleteCourseCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.SeedCourse(t, f.repo, owner, "Doomed")
	first := testutil.SeedChapter(t, f.repo, course.ID, "one", 0, false)
	second := testutil.SeedChapter(t, f.repo, course.ID, "two", 1, false)
	testutil.SeedMuxData(t, f.repo, first.ID, "asset-a")
	testutil.SeedMuxData(t, f.repo, second.ID, "asset-b")
	f.videos.Seed("asset-a")
	if _, err := f.attachment.Create(ctx, owner, course.ID, dto.CreateAttachmentRequest{Url: "https://cdn.example.com/files/notes.pdf"}); err != nil {
		t.Fatalf("attachment: %v", err)
	}

	if err := f.courses.Delete(ctx, owner, course.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if f.videos.IsLive("asset-a") {
		t.Error("asset-a should be deleted remotely")
	}
	if len(f.queue.messages) != 0 {
		t.Errorf("already missing asset must not be queued: %+v", f.queue.messages)
	}
	_, err := f.courses.Get(ctx, owner, course.ID)
	assertIs(t, err, service.ErrUnauthorized)

	var chapters, muxRows, attachments int64
	db := f.repo.GetDB()
	db.Table("chapters").Where("course_id = ?", course.ID).Count(&chapters)
	db.Table("mux_data").Count(&muxRows)
	db.Table("attachments").Where("course_id = ?", course.ID).Count(&attachments)
	if chapters != 0 || muxRows != 0 || attachments != 0 {
		t.Fatalf("left behind chapters=%d mux=%d attachments=%d", chapters, muxRows, attachments)
	}
}

func TestSearchCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live := testutil.SeedCompleteCourse(t, f.repo, owner)
	testutil.SeedChapter(t, f.repo, live.ID, "one", 0, true)
	testutil.SeedChapter(t, f.repo, live.ID, "two", 1, true)
	testutil.SeedChapter(t, f.repo, live.ID, "draft", 2, false)
	testutil.SetCoursePublished(t, f.repo, live.ID)
	testutil.SeedCourse(t, f.repo, owner, "Go drafts")

	result, err := f.courses.Search(ctx, dto.SearchCoursesQuery{Title: "GO"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(result) != 1 || result[0].Course.ID != live.ID {
		t.Fatalf("result = %+v", result)
	}
	if result[0].PublishedChapters != 2 {
		t.Fatalf("published chapters = %d, want 2", result[0].PublishedChapters)
	}

	result, err = f.courses.Search(ctx, dto.SearchCoursesQuery{CategoryId: live.CategoryId.String()})
	if err != nil || len(result) != 1 {
		t.Fatalf("category search = %v, %v", result, err)
	}

	_, err = f.courses.Search(ctx, dto.SearchCoursesQuery{CategoryId: "bogus"})
	assertValidation(t, err)
}
