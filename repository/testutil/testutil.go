package testutil

import (
	"context"
	"course-studio/entities"
	"course-studio/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"testing"
)

// NewRepo opens a private in-memory SQLite database with the full schema.
func NewRepo(tb testing.TB) repository.Repository {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	// every connection to :memory: is its own database
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	repo := repository.New(db)
	if err := repo.Migrate(context.Background()); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return repo
}

func SeedCategory(tb testing.TB, repo repository.Repository, name string) *entities.Category {
	tb.Helper()
	c := &entities.Category{Name: name}
	if err := repo.GetDB().Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedCourse(tb testing.TB, repo repository.Repository, ownerUserId, title string) *entities.Course {
	tb.Helper()
	c := &entities.Course{
		OwnerUserId: ownerUserId,
		Title:       title,
	}
	if err := repo.CreateCourse(context.Background(), c); err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

// SeedCompleteCourse seeds a course with every field publishing requires
// except a published chapter.
func SeedCompleteCourse(tb testing.TB, repo repository.Repository, ownerUserId string) *entities.Course {
	tb.Helper()
	category := SeedCategory(tb, repo, "Backend-"+uuid.NewString())
	c := &entities.Course{
		OwnerUserId: ownerUserId,
		Title:       "Go for backend developers",
		Description: Ptr("Services, storage and queues"),
		ImageUrl:    Ptr("https://cdn.example.com/images/go.png"),
		Price:       Ptr(49.0),
		CategoryId:  &category.ID,
	}
	if err := repo.CreateCourse(context.Background(), c); err != nil {
		tb.Fatalf("seed complete course: %v", err)
	}
	return c
}

func SeedChapter(tb testing.TB, repo repository.Repository, courseId uuid.UUID, title string, position int, published bool) *entities.Chapter {
	tb.Helper()
	ch := &entities.Chapter{
		CourseId:    courseId,
		Title:       title,
		Position:    position,
		IsPublished: published,
	}
	if published {
		ch.Description = Ptr(title + " description")
		ch.VideoUrl = Ptr("https://videos.example.com/" + title + ".mp4")
	}
	if err := repo.CreateChapter(context.Background(), ch); err != nil {
		tb.Fatalf("seed chapter: %v", err)
	}
	return ch
}

func SeedMuxData(tb testing.TB, repo repository.Repository, chapterId uuid.UUID, assetId string) *entities.MuxData {
	tb.Helper()
	m := &entities.MuxData{
		ChapterId:  chapterId,
		AssetId:    assetId,
		PlaybackId: Ptr("playback-" + assetId),
	}
	if err := repo.CreateMuxData(context.Background(), m); err != nil {
		tb.Fatalf("seed mux data: %v", err)
	}
	return m
}

func SetCoursePublished(tb testing.TB, repo repository.Repository, courseId uuid.UUID) {
	tb.Helper()
	if err := repo.SetCoursePublished(context.Background(), courseId, true); err != nil {
		tb.Fatalf("publish course: %v", err)
	}
}

func Ptr[T any](v T) *T { return &v }
