package repository

import (
	"context"
	"course-studio/dto"
	"course-studio/entities"
	"database/sql"
	"errors"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrVersionMismatch = errors.New("course version mismatch")
	ErrPositionTaken   = errors.New("chapter position already taken")
)

type Repository interface {
	Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error
	GetDB() *gorm.DB
	Migrate(ctx context.Context) error

	CreateCourse(ctx context.Context, course *entities.Course) error
	FindOwnedCourse(ctx context.Context, courseId uuid.UUID, userId string) (*entities.Course, error)
	FindCourseWithContent(ctx context.Context, courseId uuid.UUID) (*entities.Course, error)
	ListCoursesByOwner(ctx context.Context, userId string) ([]*entities.Course, error)
	SearchPublishedCourses(ctx context.Context, title string, categoryId *uuid.UUID) ([]*entities.Course, error)
	UpdateCourseFields(ctx context.Context, courseId uuid.UUID, fields map[string]interface{}) error
	SetCoursePublished(ctx context.Context, courseId uuid.UUID, published bool) error
	BumpCourseVersion(ctx context.Context, courseId uuid.UUID, expected *int) (int, error)
	DeleteCourse(ctx context.Context, courseId uuid.UUID) error

	CreateChapter(ctx context.Context, chapter *entities.Chapter) error
	NextChapterPosition(ctx context.Context, courseId uuid.UUID) (int, error)
	FindChapter(ctx context.Context, courseId, chapterId uuid.UUID) (*entities.Chapter, error)
	FindChaptersByCourse(ctx context.Context, courseId uuid.UUID) ([]*entities.Chapter, error)
	UpdateChapterFields(ctx context.Context, chapterId uuid.UUID, fields map[string]interface{}) error
	UpdateChapterPositions(ctx context.Context, courseId uuid.UUID, updates []dto.ChapterPosition) error
	CountPublishedChapters(ctx context.Context, courseId uuid.UUID) (int64, error)
	CountPublishedChaptersByCourses(ctx context.Context, courseIds []uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteChapter(ctx context.Context, chapterId uuid.UUID) error
	DeleteChaptersByCourse(ctx context.Context, courseId uuid.UUID) error

	FindMuxDataByChapter(ctx context.Context, chapterId uuid.UUID) (*entities.MuxData, error)
	CreateMuxData(ctx context.Context, muxData *entities.MuxData) error
	DeleteMuxData(ctx context.Context, id uuid.UUID) error
	DeleteMuxDataByCourse(ctx context.Context, courseId uuid.UUID) error

	CreateAttachment(ctx context.Context, attachment *entities.Attachment) error
	DeleteAttachment(ctx context.Context, attachmentId, courseId uuid.UUID) (int64, error)
	DeleteAttachmentsByCourse(ctx context.Context, courseId uuid.UUID) error

	ListCategories(ctx context.Context) ([]*entities.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	CreateCategories(ctx context.Context, names []string) error
}

type txKey struct{}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB, debug bool) (Repository, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger:         logger.Default.LogMode(level),
			TranslateError: true,
		},
	)
	if err != nil {
		return nil, err
	}
	return New(gormDB), nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) Repository {
	return &repo{
		db: db,
	}
}

func (r *repo) GetDB() *gorm.DB {
	return r.db
}

// conn returns the transaction bound to ctx, or the root handle.
func (r *repo) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

// Transaction runs callback inside one database transaction. Repository calls
// made with the callback's ctx join it; nested calls reuse the outer one.
func (r *repo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return callback(ctx)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return callback(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

func (r *repo) Migrate(ctx context.Context) error {
	return r.conn(ctx).AutoMigrate(entities.All()...)
}
