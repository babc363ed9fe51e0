package dto

import (
	"course-studio/constant"
	"course-studio/entities"
	"github.com/google/uuid"
)

// AssetCleanupMessage asks the cleanup worker to delete a remote video asset
// whose synchronous delete failed.
type AssetCleanupMessage struct {
	AssetId   string                 `json:"assetId"`
	ChapterId uuid.UUID              `json:"chapterId"`
	Reason    constant.CleanupReason `json:"reason"`
}

type CreateCourseRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateCourseRequest is a partial update; nil fields are left untouched and
// empty strings clear optional fields.
type UpdateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageUrl    *string  `json:"imageUrl"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	CategoryId  *string  `json:"categoryId"`
}

type CreateChapterRequest struct {
	Title string `json:"title" binding:"required"`
}

type RenameChapterRequest struct {
	Title string `json:"title"`
}

type UpdateChapterRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoUrl    *string `json:"videoUrl" binding:"omitempty,url"`
	IsFree      *bool   `json:"isFree"`
}

type ChapterPosition struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Position *int      `json:"position" binding:"required,gte=0"`
}

type ReorderChaptersRequest struct {
	Updates []ChapterPosition `json:"updates" binding:"required,min=1,dive"`
	Version *int              `json:"version"`
}

type ReorderChaptersResponse struct {
	Version int `json:"version"`
}

type CreateAttachmentRequest struct {
	Url string `json:"url"`
}

type Completion struct {
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Missing   []string `json:"missing"`
}

type CourseDetail struct {
	Course     *entities.Course `json:"course"`
	Completion Completion       `json:"completion"`
}

type ChapterDetail struct {
	Chapter    *entities.Chapter `json:"chapter"`
	Completion Completion        `json:"completion"`
}

type SearchCoursesQuery struct {
	Title      string `form:"title"`
	CategoryId string `form:"categoryId"`
}

type CatalogCourse struct {
	Course            entities.Course `json:"course"`
	PublishedChapters int64           `json:"publishedChapters"`
}

type UploadResponse struct {
	Url          string                `json:"url"`
	Name         string                `json:"name"`
	ResourceType constant.ResourceType `json:"resourceType"`
}
