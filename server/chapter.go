package server

import (
	"course-studio/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
)

func (h *handlers) chapterIds(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	chapterId, ok := pathId(c, "chapterId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return courseId, chapterId, true
}

func (h *handlers) createChapter(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	chapter, err := h.deps.Chapters.Create(c.Request.Context(), userId(c), courseId, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *handlers) reorderChapters(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req dto.ReorderChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.deps.Chapters.Reorder(c.Request.Context(), userId(c), courseId, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	detail, err := h.deps.Chapters.Get(c.Request.Context(), userId(c), courseId, chapterId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) renameChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	var req dto.RenameChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	chapter, err := h.deps.Chapters.Rename(c.Request.Context(), userId(c), courseId, chapterId, req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *handlers) updateChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	chapter, err := h.deps.Chapters.Update(c.Request.Context(), userId(c), courseId, chapterId, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *handlers) deleteChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	if err := h.deps.Chapters.Delete(c.Request.Context(), userId(c), courseId, chapterId); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) publishChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	chapter, err := h.deps.Chapters.Publish(c.Request.Context(), userId(c), courseId, chapterId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *handlers) unpublishChapter(c *gin.Context) {
	courseId, chapterId, ok := h.chapterIds(c)
	if !ok {
		return
	}
	chapter, err := h.deps.Chapters.Unpublish(c.Request.Context(), userId(c), courseId, chapterId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}
