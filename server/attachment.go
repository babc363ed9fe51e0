package server

import (
	"course-studio/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *handlers) createAttachment(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req dto.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	attachment, err := h.deps.Attachments.Create(c.Request.Context(), userId(c), courseId, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *handlers) deleteAttachment(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	attachmentId, ok := pathId(c, "attachmentId")
	if !ok {
		return
	}
	if err := h.deps.Attachments.Delete(c.Request.Context(), userId(c), courseId, attachmentId); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
