package server

import (
	"course-studio/service"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *handlers) upload(c *gin.Context) {
	if h.deps.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.deps.MaxUploadBytes)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
			return
		}
		writeError(c, &service.ValidationError{Field: "file", Message: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.deps.Uploads.Upload(c.Request.Context(), service.UploadFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
