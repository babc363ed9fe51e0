package server

import (
	"course-studio/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *handlers) createCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course, err := h.deps.Courses.Create(c.Request.Context(), userId(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *handlers) listCourses(c *gin.Context) {
	courses, err := h.deps.Courses.List(c.Request.Context(), userId(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *handlers) getCourse(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	detail, err := h.deps.Courses.Get(c.Request.Context(), userId(c), courseId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) updateCourse(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course, err := h.deps.Courses.Update(c.Request.Context(), userId(c), courseId, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *handlers) deleteCourse(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Courses.Delete(c.Request.Context(), userId(c), courseId); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) publishCourse(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	course, err := h.deps.Courses.Publish(c.Request.Context(), userId(c), courseId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *handlers) unpublishCourse(c *gin.Context) {
	courseId, ok := pathId(c, "id")
	if !ok {
		return
	}
	course, err := h.deps.Courses.Unpublish(c.Request.Context(), userId(c), courseId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Courses.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) searchCourses(c *gin.Context) {
	var query dto.SearchCoursesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.deps.Courses.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
