package server

import (
	"course-studio/constant"
	"course-studio/service"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type handlers struct {
	deps Dependencies
}

func userId(c *gin.Context) string {
	return c.GetString(constant.ContextKeyUserId)
}

// pathId parses a uuid path parameter, writing a 400 when it is malformed.
func pathId(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeError(c, &service.ValidationError{Field: name, Message: fmt.Sprintf("invalid %s", name)})
		return uuid.Nil, false
	}
	return id, true
}
