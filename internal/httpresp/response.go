package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NonNil turns a nil slice into an empty one so it encodes as [].
func NonNil[T any](data []T) []T {
	if data == nil {
		return []T{}
	}
	return data
}
