// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// GetLimitParam reads ?limit=, falling back to the default when it is
// missing, malformed or outside [1, MaxListLimit].
func GetLimitParam(c *gin.Context) int64 {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultListLimit)))
	if err != nil || limit < 1 || limit > MaxListLimit {
		limit = DefaultListLimit
	}
	return int64(limit)
}

func SetCountHeader(c *gin.Context, n int) {
	c.Header("X-Total-Count", strconv.Itoa(n))
}

// GetSkipParam reads ?skip=, treating anything but a non-negative integer
// as zero.
func GetSkipParam(c *gin.Context) int64 {
	skip, err := strconv.ParseInt(c.Query("skip"), 10, 64)
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}
