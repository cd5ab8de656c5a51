package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}

// queryUint64 parses an optional numeric query parameter; nil when absent.
func queryUint64(c *gin.Context, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &value, nil
}
