package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/bizpulse/internal/daterange"
)

type rangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Preset    string `form:"preset"`
}

// parseRange reads startDate, endDate and preset. Explicit dates win over
// the preset; with neither the range is unbounded.
func (s *Server) parseRange(c *gin.Context) (daterange.Range, error) {
	var query rangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return daterange.Range{}, ErrInvalidRequest
	}
	return daterange.Resolve(query.StartDate, query.EndDate, query.Preset, s.clock.Now())
}

// parseOptionalLimit returns 0 when value is blank.
func parseOptionalLimit(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 1 {
		return 0, newValidationError("limit", "invalid_limit", "limit must be a positive integer")
	}
	return parsed, nil
}
