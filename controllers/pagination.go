package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lexvault/config"
	"lexvault/utils"
)

const (
	fallbackPageLimit = 50
	fallbackMaxLimit  = 200
)

// parsePagination reads page/limit query params with sane bounds.
func parsePagination(c *gin.Context) (page, limit int) {
	defaultLimit, maxLimit := fallbackPageLimit, fallbackMaxLimit
	if config.AppConfig != nil {
		defaultLimit = config.AppConfig.DefaultPageLimit
		maxLimit = config.AppConfig.MaxPageLimit
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}

func buildPagination(page, limit int, total int64) *utils.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
