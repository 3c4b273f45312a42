package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"practicehub/internal/cms"
	"practicehub/internal/httpx"
	"practicehub/internal/logger"
)

const defaultPageSize = 25

// newMirrorRouter serves a snapshot file the way the Strapi REST API does,
// so the API server can run against it with PRACTICEHUB_CMS_URL.
func newMirrorRouter(src *cms.FileSource, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), httpx.RequestID(), httpx.RequestLogger(log))

	router.GET("/api/practices", collection(src, log, func(s cms.Snapshot) []any { return s.Practices }))
	router.GET("/api/categories", collection(src, log, func(s cms.Snapshot) []any { return s.Categories }))
	return router
}

func collection(src *cms.FileSource, log *logger.Logger, pick func(cms.Snapshot) []any) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := src.Fetch(c.Request.Context())
		if err != nil {
			log.Warn("mirror read failed", "file", src.Path, "error", err)
			status := http.StatusInternalServerError
			if errors.Is(err, cms.ErrNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"data": nil, "error": gin.H{"status": status, "message": err.Error()}})
			return
		}

		items := pick(snap)
		page := parseInt(c.Query("pagination[page]"), 1)
		if page < 1 {
			page = 1
		}
		size := parseInt(c.Query("pagination[pageSize]"), defaultPageSize)
		if size < 1 {
			size = defaultPageSize
		}

		total := len(items)
		pageCount := (total + size - 1) / size
		start := (page - 1) * size
		if start > total {
			start = total
		}
		end := start + size
		if end > total {
			end = total
		}

		c.JSON(http.StatusOK, gin.H{
			"data": items[start:end],
			"meta": gin.H{
				"pagination": gin.H{
					"page":      page,
					"pageSize":  size,
					"pageCount": pageCount,
					"total":     total,
				},
			},
		})
	}
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
