package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicehub/internal/catalog"
	"practicehub/internal/cms"
	"practicehub/internal/logger"
)

func TestMirrorPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newMirrorRouter(cms.NewFileSource("../../data/practices.yaml"), logger.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/practices?pagination[page]=2&pagination[pageSize]=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []map[string]any `json:"data"`
		Meta struct {
			Pagination struct {
				Page      int `json:"page"`
				PageSize  int `json:"pageSize"`
				PageCount int `json:"pageCount"`
				Total     int `json:"total"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Meta.Pagination.Page)
	assert.Equal(t, 3, body.Meta.Pagination.PageCount)
	assert.Equal(t, 5, body.Meta.Pagination.Total)
}

func TestMirrorMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newMirrorRouter(cms.NewFileSource("nope.yaml"), logger.Nop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// The CMS client must read the mirror exactly like a real Strapi.
func TestMirrorRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(newMirrorRouter(cms.NewFileSource("../../data/practices.yaml"), logger.Nop()))
	defer srv.Close()

	client := cms.NewClient(srv.URL, "", "hu", nil)
	client.PageSize = 2
	remote, err := client.Fetch(context.Background())
	require.NoError(t, err)

	local, err := cms.NewFileSource("../../data/practices.yaml").Fetch(context.Background())
	require.NoError(t, err)

	a := catalog.BuildIndex(remote.Practices, remote.Categories, catalog.DefaultOptions())
	b := catalog.BuildIndex(local.Practices, local.Categories, catalog.DefaultOptions())
	assert.Equal(t, b, a)
}
