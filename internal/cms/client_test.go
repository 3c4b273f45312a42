package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strapiServer(t *testing.T, practices, categories []any, pageSize int) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32
	serve := func(items []any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.Equal(t, "*", r.URL.Query().Get("populate"))
			assert.Equal(t, "hu", r.URL.Query().Get("locale"))

			page, _ := strconv.Atoi(r.URL.Query().Get("pagination[page]"))
			start := (page - 1) * pageSize
			end := start + pageSize
			if start > len(items) {
				start = len(items)
			}
			if end > len(items) {
				end = len(items)
			}
			pageCount := (len(items) + pageSize - 1) / pageSize
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": items[start:end],
				"meta": map[string]any{"pagination": map[string]any{
					"page": page, "pageSize": pageSize, "pageCount": pageCount, "total": len(items),
				}},
			})
		}
	}
	mux := http.NewServeMux()
	mux.Handle("/api/practices", serve(practices))
	if categories != nil {
		mux.Handle("/api/categories", serve(categories))
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func items(n int) []any {
	out := make([]any, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, map[string]any{"id": i, "name": fmt.Sprintf("p%d", i)})
	}
	return out
}

func TestClientFetchPaginates(t *testing.T) {
	srv, requests := strapiServer(t, items(5), items(1), 2)

	c := NewClient(srv.URL+"/", "secret", "hu", nil)
	c.PageSize = 2

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Practices, 5)
	assert.Len(t, snap.Categories, 1)
	assert.Equal(t, "strapi", snap.Source)
	assert.False(t, snap.FetchedAt.IsZero())
	// 3 practice pages + 1 category page
	assert.Equal(t, int32(4), atomic.LoadInt32(requests))

	first, ok := snap.Practices[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), first["id"])
}

func TestClientMissingCategoriesIsNotFatal(t *testing.T) {
	srv, _ := strapiServer(t, items(1), nil, 10)

	snap, err := NewClient(srv.URL, "secret", "hu", nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Practices, 1)
	assert.NotNil(t, snap.Categories)
	assert.Empty(t, snap.Categories)
}

func TestClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/practices":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "", nil).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	c := NewClient(srv.URL, "", "", nil)
	c.PracticesPath = "missing"
	_, err = c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewClient("", "", "", nil).Fetch(context.Background())
	assert.Error(t, err)
}

func TestClientRespectsContext(t *testing.T) {
	srv, _ := strapiServer(t, items(1), items(1), 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, "secret", "hu", nil).Fetch(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
