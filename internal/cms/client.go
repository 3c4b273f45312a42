package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"practicehub/internal/logger"
)

// Client reads the practice and category collections from a Strapi REST API.
type Client struct {
	BaseURL        string
	Token          string
	Locale         string
	PracticesPath  string
	CategoriesPath string
	PageSize       int // items per request
	MaxPages       int // safety cap per collection
	HTTP           *http.Client
	Log            *logger.Logger
}

// NewClient returns a client with the site's default collection names.
func NewClient(baseURL, token, locale string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		BaseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Token:          strings.TrimSpace(token),
		Locale:         strings.TrimSpace(locale),
		PracticesPath:  "practices",
		CategoriesPath: "categories",
		PageSize:       100,
		MaxPages:       20,
		HTTP:           &http.Client{Timeout: 10 * time.Second},
		Log:            log,
	}
}

func (c *Client) Name() string { return "strapi" }

// Fetch loads every page of practices, then categories. A failing category
// request is logged and treated as an empty list: categories are also
// discovered from the practices themselves.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	if c == nil || c.BaseURL == "" {
		return Snapshot{}, fmt.Errorf("strapi: base url not configured")
	}
	practices, err := c.fetchCollection(ctx, c.PracticesPath)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := c.fetchCollection(ctx, c.CategoriesPath)
	if err != nil {
		c.Log.Warn("strapi categories unavailable", "error", err)
		categories = []any{}
	}
	c.Log.Debug("strapi fetched", "practices", len(practices), "categories", len(categories))
	return Snapshot{
		Practices:  practices,
		Categories: categories,
		Source:     c.Name(),
		FetchedAt:  time.Now(),
	}, nil
}

type pageResponse struct {
	Data []any `json:"data"`
	Meta struct {
		Pagination struct {
			Page      int `json:"page"`
			PageSize  int `json:"pageSize"`
			PageCount int `json:"pageCount"`
			Total     int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

func (c *Client) fetchCollection(ctx context.Context, collection string) ([]any, error) {
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = 20
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	var all []any
	for page := 1; page <= maxPages; page++ {
		endpoint, err := url.JoinPath(c.BaseURL, "api", collection)
		if err != nil {
			return nil, fmt.Errorf("strapi: join path %s: %w", collection, err)
		}
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("strapi: parse url %s: %w", collection, err)
		}
		q := u.Query()
		q.Set("populate", "*")
		q.Set("pagination[page]", strconv.Itoa(page))
		q.Set("pagination[pageSize]", strconv.Itoa(pageSize))
		if c.Locale != "" {
			q.Set("locale", c.Locale)
		}
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("strapi: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("strapi: request %s: %w", collection, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("strapi: read %s: %w", collection, err)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("strapi: %s: %w", collection, ErrNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("strapi: %s status %d: %s", collection, resp.StatusCode, truncate(string(body), 200))
		}

		var pr pageResponse
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&pr); err != nil {
			return nil, fmt.Errorf("strapi: decode %s: %w", collection, err)
		}
		all = append(all, pr.Data...)

		pageCount := pr.Meta.Pagination.PageCount
		if len(pr.Data) == 0 || pageCount <= page {
			break
		}
	}
	if all == nil {
		all = []any{}
	}
	return all, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
