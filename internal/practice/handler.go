package practice

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"practicehub/internal/catalog"
	"practicehub/internal/cms"
	"practicehub/internal/locale"
	"practicehub/internal/logger"
	"practicehub/internal/richtext"
	"practicehub/pkg/models"
)

// MaxPageSize caps the ?limit= parameter.
const MaxPageSize = 200

type Handler struct {
	Service  *Service
	PageSize int
	Log      *logger.Logger
}

func NewHandler(svc *Service, pageSize int, log *logger.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = 12
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{Service: svc, PageSize: pageSize, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.catalog)               // GET /catalog
	rg.GET("/catalog/categories", h.categories) // GET /catalog/categories
	rg.GET("/practices", h.view)                // GET /practices?q=&category=&preset=&limit=
	rg.GET("/practices/:slug", h.getBySlug)     // GET /practices/:slug
}

// RegisterAdminRoutes mounts the webhook the CMS calls after a publish.
// The group is expected to carry auth middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/revalidate", h.revalidate) // POST /cms/revalidate
}

// Chip is one toggle button of the filter bar.
type Chip struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

type viewResponse struct {
	catalog.ViewResult
	Lang          string `json:"lang"`
	CategoryChips []Chip `json:"categoryChips"`
	PresetChips   []Chip `json:"presetChips"`
	ClearLabel    string `json:"clearLabel"`
	Message       string `json:"message,omitempty"`
}

type detailResponse struct {
	models.NormalizedPractice
	DescriptionHTML string            `json:"descriptionHtml"`
	Categories      []models.Category `json:"categories"`
}

func (h *Handler) catalog(c *gin.Context) {
	idx, ok := h.index(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, idx)
}

func (h *Handler) categories(c *gin.Context) {
	idx, ok := h.index(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cats":          idx.Cats,
		"catLabelByKey": idx.CatLabelByKey,
		"catCounts":     idx.CatCounts,
	})
}

func (h *Handler) view(c *gin.Context) {
	preset, ok := catalog.ParsePreset(c.Query("preset"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preset"})
		return
	}

	idx, ok := h.index(c)
	if !ok {
		return
	}

	state := catalog.FilterState{
		Query:    c.Query("q"),
		Category: strings.TrimSpace(c.Query("category")),
		Preset:   preset,
	}
	limit := parseInt(c.Query("limit"), h.PageSize)
	if limit <= 0 {
		limit = h.PageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	lang := locale.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
	res := viewResponse{
		ViewResult:    catalog.View(idx, state, limit),
		Lang:          lang,
		CategoryChips: categoryChips(idx, state, lang),
		PresetChips:   presetChips(idx, state, lang),
		ClearLabel:    locale.T(lang, "filter.clear"),
	}
	if res.Empty {
		res.Message = locale.T(lang, "empty")
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.Service.Practice(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.fail(c, err)
		return
	}

	html, err := richtext.Render(p.Description)
	if err != nil {
		h.Log.Warn("render description failed", "slug", p.Slug, "error", err)
	}

	idx, _ := h.Service.Index(c.Request.Context())
	cats := make([]models.Category, 0, len(p.CatKeys))
	if idx != nil {
		for _, cat := range idx.Cats {
			if p.HasCategory(cat.Key()) {
				cats = append(cats, cat)
			}
		}
	}

	c.JSON(http.StatusOK, detailResponse{
		NormalizedPractice: p,
		DescriptionHTML:    html,
		Categories:         cats,
	})
}

func (h *Handler) revalidate(c *gin.Context) {
	idx, changed, err := h.Service.Revalidate(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"changed":   changed,
		"source":    h.Service.Source(),
		"practices": len(idx.Practices),
	})
}

func (h *Handler) index(c *gin.Context) (*catalog.Index, bool) {
	idx, err := h.Service.Index(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return idx, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, cms.ErrUnavailable) || errors.Is(err, cms.ErrNotFound) {
		h.Log.Warn("catalog unavailable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	h.Log.Error("catalog request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog failed"})
}

func categoryChips(idx *catalog.Index, state catalog.FilterState, lang string) []Chip {
	chips := make([]Chip, 0, len(idx.Cats)+1)
	chips = append(chips, Chip{
		Key:    "",
		Label:  locale.T(lang, "filter.all"),
		Count:  len(idx.Practices),
		Active: state.Category == "",
	})
	for _, cat := range idx.Cats {
		key := cat.Key()
		chips = append(chips, Chip{
			Key:    key,
			Label:  cat.Name,
			Count:  idx.CatCounts[key],
			Active: state.Category == key,
		})
	}
	return chips
}

func presetChips(idx *catalog.Index, state catalog.FilterState, lang string) []Chip {
	chips := make([]Chip, 0, len(catalog.Presets))
	for _, p := range catalog.Presets {
		chips = append(chips, Chip{
			Key:    string(p),
			Label:  locale.T(lang, "preset."+string(p)),
			Count:  idx.PresetStats.Count(p),
			Active: state.Preset == p,
		})
	}
	return chips
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
