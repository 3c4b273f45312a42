package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"practicehub/internal/auth"
	"practicehub/internal/catalog"
	"practicehub/internal/cms"
	"practicehub/internal/httpx"
	"practicehub/internal/logger"
	"practicehub/internal/practice"
	synchub "practicehub/internal/sync"
	"practicehub/pkg/utils"
)

type app struct {
	router *gin.Engine
	svc    *practice.Service
}

func newSource(cfg utils.Config, log *logger.Logger) cms.Source {
	var sources []cms.Source
	if strings.TrimSpace(cfg.CMS.BaseURL) != "" {
		sources = append(sources, cms.NewClient(cfg.CMS.BaseURL, cfg.CMS.Token, cfg.CMS.Locale, log))
	}
	if cfg.CMS.FallbackFile != "" {
		sources = append(sources, cms.NewFileSource(cfg.CMS.FallbackFile))
	}
	return cms.NewFallbackSource(log, sources...)
}

func catalogOptions(cfg utils.Config, log *logger.Logger) catalog.Options {
	opts := catalog.DefaultOptions()
	tag, err := language.Parse(cfg.Collation)
	if err != nil {
		log.Warn("invalid collation, using default", "collation", cfg.Collation, "error", err)
		return opts
	}
	opts.Collation = tag
	return opts
}

func newApp(cfg utils.Config, hub *synchub.Hub, log *logger.Logger) *app {
	return newAppWithSource(cfg, newSource(cfg, log), hub, log)
}

func newAppWithSource(cfg utils.Config, src cms.Source, hub *synchub.Hub, log *logger.Logger) *app {
	svc := practice.NewService(src, catalogOptions(cfg, log), cfg.CacheTTL, hub, log)

	router := gin.New()
	router.Use(gin.Recovery(), httpx.RequestID(), httpx.RequestLogger(log))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", synchub.WSHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		if !svc.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"source":      svc.Source(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
			"last_event":  stats.LastEvent,
		})
	})

	h := practice.NewHandler(svc, cfg.PageSize, log)
	h.RegisterRoutes(router.Group(""))

	tokens := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	admin := router.Group("/cms")
	admin.Use(auth.RequireScope(tokens, auth.ScopeRevalidate))
	h.RegisterAdminRoutes(admin)

	return &app{router: router, svc: svc}
}
