package proxy

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/yurikomh/portfolio-api/pkg/config"
	"github.com/yurikomh/portfolio-api/pkg/gamelogs"
	"github.com/yurikomh/portfolio-api/pkg/nft"
	"github.com/yurikomh/portfolio-api/pkg/oauth"
	"github.com/yurikomh/portfolio-api/pkg/raiderio"
	"github.com/yurikomh/portfolio-api/pkg/raids"
	"github.com/yurikomh/portfolio-api/pkg/steam"
	"github.com/yurikomh/portfolio-api/pkg/utils"
	"github.com/yurikomh/portfolio-api/pkg/vision"
	"github.com/yurikomh/portfolio-api/pkg/warmup"
	"github.com/yurikomh/portfolio-api/pkg/xivapi"
)

// Proxy is the HTTP server fronting all portfolio data sources.
type Proxy struct {
	config  *config.Config
	echo    *echo.Echo
	verbose bool

	fflogs       *gamelogs.FFLogsService
	warcraftlogs *gamelogs.WarcraftLogsService
	steam        *steam.Client
	xivapi       *xivapi.Client
	nft          *nft.Client
	raiderio     *raiderio.Client
	vision       *vision.Parser

	raidStore raids.Storage

	cache  *utils.TTLCache[map[string]interface{}]
	warmer *warmup.Warmer
}

// NewProxy creates a new proxy instance with all upstream clients wired
// from the configuration.
func NewProxy(cfg *config.Config, verbose bool) (*Proxy, error) {
	e := echo.New()

	// Disable Echo's default logger and use custom logging
	e.Logger.SetOutput(io.Discard)
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "x-admin-key"},
		MaxAge:       86400,
	}))

	fflogsClient := oauth.NewClient(gamelogs.NewFFLogsProvider(
		oauth.NewCredential(cfg.FFLogs.ClientID, cfg.FFLogs.ClientSecret)))
	wclClient := oauth.NewClient(gamelogs.NewWarcraftLogsProvider(
		oauth.NewCredential(cfg.WarcraftLogs.ClientID, cfg.WarcraftLogs.ClientSecret)))

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	store, err := raids.NewStorage(context.Background(), &cfg.Raids.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize raid storage: %w", err)
	}

	p := &Proxy{
		config:       cfg,
		echo:         e,
		verbose:      verbose,
		fflogs:       gamelogs.NewFFLogsService(fflogsClient, cfg.FFLogs.CharacterID),
		warcraftlogs: gamelogs.NewWarcraftLogsService(wclClient),
		steam:        steam.NewClient(cfg.Steam.APIKey, cfg.Steam.SteamID),
		xivapi:       xivapi.NewClient(),
		nft:          nft.NewClient(cfg.NFT.AlchemyAPIKey),
		raiderio:     raiderio.NewClient(),
		vision:       vision.NewParser(cfg.OpenAI.APIKey),
		raidStore:    store,
		cache:        utils.NewTTLCache[map[string]interface{}](ttl),
	}

	p.warmer = warmup.NewWarmer(warmup.Config{
		Schedule: cfg.Warmup.Schedule,
		Enabled:  cfg.Warmup.Enabled,
	}, p.warmupTasks())

	// Add logging middleware if verbose
	if verbose {
		e.Use(p.loggingMiddleware())
	}

	p.setupRoutes()
	return p, nil
}

// loggingMiddleware returns Echo middleware for request logging
func (p *Proxy) loggingMiddleware() echo.MiddlewareFunc {
	return echo.MiddlewareFunc(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			log.Printf("Request: %s %s from %s", req.Method, req.URL.Path, req.RemoteAddr)
			return next(c)
		}
	})
}

// GetEcho returns the underlying echo instance, for tests.
func (p *Proxy) GetEcho() *echo.Echo {
	return p.echo
}

// Start starts the server and the cache warmer.
func (p *Proxy) Start(addr string) error {
	if err := p.warmer.Start(context.Background()); err != nil {
		log.Printf("[PROXY] Cache warmer not started: %v", err)
	}
	log.Printf("[PROXY] Listening on %s", addr)
	return p.echo.Start(addr)
}

// Shutdown gracefully stops the server, the warmer and the raid store.
func (p *Proxy) Shutdown(ctx context.Context) error {
	p.warmer.Stop()
	if err := p.raidStore.Close(); err != nil {
		log.Printf("[PROXY] Failed to close raid storage: %v", err)
	}
	return p.echo.Shutdown(ctx)
}
