package proxy

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// setupRoutes configures the router with all defined routes
func (p *Proxy) setupRoutes() {
	p.echo.GET("/health", p.handleHealth)

	log.Printf("[ROUTES] Registering proxy endpoints...")
	p.echo.GET("/api/fflogs", p.handleFFLogs)
	p.echo.GET("/api/warcraftlogs", p.handleWarcraftLogs)
	p.echo.GET("/api/steam", p.handleSteam)
	p.echo.GET("/api/ffxiv", p.handleFFXIV)
	p.echo.GET("/api/nfts", p.handleNFTs)
	p.echo.GET("/api/wow/profile", p.handleWoWProfile)
	log.Printf("[ROUTES] Proxy endpoints registered")

	log.Printf("[ROUTES] Registering raid log endpoints...")
	p.echo.GET("/api/raids", p.handleListRaids)
	p.echo.POST("/api/raids", p.handleCreateRaid)
	p.echo.DELETE("/api/raids", p.handleDeleteRaid)
	p.echo.POST("/api/raids/parse-screenshot", p.handleParseScreenshot)

	// Add explicit OPTIONS handlers for the mutating raid endpoints to
	// ensure CORS preflight works with the x-admin-key header
	p.echo.OPTIONS("/api/raids", func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, x-admin-key")
		c.Response().Header().Set("Access-Control-Max-Age", "86400")
		return c.NoContent(http.StatusNoContent)
	})
	p.echo.OPTIONS("/api/raids/parse-screenshot", func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, x-admin-key")
		c.Response().Header().Set("Access-Control-Max-Age", "86400")
		return c.NoContent(http.StatusNoContent)
	})
	log.Printf("[ROUTES] Raid log endpoints registered")
}
