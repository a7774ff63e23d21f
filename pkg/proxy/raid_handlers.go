package proxy

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/yurikomh/portfolio-api/pkg/raids"
)

// The raid log is a private admin surface, not a public proxy, so it keeps
// real REST status codes instead of the always-200 contract.

// requireAdminKey gates mutating raid endpoints on the x-admin-key header.
func (p *Proxy) requireAdminKey(c echo.Context) error {
	adminKey := p.config.Raids.AdminKey
	if adminKey == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "admin key not configured")
	}
	if c.Request().Header.Get("x-admin-key") != adminKey {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin key")
	}
	return nil
}

// handleListRaids returns all raids, newest first, with aggregate stats.
func (p *Proxy) handleListRaids(c echo.Context) error {
	list, err := p.raidStore.List()
	if err != nil {
		log.Printf("[RAIDS] Failed to list raids: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list raids")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"raids": list,
		"stats": raids.CalculateStats(list),
	})
}

// handleCreateRaid logs a new raid. The server owns the ID, the timestamp
// default and the total value.
func (p *Proxy) handleCreateRaid(c echo.Context) error {
	if err := p.requireAdminKey(c); err != nil {
		return err
	}

	var req raids.NewRaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Map == "" || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "map and status are required")
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	items := req.Items
	if items == nil {
		items = []raids.RaidItem{}
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}

	raid := &raids.Raid{
		ID:         uuid.New().String(),
		Date:       date,
		Map:        req.Map,
		Status:     req.Status,
		Notes:      req.Notes,
		TotalValue: req.TotalValue(),
		Items:      items,
	}

	if err := p.raidStore.Save(raid); err != nil {
		log.Printf("[RAIDS] Failed to save raid: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save raid")
	}

	log.Printf("[RAIDS] Logged raid %s on %s (%s)", raid.ID, raid.Map, raid.Status)
	return c.JSON(http.StatusCreated, raid)
}

// handleDeleteRaid removes one raid by the id query parameter.
func (p *Proxy) handleDeleteRaid(c echo.Context) error {
	if err := p.requireAdminKey(c); err != nil {
		return err
	}

	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id parameter is required")
	}

	if err := p.raidStore.Delete(id); err != nil {
		if errors.Is(err, raids.ErrRaidNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "raid not found")
		}
		log.Printf("[RAIDS] Failed to delete raid %s: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete raid")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// handleParseScreenshot sends an end-of-raid screenshot through the vision
// model and returns the extracted raid without saving it; the admin UI
// reviews the result before posting it.
func (p *Proxy) handleParseScreenshot(c echo.Context) error {
	if err := p.requireAdminKey(c); err != nil {
		return err
	}

	if !p.vision.Configured() {
		return echo.NewHTTPError(http.StatusInternalServerError, "OpenAI API key not configured")
	}

	var req struct {
		Image string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Image == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "image is required")
	}

	parsed, err := p.vision.ParseScreenshot(c.Request().Context(), req.Image)
	if err != nil {
		log.Printf("[RAIDS] Screenshot parse failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to parse screenshot")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"parsed":  parsed,
	})
}
