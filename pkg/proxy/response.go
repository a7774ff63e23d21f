package proxy

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

// Proxy endpoints always answer HTTP 200. Failure is communicated through
// the configured/error fields so the front-end never has to branch on HTTP
// status codes.

func respondOK(c echo.Context, payload map[string]interface{}) error {
	resp := map[string]interface{}{"configured": true}
	for k, v := range payload {
		resp[k] = v
	}
	return c.JSON(http.StatusOK, resp)
}

func respondNotConfigured(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"configured": false,
		"message":    message,
	})
}

func respondError(c echo.Context, err error) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"configured": true,
		"error":      err.Error(),
	})
}

// handleProxy runs one proxy endpoint: serve from cache when possible,
// otherwise fetch, cache on success, and map every failure into the
// 200-with-error contract.
func (p *Proxy) handleProxy(c echo.Context, cacheKey, notConfiguredMsg string, fetch func(ctx context.Context) (map[string]interface{}, error)) error {
	if cacheKey != "" {
		if cached, ok := p.cache.Get(cacheKey); ok {
			return respondOK(c, cached)
		}
	}

	payload, err := fetch(c.Request().Context())
	if err != nil {
		if errors.Is(err, oauth.ErrNotConfigured) {
			return respondNotConfigured(c, notConfiguredMsg)
		}
		log.Printf("[PROXY] %s failed: %v", c.Path(), err)
		return respondError(c, err)
	}

	if cacheKey != "" {
		p.cache.Set(cacheKey, payload)
	}
	return respondOK(c, payload)
}
