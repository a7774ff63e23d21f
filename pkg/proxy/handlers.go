package proxy

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yurikomh/portfolio-api/pkg/gamelogs"
	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

func (p *Proxy) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleFFLogs serves the FFXIV raid rankings for the configured character.
func (p *Proxy) handleFFLogs(c echo.Context) error {
	return p.handleProxy(c, "fflogs", "FFLogs credentials not configured",
		func(ctx context.Context) (map[string]interface{}, error) {
			rankings, err := p.fflogs.CharacterRankings(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"rankings":   rankings,
				"profileUrl": p.fflogs.ProfileURL(),
			}, nil
		})
}

// handleWarcraftLogs serves WoW raid rankings. The character defaults to
// the configured one but can be overridden via query parameters.
func (p *Proxy) handleWarcraftLogs(c echo.Context) error {
	id := gamelogs.CharacterIdentity{
		Name:   c.QueryParam("name"),
		Server: c.QueryParam("server"),
		Region: c.QueryParam("region"),
	}
	if id.Name == "" {
		id.Name = p.config.WoW.CharacterName
	}
	if id.Server == "" {
		id.Server = p.config.WoW.Realm
	}
	if id.Region == "" {
		id.Region = p.config.WoW.Region
	}
	id = id.Normalize()

	cacheKey := fmt.Sprintf("warcraftlogs:%s:%s:%s", id.Region, id.Server, id.Name)
	return p.handleProxy(c, cacheKey, "Warcraft Logs credentials not configured",
		func(ctx context.Context) (map[string]interface{}, error) {
			rankings, err := p.warcraftlogs.CharacterRankings(ctx, id)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"rankings":   rankings,
				"profileUrl": p.warcraftlogs.ProfileURL(id),
			}, nil
		})
}

// handleSteam serves the Steam profile, full library or recently played
// games, selected by the endpoint query parameter.
func (p *Proxy) handleSteam(c echo.Context) error {
	endpoint := c.QueryParam("endpoint")
	if endpoint == "" {
		endpoint = "profile"
	}

	return p.handleProxy(c, "steam:"+endpoint, "Steam API key not configured",
		func(ctx context.Context) (map[string]interface{}, error) {
			if !p.steam.Configured() {
				return nil, oauth.ErrNotConfigured
			}
			switch endpoint {
			case "profile":
				profile, err := p.steam.Profile(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"profile": profile}, nil
			case "games":
				games, err := p.steam.OwnedGames(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"games": games}, nil
			case "recent":
				recent, err := p.steam.RecentGames(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"games": recent}, nil
			default:
				return nil, fmt.Errorf("unknown endpoint: %s", endpoint)
			}
		})
}

// handleFFXIV passes character search and lookup through to XIVAPI, which
// needs no credentials.
func (p *Proxy) handleFFXIV(c echo.Context) error {
	action := c.QueryParam("action")
	if action == "" {
		action = "character"
	}

	switch action {
	case "search":
		name := c.QueryParam("name")
		server := c.QueryParam("server")
		if name == "" {
			return respondError(c, fmt.Errorf("name parameter is required"))
		}
		return p.handleProxy(c, fmt.Sprintf("ffxiv:search:%s:%s", name, server), "",
			func(ctx context.Context) (map[string]interface{}, error) {
				result, err := p.xivapi.SearchCharacter(ctx, name, server)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"data": result}, nil
			})
	case "character":
		id := c.QueryParam("id")
		if id == "" {
			id = strconv.Itoa(p.config.FFLogs.CharacterID)
		}
		return p.handleProxy(c, "ffxiv:character:"+id, "",
			func(ctx context.Context) (map[string]interface{}, error) {
				result, err := p.xivapi.Character(ctx, id)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"data": result}, nil
			})
	default:
		return respondError(c, fmt.Errorf("unknown action: %s", action))
	}
}

// handleNFTs serves the wallet's NFT collection with spam filtered out.
func (p *Proxy) handleNFTs(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		address = p.config.NFT.WalletAddress
	}
	pageSize := 0
	if raw := c.QueryParam("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			pageSize = n
		}
	}
	pageKey := c.QueryParam("pageKey")

	cacheKey := fmt.Sprintf("nfts:%s:%d:%s", address, pageSize, pageKey)
	return p.handleProxy(c, cacheKey, "Alchemy API key not configured",
		func(ctx context.Context) (map[string]interface{}, error) {
			if !p.nft.Configured() {
				return nil, oauth.ErrNotConfigured
			}
			page, err := p.nft.NFTsForOwner(ctx, address, pageSize, pageKey)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"nfts":       page.NFTs,
				"totalCount": page.TotalCount,
				"pageKey":    page.PageKey,
			}, nil
		})
}

// handleWoWProfile serves the Raider.io character profile for the
// configured WoW character.
func (p *Proxy) handleWoWProfile(c echo.Context) error {
	wow := p.config.WoW
	cacheKey := fmt.Sprintf("wowprofile:%s:%s:%s", wow.Region, wow.Realm, wow.CharacterName)
	return p.handleProxy(c, cacheKey, "",
		func(ctx context.Context) (map[string]interface{}, error) {
			profile, err := p.raiderio.CharacterProfile(ctx, wow.Region, wow.Realm, wow.CharacterName)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"profile": profile}, nil
		})
}
