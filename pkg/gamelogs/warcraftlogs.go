package gamelogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

const (
	warcraftLogsTokenURL = "https://www.warcraftlogs.com/oauth/token"
	warcraftLogsQueryURL = "https://www.warcraftlogs.com/api/v2/client"

	warcraftLogsRankingsQuery = `
		query CharacterRankings($name: String!, $serverSlug: String!, $serverRegion: String!) {
			characterData {
				character(name: $name, serverSlug: $serverSlug, serverRegion: $serverRegion) {
					id
					name
					classID
					lfr: zoneRankings(difficulty: 1)
					normal: zoneRankings(difficulty: 3)
					heroic: zoneRankings(difficulty: 4)
					mythic: zoneRankings(difficulty: 5)
				}
			}
		}
	`
)

// NewWarcraftLogsProvider builds the provider record for the Warcraft Logs
// v2 client API. Uses OAuth separate from FFLogs even though both are
// rpglogs properties.
func NewWarcraftLogsProvider(cred oauth.Credential) oauth.Provider {
	return oauth.Provider{
		Name:       "Warcraft Logs",
		TokenURL:   warcraftLogsTokenURL,
		QueryURL:   warcraftLogsQueryURL,
		Credential: cred,
	}
}

// CharacterIdentity selects a Warcraft Logs character by name, server and
// region.
type CharacterIdentity struct {
	Name   string
	Server string
	Region string
}

// Normalize applies the Warcraft Logs URL conventions: server slugs are
// lowercase with dashes, regions are uppercase.
func (id CharacterIdentity) Normalize() CharacterIdentity {
	return CharacterIdentity{
		Name:   id.Name,
		Server: strings.Join(strings.Fields(strings.ToLower(id.Server)), "-"),
		Region: strings.ToUpper(id.Region),
	}
}

// WarcraftLogsRankings is the stable payload for the Warcraft Logs proxy
// endpoint.
type WarcraftLogsRankings struct {
	CharacterName string              `json:"characterName"`
	ClassID       int                 `json:"classId"`
	LFR           *DifficultyRankings `json:"lfr"`
	Normal        *DifficultyRankings `json:"normal"`
	Heroic        *DifficultyRankings `json:"heroic"`
	Mythic        *DifficultyRankings `json:"mythic"`
}

// WarcraftLogsService fetches and reshapes WoW raid rankings.
type WarcraftLogsService struct {
	client *oauth.Client
}

// NewWarcraftLogsService creates a WarcraftLogsService.
func NewWarcraftLogsService(client *oauth.Client) *WarcraftLogsService {
	return &WarcraftLogsService{client: client}
}

// Configured reports whether Warcraft Logs credentials are present.
func (s *WarcraftLogsService) Configured() bool {
	return s.client.Configured()
}

// ProfileURL returns the human-navigable Warcraft Logs character page for a
// normalized identity.
func (s *WarcraftLogsService) ProfileURL(id CharacterIdentity) string {
	id = id.Normalize()
	return fmt.Sprintf("https://www.warcraftlogs.com/character/%s/%s/%s",
		strings.ToLower(id.Region), id.Server, id.Name)
}

// CharacterRankings fetches LFR through Mythic rankings in one aliased
// query and reshapes them.
func (s *WarcraftLogsService) CharacterRankings(ctx context.Context, id CharacterIdentity) (*WarcraftLogsRankings, error) {
	id = id.Normalize()

	result, err := s.client.Execute(ctx, warcraftLogsRankingsQuery, map[string]interface{}{
		"name":         id.Name,
		"serverSlug":   id.Server,
		"serverRegion": id.Region,
	})
	if err != nil {
		return nil, err
	}

	if msg := firstErrorMessage(result); msg != "" {
		return nil, &GraphQLError{Message: msg}
	}

	character := characterNode(result)
	if character == nil {
		return nil, &oauth.NotFoundError{Message: "Character not found on Warcraft Logs"}
	}

	return &WarcraftLogsRankings{
		CharacterName: asString(character["name"]),
		ClassID:       asInt(character["classID"]),
		LFR:           reshapeRankings(character["lfr"], "LFR", nil, false),
		Normal:        reshapeRankings(character["normal"], "Normal", nil, false),
		Heroic:        reshapeRankings(character["heroic"], "Heroic", nil, false),
		Mythic:        reshapeRankings(character["mythic"], "Mythic", nil, false),
	}, nil
}
