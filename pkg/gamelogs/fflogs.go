package gamelogs

import (
	"context"
	"fmt"

	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

const (
	fflogsTokenURL = "https://www.fflogs.com/oauth/token"
	fflogsQueryURL = "https://www.fflogs.com/api/v2/client"

	// One aliased sub-query per difficulty keeps the whole lookup to a
	// single round trip.
	fflogsRankingsQuery = `
		query CharacterRankings($id: Int!) {
			characterData {
				character(id: $id) {
					id
					name
					server {
						name
						slug
						region {
							slug
						}
					}
					lodestoneID
					savage: zoneRankings(difficulty: 101)
					extreme: zoneRankings(difficulty: 100)
					ultimate: zoneRankings(difficulty: 100, partition: 1)
				}
			}
		}
	`
)

// NewFFLogsProvider builds the provider record for the FFLogs v2 client API.
func NewFFLogsProvider(cred oauth.Credential) oauth.Provider {
	return oauth.Provider{
		Name:       "FFLogs",
		TokenURL:   fflogsTokenURL,
		QueryURL:   fflogsQueryURL,
		Credential: cred,
	}
}

// FFLogsRankings is the stable payload for the FFLogs proxy endpoint.
type FFLogsRankings struct {
	CharacterName string              `json:"characterName"`
	LodestoneID   int                 `json:"lodestoneId,omitempty"`
	Savage        *DifficultyRankings `json:"savage"`
	Extreme       *DifficultyRankings `json:"extreme"`
	Ultimate      *DifficultyRankings `json:"ultimate"`
}

// FFLogsService fetches and reshapes FFXIV raid rankings. Lookup is by
// direct character ID, which survives name and server renames.
type FFLogsService struct {
	client      *oauth.Client
	characterID int
}

// NewFFLogsService creates an FFLogsService for one character.
func NewFFLogsService(client *oauth.Client, characterID int) *FFLogsService {
	return &FFLogsService{client: client, characterID: characterID}
}

// Configured reports whether FFLogs credentials are present.
func (s *FFLogsService) Configured() bool {
	return s.client.Configured()
}

// ProfileURL returns the human-navigable FFLogs character page.
func (s *FFLogsService) ProfileURL() string {
	return fmt.Sprintf("https://www.fflogs.com/character/id/%d", s.characterID)
}

// CharacterRankings fetches Savage, Extreme and Ultimate rankings in one
// query and reshapes them.
func (s *FFLogsService) CharacterRankings(ctx context.Context) (*FFLogsRankings, error) {
	result, err := s.client.Execute(ctx, fflogsRankingsQuery, map[string]interface{}{
		"id": s.characterID,
	})
	if err != nil {
		return nil, err
	}

	if msg := firstErrorMessage(result); msg != "" {
		return nil, &GraphQLError{Message: msg}
	}

	character := characterNode(result)
	if character == nil {
		return nil, &oauth.NotFoundError{Message: "Character not found on FFLogs"}
	}

	return &FFLogsRankings{
		CharacterName: asString(character["name"]),
		LodestoneID:   asInt(character["lodestoneID"]),
		Savage:        reshapeRankings(character["savage"], "Savage", fflogsBossIconURL, true),
		Extreme:       reshapeRankings(character["extreme"], "Extreme", fflogsBossIconURL, true),
		Ultimate:      reshapeRankings(character["ultimate"], "Ultimate", fflogsBossIconURL, true),
	}, nil
}

// fflogsBossIconURL builds the FFLogs CDN boss icon URL from an encounter
// ID. Derived, never fetched.
func fflogsBossIconURL(encounterID int) string {
	return fmt.Sprintf("https://assets.rpglogs.com/img/ff/bosses/%d-icon.jpg", encounterID)
}
