package gamelogs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

func newWarcraftLogsService(t *testing.T, queryResponse string) (*WarcraftLogsService, func()) {
	t.Helper()
	tokenServer := newMockOAuthServer(t)
	queryServer := newMockGraphQLServer(t, queryResponse)

	client := oauth.NewClient(oauth.Provider{
		Name:       "Warcraft Logs",
		TokenURL:   tokenServer.URL,
		QueryURL:   queryServer.URL,
		Credential: oauth.NewCredential("test-id", "test-secret"),
	})

	cleanup := func() {
		tokenServer.Close()
		queryServer.Close()
	}
	return NewWarcraftLogsService(client), cleanup
}

func TestCharacterIdentity_Normalize(t *testing.T) {
	id := CharacterIdentity{Name: "Yüriko", Server: "Moon Guard", Region: "us"}.Normalize()

	assert.Equal(t, "Yüriko", id.Name)
	assert.Equal(t, "moon-guard", id.Server)
	assert.Equal(t, "US", id.Region)
}

func TestWarcraftLogsService_CharacterRankings(t *testing.T) {
	response := `{
		"data": {"characterData": {"character": {
			"id": 1234,
			"name": "Yüriko",
			"classID": 5,
			"lfr": null,
			"normal": {
				"bestPerformanceAverage": 71.3,
				"rankings": [
					{"encounter": {"id": 3009, "name": "Plexus Sentinel"}, "rankPercent": 71.3, "medianPercent": 66.0, "totalKills": 4, "spec": "Shadow"},
					{"encounter": {"id": 3010, "name": "Loom'ithar"}, "rankPercent": null}
				]
			},
			"heroic": {
				"bestPerformanceAverage": 42.0,
				"rankings": [
					{"encounter": {"id": 3009, "name": "Plexus Sentinel"}, "rankPercent": 42.0, "medianPercent": 42.0, "totalKills": 1, "spec": "Shadow"}
				]
			},
			"mythic": null
		}}}
	}`

	service, cleanup := newWarcraftLogsService(t, response)
	defer cleanup()

	identity := CharacterIdentity{Name: "Yüriko", Server: "Moon Guard", Region: "us"}
	rankings, err := service.CharacterRankings(context.Background(), identity)
	require.NoError(t, err)

	assert.Equal(t, "Yüriko", rankings.CharacterName)
	assert.Equal(t, 5, rankings.ClassID)
	assert.Nil(t, rankings.LFR)
	assert.Nil(t, rankings.Mythic)

	require.NotNil(t, rankings.Normal)
	require.Len(t, rankings.Normal.Encounters, 1)
	enc := rankings.Normal.Encounters[0]
	assert.Equal(t, "Plexus Sentinel", enc.EncounterName)
	assert.Equal(t, "Shadow", enc.Spec)
	assert.Empty(t, enc.Job)
	// Warcraft Logs has no deterministic boss icon template.
	assert.Empty(t, enc.IconURL)

	require.NotNil(t, rankings.Heroic)
	assert.Len(t, rankings.Heroic.Encounters, 1)
}

func TestWarcraftLogsService_CharacterNotFound(t *testing.T) {
	service, cleanup := newWarcraftLogsService(t, `{"data": {"characterData": {"character": null}}}`)
	defer cleanup()

	_, err := service.CharacterRankings(context.Background(), CharacterIdentity{Name: "Nobody", Server: "moon-guard", Region: "us"})
	var notFound *oauth.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Character not found on Warcraft Logs", notFound.Message)
}

func TestWarcraftLogsService_ProfileURL(t *testing.T) {
	client := oauth.NewClient(NewWarcraftLogsProvider(oauth.NewCredential("id", "secret")))
	service := NewWarcraftLogsService(client)

	url := service.ProfileURL(CharacterIdentity{Name: "Yüriko", Server: "Moon Guard", Region: "US"})
	assert.Equal(t, "https://www.warcraftlogs.com/character/us/moon-guard/Yüriko", url)
}
