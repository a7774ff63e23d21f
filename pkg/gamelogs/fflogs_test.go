package gamelogs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurikomh/portfolio-api/pkg/oauth"
)

func newMockOAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok1","expires_in":3600}`))
	}))
}

func newMockGraphQLServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["query"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
}

func newFFLogsService(t *testing.T, queryResponse string) (*FFLogsService, func()) {
	t.Helper()
	tokenServer := newMockOAuthServer(t)
	queryServer := newMockGraphQLServer(t, queryResponse)

	client := oauth.NewClient(oauth.Provider{
		Name:       "FFLogs",
		TokenURL:   tokenServer.URL,
		QueryURL:   queryServer.URL,
		Credential: oauth.NewCredential("test-id", "test-secret"),
	})

	cleanup := func() {
		tokenServer.Close()
		queryServer.Close()
	}
	return NewFFLogsService(client, 15692673), cleanup
}

const fflogsTwoTierResponse = `{
	"data": {
		"characterData": {
			"character": {
				"id": 15692673,
				"name": "Yuriko Mh",
				"lodestoneID": 26595912,
				"server": {"name": "Excalibur", "slug": "excalibur", "region": {"slug": "na"}},
				"savage": {
					"bestPerformanceAverage": 87.5,
					"rankings": [
						{
							"encounter": {"id": 97, "name": "Dancing Green"},
							"rankPercent": 92.1,
							"medianPercent": 85.0,
							"totalKills": 14,
							"spec": "Astrologian"
						},
						{
							"encounter": {"id": 98, "name": "Sugar Riot"},
							"rankPercent": null,
							"medianPercent": null,
							"totalKills": 0,
							"spec": "Astrologian"
						}
					]
				},
				"extreme": {
					"bestPerformanceAverage": 64.2,
					"rankings": [
						{
							"encounter": {"id": 1073, "name": "Zelenia"},
							"rankPercent": 64.2,
							"medianPercent": 60.1,
							"totalKills": 3,
							"spec": "White Mage"
						}
					]
				},
				"ultimate": null
			}
		}
	}
}`

func TestFFLogsService_CharacterRankings(t *testing.T) {
	service, cleanup := newFFLogsService(t, fflogsTwoTierResponse)
	defer cleanup()

	rankings, err := service.CharacterRankings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Yuriko Mh", rankings.CharacterName)
	assert.Equal(t, 26595912, rankings.LodestoneID)

	// The null-percentile encounter is dropped, not zeroed.
	require.NotNil(t, rankings.Savage)
	require.Len(t, rankings.Savage.Encounters, 1)
	enc := rankings.Savage.Encounters[0]
	assert.Equal(t, "Dancing Green", enc.EncounterName)
	assert.Equal(t, 92.1, enc.RankPercent)
	require.NotNil(t, enc.MedianPercent)
	assert.Equal(t, 85.0, *enc.MedianPercent)
	assert.Equal(t, 14, enc.TotalKills)
	assert.Equal(t, "Astrologian", enc.Job)
	assert.Equal(t, "https://assets.rpglogs.com/img/ff/bosses/97-icon.jpg", enc.IconURL)

	require.NotNil(t, rankings.Savage.AveragePerformance)
	assert.Equal(t, 87.5, *rankings.Savage.AveragePerformance)

	// Second tier carries its own filtered set.
	require.NotNil(t, rankings.Extreme)
	require.Len(t, rankings.Extreme.Encounters, 1)
	assert.Equal(t, "Zelenia", rankings.Extreme.Encounters[0].EncounterName)

	// A null zoneRankings object maps to a nil tier.
	assert.Nil(t, rankings.Ultimate)

	assert.Equal(t, "https://www.fflogs.com/character/id/15692673", service.ProfileURL())
}

func TestFFLogsService_NullPercentileFilteringPreservesOrder(t *testing.T) {
	response := `{
		"data": {"characterData": {"character": {
			"name": "Yuriko Mh",
			"savage": {"rankings": [
				{"encounter": {"id": 1, "name": "First"}, "rankPercent": 10.0, "totalKills": 1},
				{"encounter": {"id": 2, "name": "Skipped"}, "rankPercent": null},
				{"encounter": {"id": 3, "name": "Second"}, "rankPercent": 20.0, "totalKills": 2},
				{"encounter": {"id": 4, "name": "AlsoSkipped"}, "rankPercent": null},
				{"encounter": {"id": 5, "name": "Third"}, "rankPercent": 30.0, "totalKills": 3}
			]}
		}}}
	}`

	service, cleanup := newFFLogsService(t, response)
	defer cleanup()

	rankings, err := service.CharacterRankings(context.Background())
	require.NoError(t, err)

	require.Len(t, rankings.Savage.Encounters, 3)
	assert.Equal(t, "First", rankings.Savage.Encounters[0].EncounterName)
	assert.Equal(t, "Second", rankings.Savage.Encounters[1].EncounterName)
	assert.Equal(t, "Third", rankings.Savage.Encounters[2].EncounterName)
}

func TestFFLogsService_GraphQLErrorSurfaced(t *testing.T) {
	response := `{"errors": [{"message": "You do not have permission to view this character."}]}`

	service, cleanup := newFFLogsService(t, response)
	defer cleanup()

	_, err := service.CharacterRankings(context.Background())
	var gqlErr *GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, "You do not have permission to view this character.", gqlErr.Message)
}

func TestFFLogsService_CharacterNotFound(t *testing.T) {
	response := `{"data": {"characterData": {"character": null}}}`

	service, cleanup := newFFLogsService(t, response)
	defer cleanup()

	_, err := service.CharacterRankings(context.Background())
	var notFound *oauth.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Character not found on FFLogs", notFound.Message)
}

func TestFFLogsService_NotConfigured(t *testing.T) {
	client := oauth.NewClient(NewFFLogsProvider(oauth.NewCredential("", "")))
	service := NewFFLogsService(client, 1)

	assert.False(t, service.Configured())

	_, err := service.CharacterRankings(context.Background())
	assert.ErrorIs(t, err, oauth.ErrNotConfigured)
}

func TestReshapeRankings_Idempotent(t *testing.T) {
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"bestPerformanceAverage": 50.0,
		"rankings": [
			{"encounter": {"id": 7, "name": "Boss"}, "rankPercent": 55.5, "medianPercent": 50.0, "totalKills": 2, "spec": "Sage"},
			{"encounter": {"id": 8, "name": "Other"}, "rankPercent": null}
		]
	}`), &raw))

	first := reshapeRankings(raw, "Savage", fflogsBossIconURL, true)
	second := reshapeRankings(raw, "Savage", fflogsBossIconURL, true)

	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}
