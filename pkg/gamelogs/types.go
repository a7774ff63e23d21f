package gamelogs

// Encounter is one reshaped ranking entry. MedianPercent stays a pointer
// because the upstream value can be null even when the rank percentile is
// present.
type Encounter struct {
	EncounterName string   `json:"encounterName"`
	EncounterID   int      `json:"encounterId,omitempty"`
	IconURL       string   `json:"iconUrl,omitempty"`
	RankPercent   float64  `json:"rankPercent"`
	MedianPercent *float64 `json:"medianPercent"`
	TotalKills    int      `json:"totalKills"`
	Job           string   `json:"job,omitempty"`
	Spec          string   `json:"spec,omitempty"`
}

// DifficultyRankings holds the reshaped ranking set for one difficulty tier.
type DifficultyRankings struct {
	Difficulty         string      `json:"difficulty"`
	AveragePerformance *float64    `json:"averagePerformance"`
	Encounters         []Encounter `json:"encounters"`
}

// GraphQLError carries the first message of a GraphQL-level errors array.
// Its Error() string is surfaced to the browser verbatim.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return e.Message
}
