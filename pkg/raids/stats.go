package raids

import "math"

// Stats summarizes the raid log for the front-end header cards.
type Stats struct {
	TotalRaids      int `json:"totalRaids"`
	SurvivalRate    int `json:"survivalRate"` // percentage, rounded
	TotalValue      int `json:"totalValue"`
	AvgValuePerRaid int `json:"avgValuePerRaid"`
}

// CalculateStats derives summary stats from a raid list. Both surviving and
// extracting count toward the survival rate.
func CalculateStats(raids []*Raid) Stats {
	if len(raids) == 0 {
		return Stats{}
	}

	madeItOut := 0
	totalValue := 0
	for _, raid := range raids {
		if raid.Status == StatusSurvived || raid.Status == StatusExtract {
			madeItOut++
		}
		totalValue += raid.TotalValue
	}

	return Stats{
		TotalRaids:      len(raids),
		SurvivalRate:    int(math.Round(float64(madeItOut) / float64(len(raids)) * 100)),
		TotalValue:      totalValue,
		AvgValuePerRaid: int(math.Round(float64(totalValue) / float64(len(raids)))),
	}
}
