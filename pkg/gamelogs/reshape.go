package gamelogs

// Helpers for walking the dynamic GraphQL response maps. Every accessor
// tolerates missing keys and wrong types, since absent fields must never
// panic downstream.

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asInt(v interface{}) int {
	f, _ := v.(float64)
	return int(f)
}

// firstErrorMessage extracts errors[0].message from a GraphQL response, or
// "" when no errors are present.
func firstErrorMessage(result map[string]interface{}) string {
	errs := asSlice(result["errors"])
	if len(errs) == 0 {
		return ""
	}
	if msg := asString(asMap(errs[0])["message"]); msg != "" {
		return msg
	}
	return "GraphQL error"
}

// characterNode digs data.characterData.character out of a response. A nil
// return means the character does not exist upstream.
func characterNode(result map[string]interface{}) map[string]interface{} {
	data := asMap(result["data"])
	characterData := asMap(data["characterData"])
	return asMap(characterData["character"])
}

// reshapeRankings converts one zoneRankings object into the stable response
// shape. Encounters with a null rank percentile are unranked noise and are
// dropped, preserving the order of the rest. iconURL may be nil for
// providers without a deterministic icon template; makeEncounter decides
// whether the class goes into the job or spec field.
func reshapeRankings(raw interface{}, difficulty string, iconURL func(encounterID int) string, jobField bool) *DifficultyRankings {
	rankings := asMap(raw)
	if rankings == nil {
		return nil
	}

	out := &DifficultyRankings{
		Difficulty: difficulty,
		Encounters: []Encounter{},
	}
	if avg, ok := asFloat(rankings["bestPerformanceAverage"]); ok {
		out.AveragePerformance = &avg
	}

	for _, entry := range asSlice(rankings["rankings"]) {
		enc := asMap(entry)
		if enc == nil {
			continue
		}

		rankPercent, ok := asFloat(enc["rankPercent"])
		if !ok {
			continue
		}

		encounter := asMap(enc["encounter"])
		name := asString(encounter["name"])
		if name == "" {
			name = "Unknown"
		}

		e := Encounter{
			EncounterName: name,
			EncounterID:   asInt(encounter["id"]),
			RankPercent:   rankPercent,
			TotalKills:    asInt(enc["totalKills"]),
		}
		if median, ok := asFloat(enc["medianPercent"]); ok {
			e.MedianPercent = &median
		}
		if iconURL != nil && e.EncounterID != 0 {
			e.IconURL = iconURL(e.EncounterID)
		}
		if jobField {
			e.Job = asString(enc["spec"])
		} else {
			e.Spec = asString(enc["spec"])
		}

		out.Encounters = append(out.Encounters, e)
	}

	return out
}
