package domain

// baseRecommendations is the level-keyed action block, ordered highest
// priority first.
var baseRecommendations = map[Level][]string{
	LevelHigh: {
		"IMMEDIATE ACTION REQUIRED: implement your flood preparedness plan",
		"Monitor local authorities for evacuation orders",
		"Secure important documents and valuables on upper floors",
		"Prepare emergency supplies (water, food, first aid)",
		"Avoid unnecessary travel to affected areas",
	},
	LevelMedium: {
		"Stay informed about weather updates",
		"Review your emergency evacuation plan",
		"Clear drainage systems around the property",
		"Move vehicles to higher ground if possible",
		"Prepare sandbags if available",
	},
	LevelLow: {
		"Continue normal activities with weather awareness",
		"Maintain clear drainage systems",
		"Keep emergency contact numbers updated",
	},
}

// conditionalThreshold is the per-source score beyond which a follow-up note
// is appended.
const conditionalThreshold = 50

var conditionalRecommendations = map[Source]string{
	SourceSatellite:  "Increased water coverage detected from satellite imagery, expect elevated river and reservoir levels",
	SourceWeather:    "Heavy rainfall expected, monitor river levels",
	SourceTerrain:    "Low-lying area, consider temporary relocation of vehicles and equipment",
	SourceHistorical: "Area has a recurring flood history, review local flood maps",
}

// Recommendations builds the ordered action list: the level-keyed base block
// first, then one follow-up per source scoring above the conditional
// threshold, in fixed source order. Unavailable sources never trigger
// follow-ups.
func Recommendations(level Level, factors map[Source]Factor) []string {
	recs := append([]string(nil), baseRecommendations[level]...)
	for _, src := range SourceOrder {
		f, ok := factors[src]
		if !ok || f.Unavailable || f.Score <= conditionalThreshold {
			continue
		}
		recs = append(recs, conditionalRecommendations[src])
	}
	return recs
}
