package taxonomy

import (
	"strings"
)

// teamAliases maps provider abbreviations onto the feature store's.
var teamAliases = map[string]string{
	"WSH": "WAS",
	"JAC": "JAX",
	"LAR": "LA",
	"STL": "LA",
	"OAK": "LV",
	"LVR": "LV",
	"SD":  "LAC",
	"GNB": "GB",
	"KAN": "KC",
	"NOR": "NO",
	"NWE": "NE",
	"SFO": "SF",
	"TAM": "TB",
}

// NormalizeTeam returns the canonical abbreviation of a team.
func NormalizeTeam(team string) string {
	t := strings.ToUpper(strings.TrimSpace(team))
	if canonical, ok := teamAliases[t]; ok {
		return canonical
	}
	return t
}
