package domain

import (
	"time"
)

// FeatureTables is the result of one pipeline load.
type FeatureTables struct {
	Seasons        []int                `json:"seasons"`
	HomeAway       []HomeAwayRow        `json:"home_away"`
	Folded         []FoldedGameRow      `json:"folded"`
	Players        []PlayerWeekRow      `json:"players"`
	PlayerFailures []PlayerFetchFailure `json:"player_failures,omitempty"`
	DroppedGames   int                  `json:"dropped_games"`
	BuiltAt        time.Time            `json:"built_at"`
}

// Game returns the home/away row with the given id.
func (t *FeatureTables) Game(gameID string) (HomeAwayRow, bool) {
	for _, row := range t.HomeAway {
		if row.GameID == gameID {
			return row, true
		}
	}
	return HomeAwayRow{}, false
}
