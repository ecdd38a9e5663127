package config

import "time"

// CurrentSeason returns the season in play at now. A season is labelled by
// the year it starts in and becomes current in May, so January through
// April still belong to the previous year's season.
func CurrentSeason(now time.Time) int {
	if now.Month() < SeasonRolloverMonth {
		return now.Year() - 1
	}
	return now.Year()
}

// DefaultSeasons lists first through the current season, oldest first.
func DefaultSeasons(first int, now time.Time) []int {
	current := CurrentSeason(now)
	if first > current {
		return nil
	}
	seasons := make([]int, 0, current-first+1)
	for s := first; s <= current; s++ {
		seasons = append(seasons, s)
	}
	return seasons
}

// SeasonsAt returns the configured seasons, or the default range ending at
// the season current at now.
func (p PipelineConfig) SeasonsAt(now time.Time) []int {
	if len(p.Seasons) > 0 {
		out := make([]int, len(p.Seasons))
		copy(out, p.Seasons)
		return out
	}
	return DefaultSeasons(p.FirstSeason, now)
}
