package featurestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"edgestats/pkg/contracts/domain"
)

// Provider fetches raw season tables.
type Provider interface {
	// FetchGameFeatures returns every game of a season. Errors are fatal to
	// the game pipeline.
	FetchGameFeatures(ctx context.Context, season int) ([]domain.GameRow, error)
	// FetchPlayerProjections returns the weekly projections of one position
	// group for a season.
	FetchPlayerProjections(ctx context.Context, season int, group domain.PositionGroup) ([]domain.PlayerWeekRow, error)
}

// Kind names a raw table.
type Kind string

const (
	KindGames   Kind = "games"
	KindPlayers Kind = "players"
)

// SeasonPlaceholder is replaced by the season in URL templates.
const SeasonPlaceholder = "{season}"

// ExpandTemplate substitutes the season into a URL or path template.
func ExpandTemplate(template string, season int) (string, error) {
	if !strings.Contains(template, SeasonPlaceholder) {
		return "", fmt.Errorf("template %q has no %s placeholder", template, SeasonPlaceholder)
	}
	return strings.ReplaceAll(template, SeasonPlaceholder, strconv.Itoa(season)), nil
}

// SeasonFile is the relative path of a season table inside a data directory.
func SeasonFile(kind Kind, season int) string {
	return fmt.Sprintf("%s/%d.csv", kind, season)
}
