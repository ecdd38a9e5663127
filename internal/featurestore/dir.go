package featurestore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"edgestats/internal/errors"
	"edgestats/pkg/contracts/domain"
)

// DirProvider reads season tables from a local directory laid out as
// games/{season}.csv and players/{season}.csv.
type DirProvider struct {
	root string
}

// NewDirProvider creates a provider rooted at dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{root: dir}
}

func (d *DirProvider) open(kind Kind, season int) (*os.File, error) {
	path := filepath.Join(d.root, filepath.FromSlash(SeasonFile(kind, season)))
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("open %s season %d", kind, season), err).
			WithContext("path", path)
	}
	return f, nil
}

// FetchGameFeatures implements Provider.
func (d *DirProvider) FetchGameFeatures(ctx context.Context, season int) ([]domain.GameRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := d.open(KindGames, season)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	games, err := DecodeGames(f)
	if err != nil {
		return nil, fmt.Errorf("season %d: %w", season, err)
	}
	return games, nil
}

// FetchPlayerProjections implements Provider.
func (d *DirProvider) FetchPlayerProjections(ctx context.Context, season int, group domain.PositionGroup) ([]domain.PlayerWeekRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := d.open(KindPlayers, season)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	players, err := DecodePlayers(f, group)
	if err != nil {
		return nil, fmt.Errorf("season %d group %s: %w", season, group, err)
	}
	return players, nil
}

// WriteGames stores a season of games in the directory layout, so a later
// DirProvider can serve them.
func (d *DirProvider) WriteGames(season int, games []domain.GameRow) (string, error) {
	var buf bytes.Buffer
	if err := EncodeGames(&buf, games); err != nil {
		return "", err
	}
	return d.write(KindGames, season, buf.Bytes())
}

// WritePlayers stores a season of player rows, all groups in one table.
// It replaces whatever the season file held.
func (d *DirProvider) WritePlayers(season int, players []domain.PlayerWeekRow) (string, error) {
	var buf bytes.Buffer
	if err := EncodePlayers(&buf, players); err != nil {
		return "", err
	}
	return d.write(KindPlayers, season, buf.Bytes())
}

func (d *DirProvider) write(kind Kind, season int, data []byte) (string, error) {
	path := filepath.Join(d.root, filepath.FromSlash(SeasonFile(kind, season)))
	if err := writeFileAtomic(path, data); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("write mirrored %s season %d", kind, season), err).
			WithContext("path", path)
	}
	return path, nil
}
