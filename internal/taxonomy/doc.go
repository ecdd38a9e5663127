// Package taxonomy declares every column the feature pipeline reads or
// writes.
//
// The event feature store publishes one wide row per game. Its columns fall
// into a small number of categories:
//
//   - META: identifiers carried everywhere (season, week, home_team, away_team)
//   - RATING: pre-game elo ratings (home_elo_pre, away_elo_pre)
//   - VEGAS: betting market columns
//   - TARGETS: observed outcomes, never shifted or adjusted
//   - RANKING: offensive and defensive ranks per side
//   - POINT_FEATURES: counting stats with produced (_offense) and allowed
//     (_defense) columns per side, eligible for expected averages
//   - SIMPLE_FEATURES: numeric passthrough columns per side
//
// Other packages look columns up here instead of spelling them out, so a
// schema change is made in one place. Referencing a column that is not
// declared is a programming error and fails loudly.
//
// The package also owns the rename map from internal names (elo_pre,
// actual_score, exavg_avg_*) to the stable public schema, and the player
// projection column sets for each position group.
package taxonomy
