// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides a log-capturing slog handler and
// fixture builders for games and player projections. It depends only on
// the domain contracts so any package may use it from its tests.
package shared
