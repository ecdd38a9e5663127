package services

import "errors"

var (
	// ErrNoSeasons is returned when a load is requested for an empty window.
	ErrNoSeasons = errors.New("no seasons requested")
	// ErrGameNotFound is returned when a game id is absent from the tables.
	ErrGameNotFound = errors.New("game not found")
	// ErrServiceUnavailable is returned when a dependency is not wired.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
