// Package services holds the application layer between the HTTP handlers
// and the pipeline packages.
//
// FeatureService is the single entry point for consumers of the feature
// tables. LoadFeatureStore fetches every requested season of game features
// in order, runs the dataprocessing pipeline over them, collects the player
// projections and caches the combined result per season list. Game fetch
// failures abort the load; player fetch failures are recorded on the result
// and skipped.
//
// The query methods (Games, Teams, Players, Game, SeasonOptions) filter the
// cached tables of the default season window.
//
// HealthService reports liveness, readiness and build information.
package services
