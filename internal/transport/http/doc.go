// Package http implements the HTTP handlers of the feature API.
//
// Handlers stay thin: they parse and validate query parameters, call the
// services layer and render the result. Errors are rendered as RFC 7807
// problem details through errors.ErrorHandler.
//
// Routes:
//
//	GET  /api/health, /api/health/live, /api/health/ready, /api/health/cache
//	GET  /api/version
//	GET  /api/features/seasons
//	GET  /api/features/games?season=&week=&team=&format=json|csv
//	GET  /api/features/games/{gameID}
//	GET  /api/features/teams?season=&week=&team=&format=json|csv
//	GET  /api/features/players?season=&week=&team=&position=&mode=weekly|season&format=json|csv
//	GET  /api/features/export.xlsx?mode=weekly|season
//	POST /api/features/refresh?seasons=2022,2023
//	GET  /metrics
package http
