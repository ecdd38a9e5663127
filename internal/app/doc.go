// Package app wires configuration, logging, telemetry, the feature store
// provider, services and HTTP handlers into one Application.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config.yaml and EDGE_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Pick the feature store provider (local directory or HTTP)
//	4. Build the feature and health services
//	5. Set up middleware and routes
//
// Run serves until its context is canceled. The server, the optional cache
// warm-up and the shutdown watcher run in one errgroup. Initialization
// errors are returned to the caller; the package never calls os.Exit.
package app
