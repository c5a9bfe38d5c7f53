// Package app wires the application together: configuration, logging,
// telemetry, the dataset store, the services layer, and the HTTP
// server with graceful shutdown.
package app
