// Package http provides the HTTP transport layer for the batting
// analytics API. Handlers bind filter selections from query
// parameters, delegate to the services layer, and render JSON with
// RFC 7807 problem details on failure.
package http
