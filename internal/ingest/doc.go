// Package ingest pushes validated issue files to a remote corpus service.
//
// A [Client] wraps the service's batch API: canonical issue records are
// grouped into a batch with a generated ID and submitted in one request.
// Authentication failures are reported through [IsAuthError] so callers can
// map them to the right exit code.
package ingest
