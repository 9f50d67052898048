// Package api embeds the OpenAPI document for the trip planner API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary keeps the published contract and the running
// code in the same build.
//
//go:embed openapi.yaml
var OpenAPI []byte
