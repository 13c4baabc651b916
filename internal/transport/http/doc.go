// Package http exposes the dashboard API over chi: the measures bundle,
// per-dimension aggregate tables and process health. Handlers render JSON
// through go-chi/render and translate application errors into API error
// payloads with appropriate status codes.
package http
