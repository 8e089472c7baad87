// Package kraken is a minimal REST client for the Kraken exchange API.
//
// It covers the two request styles the probe needs: plain GETs against
// /0/public endpoints and signed POSTs against /0/private endpoints.
// Whenever a call fails at the transport layer the error is returned;
// HTTP-level failures (non-2xx) are not errors here — the caller owns
// status interpretation.
//
// Credentials are an explicitly passed value, never ambient state, so
// callers can run authenticated and unauthenticated requests side by
// side and tests stay referentially transparent.
package kraken
