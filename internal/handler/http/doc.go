// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware for the site
// API: feedback intake, the email-verification and download endpoints
// navigated by the browser, telemetry, admin reporting, and authentication.
// Cross-cutting concerns such as request tracing, access logging, CORS, and
// panic recovery are handled in this layer before requests are forwarded to
// the service layer.
package http
