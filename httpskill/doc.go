// Package httpskill adapts an HTTP skill endpoint to harness.Handler.
//
// The adapter POSTs each request envelope as JSON and decodes the
// response envelope, which is how the skilltest CLI exercises deployed
// skill backends.
package httpskill
