// Package httputil provides shared response helpers for the intake endpoint.
//
// Success, validation failure, server error, and preflight responses all go
// through these helpers and carry the same JSON envelope and CORS header set.
package httputil
