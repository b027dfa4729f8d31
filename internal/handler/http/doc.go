// Package http implements the REST transport of the video platform.
//
// It wires the /api/v1 routes, decodes and validates requests, resolves the
// caller from the session cookie or bearer header, and writes every result
// through the shared {statusCode, data, message, success} envelope. Business
// rules live in the service layer; this package only maps their error kinds
// onto status codes.
package http
