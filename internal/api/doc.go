// Package api holds the chi HTTP handlers of the service: request decoding
// and validation, the mapping from service errors to status codes, and
// response formatting. Handlers depend only on service interfaces.
package api
