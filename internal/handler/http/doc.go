// Package http implements the REST transport of the tyre shop.
//
// It provides the chi router, route handlers, and request/response helpers.
// Authentication, access logging, request tracing, and response compression
// are handled at this layer before requests are forwarded to the service
// layer. Every response uses the JSON envelope written by the utils package.
package http
