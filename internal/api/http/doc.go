// Package http provides the gin handlers of the solver API.
//
// Tool failures (a singular system, a parse error) are reported in the
// result body with status 200; only malformed requests get 400, unknown
// services 404 and canceled requests 503.
package http
