// Package api provides HTTP handlers for the matchsim service.
//
// @title Matchsim API
// @version 1.0
// @BasePath /v1
//
// @contact.name API Support
//
// @license.name MPL-2.0
// @license.url https://opensource.org/license/mpl-2-0
//
// @tag.name fixtures
// @tag.description Round-robin fixture generation
//
// @tag.name ladder
// @tag.description Competition standings
//
// @tag.name matches
// @tag.description Match simulation and results
//
// @tag.name health
// @tag.description Service health
package api

import "net/http"

// Registrar is anything that can add its endpoints to a mux.
type Registrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// ErrorResponse is the JSON body returned for any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON body GET /v1/health returns.
type HealthResponse struct {
	Status string `json:"status"`
}
