// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/utils"
	"github.com/go-chi/chi/v5"
)

const routeNotFoundMessage = "Route not found"

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 whenever a path matches a registered route but the method
// does not. This handler answers 404 with the regular failure envelope
// instead, so that callers cannot probe which paths exist. Should the method
// match after all (chi reports 405 for some wildcard overlaps), the request
// is forwarded to the router.
//
// The lookup uses [chi.Mux.Match], which descends into mounted sub-routers
// and resolves URL parameters.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			notFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

// notFound answers unknown routes with the failure envelope.
func notFound(w http.ResponseWriter, _ *http.Request) {
	_ = utils.WriteError(w, http.StatusNotFound, routeNotFoundMessage)
}
