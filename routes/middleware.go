/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"
	"time"

	"github.com/flamego/cors"
	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
)

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// FlashInjector exposes the pending flash message to templates
func FlashInjector() flamego.Handler {
	return func(flash session.Flash, data template.Data) {
		if msg, ok := flash.(FlashMessage); ok {
			data["Flash"] = msg
		}
	}
}

// NoCacheHeaders disables caching for all page responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}

// AllowCrossOrigin lets browser clients on any origin post to the JSON API.
// Preflight requests are answered by the middleware itself, but flamego only
// runs group middleware on a matched route, so an OPTIONS route must exist.
func AllowCrossOrigin() flamego.Handler {
	return cors.CORS(cors.Options{
		AllowDomain: []string{"*"},
		Methods:     []string{http.MethodPost, http.MethodOptions},
		MaxAge:      600 * time.Second,
	})
}

// Preflight is the OPTIONS route target behind AllowCrossOrigin. It only
// runs when the CORS middleware did not already answer.
func Preflight(c flamego.Context) {
	c.ResponseWriter().WriteHeader(http.StatusNoContent)
}
