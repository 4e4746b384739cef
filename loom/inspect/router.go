// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"net/http"

	"github.com/go-chi/chi"

	"go.loomlab.io/loom/appctx"
)

// NewRouter returns a new instance of chi router implementing the inspect
// API: liveness and internal scheduler state for debugging.
func NewRouter(appCtx appctx.ApplicationContext) http.Handler {
	router := chi.NewRouter()
	router.Use(AppCtxMiddleware(appCtx))
	router.Use(AccessLogMiddleware())

	router.Get("/ping", NewPingHandler().ServeHTTP)
	router.Get("/state", NewStateHandler().ServeHTTP)
	router.Post("/shutdown", NewShutdownHandler().ServeHTTP)

	return router
}
