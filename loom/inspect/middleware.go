// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
)

// AppCtxMiddleware injects the executor's application context into the
// request context.
func AppCtxMiddleware(appCtx appctx.ApplicationContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, appctx.RequestWithAppCtx(r, appCtx))
		})
	}
}

// AccessLogMiddleware logs every inspect API request.
func AccessLogMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debugf("API request: %s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
