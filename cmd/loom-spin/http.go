// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/inspect"
)

func startHTTPServer(ipport string, appCtx appctx.ApplicationContext) {
	srv := &http.Server{
		Addr:    ipport,
		Handler: inspect.NewRouter(appCtx),
	}

	log.Infof("Inspect API listening on %s", ipport)
	if err := srv.ListenAndServe(); err != nil {
		log.Panic(err)
	}
}
