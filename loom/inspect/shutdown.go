// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
)

const shutdownUnavailableErrorType = "Shutdown.NotAvailable"
const shutdownFailedErrorType = "Shutdown.Failed"

type shutdownHandler struct{}

func (h *shutdownHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	appCtx := appctx.FromRequest(request)
	shutdown := appctx.LoadShutdownFunc(appCtx)
	if shutdown == nil {
		render.Status(request, http.StatusInternalServerError)
		render.JSON(writer, request, &ErrorResponse{
			ErrorType:    shutdownUnavailableErrorType,
			ErrorMessage: "shutdown function not set",
		})
		return
	}

	log.Info("Shutdown requested via inspect API")
	if err := shutdown(); err != nil {
		render.Status(request, http.StatusConflict)
		render.JSON(writer, request, &ErrorResponse{
			ErrorType:    shutdownFailedErrorType,
			ErrorMessage: err.Error(),
		})
		return
	}

	render.JSON(writer, request, &StatusResponse{Status: "closed"})
}

// NewShutdownHandler returns a new instance of http handler
// for serving /shutdown.
func NewShutdownHandler() http.Handler {
	return &shutdownHandler{}
}
