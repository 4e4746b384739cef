// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"net/http"

	"github.com/go-chi/render"

	"go.loomlab.io/loom/appctx"
)

const stateUnavailableErrorType = "State.NotAvailable"

type stateHandler struct{}

func (h *stateHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	appCtx := appctx.FromRequest(request)
	getter := appctx.LoadStateGetter(appCtx)
	if getter == nil {
		render.Status(request, http.StatusInternalServerError)
		render.JSON(writer, request, &ErrorResponse{
			ErrorType:    stateUnavailableErrorType,
			ErrorMessage: "internal state getter not set",
		})
		return
	}

	state := getter()
	writer.Header().Set("Content-Type", "application/json")
	if _, err := writer.Write(state.AsJSON()); err != nil {
		http.Error(writer, "failed to write internal state", http.StatusInternalServerError)
	}
}

// NewStateHandler returns a new instance of http handler
// for serving /state.
func NewStateHandler() http.Handler {
	return &stateHandler{}
}
