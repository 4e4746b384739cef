// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/core/statejson"
)

func TestPing(t *testing.T) {
	router := NewRouter(appctx.NewApplicationContext())

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "pong", responseRecorder.Body.String())
}

func TestStateWithoutGetter(t *testing.T) {
	router := NewRouter(appctx.NewApplicationContext())

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("GET", "/state", nil))

	assert.Equal(t, http.StatusInternalServerError, responseRecorder.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &errorResponse))
	assert.Equal(t, "State.NotAvailable", errorResponse.ErrorType)
}

func TestState(t *testing.T) {
	appCtx := appctx.NewApplicationContext()
	appctx.StoreStateGetter(appCtx, func() statejson.InternalStateDescription {
		return statejson.InternalStateDescription{
			Strands: []statejson.StrandDescription{
				{ID: "a-strand", State: statejson.StateDescription{Name: "Suspended", LastModified: 12345}},
			},
			CarrierPool: statejson.CarrierPoolDescription{Size: 4, Idle: 3, Replaced: 1},
			QueueDepth:  2,
		}
	})
	router := NewRouter(appCtx)

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("GET", "/state", nil))

	require.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "application/json", responseRecorder.Header().Get("Content-Type"))

	var state statejson.InternalStateDescription
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &state))
	require.Len(t, state.Strands, 1)
	assert.Equal(t, "a-strand", state.Strands[0].ID)
	assert.Equal(t, "Suspended", state.Strands[0].State.Name)
	assert.Equal(t, 4, state.CarrierPool.Size)
	assert.Equal(t, 3, state.CarrierPool.Idle)
	assert.Equal(t, 1, state.CarrierPool.Replaced)
	assert.Equal(t, 2, state.QueueDepth)
}

func TestShutdownWithoutCloser(t *testing.T) {
	router := NewRouter(appctx.NewApplicationContext())

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("POST", "/shutdown", nil))

	assert.Equal(t, http.StatusInternalServerError, responseRecorder.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &errorResponse))
	assert.Equal(t, "Shutdown.NotAvailable", errorResponse.ErrorType)
}

func TestShutdown(t *testing.T) {
	appCtx := appctx.NewApplicationContext()
	closed := false
	appctx.StoreShutdownFunc(appCtx, func() error {
		closed = true
		return nil
	})
	router := NewRouter(appCtx)

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("POST", "/shutdown", nil))

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.True(t, closed)

	var statusResponse StatusResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &statusResponse))
	assert.Equal(t, "closed", statusResponse.Status)
}

func TestShutdownTwice(t *testing.T) {
	appCtx := appctx.NewApplicationContext()
	appctx.StoreShutdownFunc(appCtx, func() error {
		return errors.New("ExecutorClosed")
	})
	router := NewRouter(appCtx)

	responseRecorder := httptest.NewRecorder()
	router.ServeHTTP(responseRecorder, httptest.NewRequest("POST", "/shutdown", nil))

	assert.Equal(t, http.StatusConflict, responseRecorder.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(responseRecorder.Body.Bytes(), &errorResponse))
	assert.Equal(t, "Shutdown.Failed", errorResponse.ErrorType)
}
