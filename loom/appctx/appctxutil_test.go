// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package appctx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.loomlab.io/loom/core/statejson"
	"go.loomlab.io/loom/faults"
)

func TestStoreLoadDelete(t *testing.T) {
	appCtx := NewApplicationContext()

	_, found := appCtx.Load(AppCtxFirstFatalErrorKey)
	assert.False(t, found)

	appCtx.Store(AppCtxFirstFatalErrorKey, "value")
	value, found := appCtx.Load(AppCtxFirstFatalErrorKey)
	assert.True(t, found)
	assert.Equal(t, "value", value)

	appCtx.Delete(AppCtxFirstFatalErrorKey)
	_, found = appCtx.Load(AppCtxFirstFatalErrorKey)
	assert.False(t, found)
}

func TestGetOrDefault(t *testing.T) {
	appCtx := NewApplicationContext()
	assert.Equal(t, "fallback", appCtx.GetOrDefault(AppCtxFirstFatalErrorKey, "fallback"))

	appCtx.Store(AppCtxFirstFatalErrorKey, "stored")
	assert.Equal(t, "stored", appCtx.GetOrDefault(AppCtxFirstFatalErrorKey, "fallback"))
}

func TestStoreIfNotExists(t *testing.T) {
	appCtx := NewApplicationContext()
	assert.Nil(t, appCtx.StoreIfNotExists(AppCtxFirstFatalErrorKey, "first"))
	assert.Equal(t, "first", appCtx.StoreIfNotExists(AppCtxFirstFatalErrorKey, "second"))

	value, found := appCtx.Load(AppCtxFirstFatalErrorKey)
	assert.True(t, found)
	assert.Equal(t, "first", value)
}

func TestFirstFatalErrorIsStoredOnce(t *testing.T) {
	appCtx := NewApplicationContext()

	_, found := LoadFirstFatalError(appCtx)
	assert.False(t, found)

	StoreFirstFatalError(appCtx, faults.CarrierCrash)
	StoreFirstFatalError(appCtx, faults.SchedulerFault)

	errorType, found := LoadFirstFatalError(appCtx)
	require.True(t, found)
	assert.Equal(t, faults.CarrierCrash, errorType)
}

func TestStateGetterRoundTrip(t *testing.T) {
	appCtx := NewApplicationContext()
	assert.Nil(t, LoadStateGetter(appCtx))

	StoreStateGetter(appCtx, func() statejson.InternalStateDescription {
		return statejson.InternalStateDescription{QueueDepth: 9}
	})

	getter := LoadStateGetter(appCtx)
	require.NotNil(t, getter)
	assert.Equal(t, 9, getter().QueueDepth)
}

func TestRequestWithAppCtx(t *testing.T) {
	appCtx := NewApplicationContext()
	request, err := http.NewRequest("GET", "/state", nil)
	require.NoError(t, err)

	request = RequestWithAppCtx(request, appCtx)
	assert.Equal(t, appCtx, FromRequest(request))
}
