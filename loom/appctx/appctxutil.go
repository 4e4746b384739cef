// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package appctx

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/core/statejson"
	"go.loomlab.io/loom/faults"
)

// This file contains a set of utility methods for accessing application
// context and application context data.

// A ReqCtxKey type is used as a key for storing values in the request context.
type ReqCtxKey int

// ReqCtxApplicationContextKey is used for injecting application
// context object into request context.
const ReqCtxApplicationContextKey ReqCtxKey = iota

// FromRequest retrieves application context from the request context.
func FromRequest(request *http.Request) ApplicationContext {
	return request.Context().Value(ReqCtxApplicationContextKey).(ApplicationContext)
}

// RequestWithAppCtx places application context into request context.
func RequestWithAppCtx(request *http.Request, appCtx ApplicationContext) *http.Request {
	return request.WithContext(context.WithValue(request.Context(), ReqCtxApplicationContextKey, appCtx))
}

// StoreFirstFatalError stores an unrecoverable error kind in appctx once.
// This error is considered to be the root cause of an executor failure.
func StoreFirstFatalError(appCtx ApplicationContext, err faults.ErrorType) {
	if existing := appCtx.StoreIfNotExists(AppCtxFirstFatalErrorKey, err); existing != nil {
		log.Warnf("Omitting fatal error %s: %s already stored", err, existing.(faults.ErrorType))
		return
	}

	log.Warnf("First fatal error stored in appctx: %s", err)
}

// LoadFirstFatalError returns stored error if found
func LoadFirstFatalError(appCtx ApplicationContext) (errorType faults.ErrorType, found bool) {
	v, found := appCtx.Load(AppCtxFirstFatalErrorKey)
	if !found {
		return "", false
	}
	return v.(faults.ErrorType), true
}

// ShutdownFunc closes the executor, draining submitted tasks first.
type ShutdownFunc func() error

// StoreShutdownFunc stores the executor's close function.
func StoreShutdownFunc(appCtx ApplicationContext, shutdown ShutdownFunc) {
	appCtx.Store(AppCtxShutdownFuncKey, shutdown)
}

// LoadShutdownFunc retrieves the executor's close function.
func LoadShutdownFunc(appCtx ApplicationContext) ShutdownFunc {
	v, ok := appCtx.Load(AppCtxShutdownFuncKey)
	if ok {
		return v.(ShutdownFunc)
	}
	return nil
}

// StoreStateGetter stores a reference to the executor's internal state getter.
func StoreStateGetter(appCtx ApplicationContext, getter statejson.InternalStateGetter) {
	appCtx.Store(AppCtxStateGetterKey, getter)
}

// LoadStateGetter retrieves the executor's internal state getter.
func LoadStateGetter(appCtx ApplicationContext) statejson.InternalStateGetter {
	v, ok := appCtx.Load(AppCtxStateGetterKey)
	if ok {
		return v.(statejson.InternalStateGetter)
	}
	return nil
}
