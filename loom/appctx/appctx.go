// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package appctx

import (
	"sync"
)

// A Key type is used as a key for storing values in the application context.
type Key int

const (
	// AppCtxFirstFatalErrorKey is used to store the first unrecoverable error
	// kind encountered, considered to be the root cause of an executor failure.
	AppCtxFirstFatalErrorKey Key = iota

	// AppCtxStateGetterKey is used to store a reference to the executor's
	// internal state getter, consumed by the inspect API.
	AppCtxStateGetterKey

	// AppCtxShutdownFuncKey is used to store the executor's close function,
	// consumed by the inspect API shutdown endpoint.
	AppCtxShutdownFuncKey
)

// ApplicationContext is an executor-scoped context. It carries state shared
// between the scheduling core, the carrier watchdog and the inspect API
// without threading it through every constructor.
type ApplicationContext interface {
	Store(key Key, value interface{})
	Load(key Key) (value interface{}, ok bool)
	Delete(key Key)
	GetOrDefault(key Key, defaultValue interface{}) interface{}
	StoreIfNotExists(key Key, value interface{}) interface{}
}

type applicationContext struct {
	mux *sync.Mutex
	m   map[Key]interface{}
}

func (appCtx *applicationContext) Store(key Key, value interface{}) {
	appCtx.mux.Lock()
	defer appCtx.mux.Unlock()
	appCtx.m[key] = value
}

func (appCtx *applicationContext) StoreIfNotExists(key Key, value interface{}) interface{} {
	appCtx.mux.Lock()
	defer appCtx.mux.Unlock()
	existing, found := appCtx.m[key]
	if found {
		return existing
	}
	appCtx.m[key] = value
	return nil
}

func (appCtx *applicationContext) Load(key Key) (value interface{}, ok bool) {
	appCtx.mux.Lock()
	defer appCtx.mux.Unlock()
	value, ok = appCtx.m[key]
	return
}

func (appCtx *applicationContext) Delete(key Key) {
	appCtx.mux.Lock()
	defer appCtx.mux.Unlock()
	delete(appCtx.m, key)
}

func (appCtx *applicationContext) GetOrDefault(key Key, defaultValue interface{}) interface{} {
	if value, ok := appCtx.Load(key); ok {
		return value
	}
	return defaultValue
}

// NewApplicationContext returns a new instance of application context.
func NewApplicationContext() ApplicationContext {
	return &applicationContext{
		mux: &sync.Mutex{},
		m:   make(map[Key]interface{}),
	}
}
