// Package bridge binds managed logic objects to native component handles. A Component
// registers four lifecycle entry points with the native side when it is constructed and
// translates the native engine's calls into LifecycleSink hooks, rejecting calls that
// arrive out of order or after the component was destroyed.
package bridge

import "github.com/plus3/tossbridge/engine"

// Native is the engine surface a Component binds to.
type Native interface {
	CreateNativeHandle(typeName string) (engine.Handle, error)
	CreateGameObject(name string) (engine.Handle, error)
	DestroyNativeHandle(h engine.Handle) error
	RegisterLifecycleCallbacks(h engine.Handle, cb engine.Callbacks) error
	AddChildComponent(parent engine.Handle, child engine.Handle) error
	// Alive reports whether h is still held by the native side.
	Alive(h engine.Handle) bool
}

var _ Native = (*engine.Engine)(nil)
