package render

import "errors"

var (
	// ErrNoActiveCamera means the active camera id is not registered.
	ErrNoActiveCamera = errors.New("render: no active camera")
	// ErrNoFallbackLight means a light slot needs a dead light that was never
	// registered.
	ErrNoFallbackLight = errors.New("render: fallback light not registered")
	// ErrWrongShadowType means a light was offered for a category its shadow
	// target does not belong to.
	ErrWrongShadowType = errors.New("render: wrong shadow type")
	// ErrMalformedLight means a light's view and projection matrices do not
	// match its shadow type.
	ErrMalformedLight = errors.New("render: malformed light")
	// ErrNoShader means an entity has no shader program to draw with.
	ErrNoShader = errors.New("render: no shader")
)
