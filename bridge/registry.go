package bridge

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/logging"
	"go.uber.org/zap"
)

// Factory creates a fresh logic object for one Component.
type Factory func() LifecycleSink

// Registry maps script type names to factories so components can be created by name.
type Registry struct {
	factories map[string]Factory
	log       *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		log:       logging.OrNop(logger).Named("registry"),
	}
}

// Register registers the zero value of T under typeName.
func Register[T any, PT interface {
	*T
	LifecycleSink
}](r *Registry, typeName string) {
	r.RegisterFactory(typeName, func() LifecycleSink {
		return PT(new(T))
	})
}

// RegisterFactory registers f under typeName. Registering a name again replaces its
// factory, which is how reloaded scripts take effect; existing components keep the logic
// object they were built with.
func (r *Registry) RegisterFactory(typeName string, f Factory) {
	if _, ok := r.factories[typeName]; ok {
		r.log.Info("updating script type", zap.String("type", typeName))
	} else {
		r.log.Info("registering script type", zap.String("type", typeName))
	}
	r.factories[typeName] = f
}

// Unregister removes typeName and reports whether it was registered.
func (r *Registry) Unregister(typeName string) bool {
	if _, ok := r.factories[typeName]; !ok {
		return false
	}
	delete(r.factories, typeName)
	r.log.Info("unregistering script type", zap.String("type", typeName))
	return true
}

// Has reports whether typeName is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.factories[typeName]
	return ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate builds a logic object of the named type and constructs its Component.
func (r *Registry) Instantiate(native Native, typeName string, logger *zap.Logger) (*Component, error) {
	f, ok := r.factories[typeName]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScript, "instantiate %q", typeName)
	}
	return Construct(native, typeName, f(), logger)
}
