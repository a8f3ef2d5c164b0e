package connector

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/erp/paymentrouter/internal/domain/payments"
)

// Registry maps a connector name to the Connector value implementing it.
// Capability lookup is a type assertion against the stored value, not a
// separate capability table: a connector's capability set is exactly the
// set of capability interfaces its concrete type implements, fixed at
// compile time. A connector with no implementation for a requested
// capability fails NotImplemented at lookup time, before any request is
// built.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]Connector
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{connectors: make(map[string]Connector)}
}

// Register adds a connector under its own Info().Name. Registering the
// same name twice replaces the previous entry.
func (r *Registry) Register(c Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[c.Info().Name] = c
}

// Get returns the connector registered under name, or
// ErrCodeInvalidConnectorName if none is registered.
func (r *Registry) Get(name string) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.connectors[name]
	if !ok {
		return nil, &payments.ConnectorError{
			Code:    payments.ErrCodeInvalidConnectorName,
			Message: fmt.Sprintf("no connector registered under name %q", name),
		}
	}
	return c, nil
}

// Capability looks up the connector registered under name and type-asserts
// it to the capability interface T, returning NotImplemented if the
// connector does not implement it. Call sites use this as:
//
//	auth, err := connector.Capability[connector.Authorizer](registry, "stripe")
func Capability[T any](r *Registry, name string) (T, error) {
	var zero T
	c, err := r.Get(name)
	if err != nil {
		return zero, err
	}
	capable, ok := any(c).(T)
	if !ok {
		// %T of a nil interface value prints "<nil>", so the capability
		// name is taken from a typed nil pointer to T instead.
		return zero, payments.NotImplemented(name, reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return capable, nil
}
