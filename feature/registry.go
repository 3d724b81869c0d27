package feature

import (
	"fmt"
	"sync"
)

/*
Registry interns features by name, so that every component asking for a
feature with a given name gets the very same *Feature. Trees are grown and
tested against features obtained from the same Registry.

A Registry is safe for concurrent use.
*/
type Registry struct {
	lock     sync.RWMutex
	byName   map[string]*Feature
	features []*Feature
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Feature)}
}

/*
Intern takes a feature name and its two values and returns the feature
registered with that name. If none is registered yet, a new one is created
and registered. An error is returned if a feature with that name was
registered with different values.
*/
func (r *Registry) Intern(name, first, second string) (*Feature, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if f, ok := r.byName[name]; ok {
		if f.values != [2]string{first, second} {
			return nil, fmt.Errorf("feature %s already registered with values %v, got [%s %s]", name, f.Values(), first, second)
		}
		return f, nil
	}
	f := New(name, first, second)
	r.byName[name] = f
	r.features = append(r.features, f)
	return f, nil
}

// Lookup returns the feature registered with the given name, or nil.
func (r *Registry) Lookup(name string) *Feature {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.byName[name]
}

// Features returns the registered features in registration order.
func (r *Registry) Features() []*Feature {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]*Feature{}, r.features...)
}
