package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[ModelType]Descriptor)
	registryMu sync.RWMutex
)

// Register adds a model descriptor to the registry.
// Panics if the model is unknown, already registered, or has no Build mapping.
func Register(d Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if d.Model <= 0 || d.Model >= modelTypeEnd {
		panic(fmt.Sprintf("register: unknown model type %d", int(d.Model)))
	}
	if _, exists := registry[d.Model]; exists {
		panic(fmt.Sprintf("model already registered: %s", d.Model))
	}
	if d.Build == nil {
		panic(fmt.Sprintf("model %s has no Build mapping", d.Model))
	}
	if d.Collection == "" {
		panic(fmt.Sprintf("model %s has no collection", d.Model))
	}

	registry[d.Model] = d
}

// Get returns a descriptor by model type.
// Returns false if not registered.
func Get(m ModelType) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	d, ok := registry[m]
	return d, ok
}

// Lookup resolves a model tag to its registered descriptor.
func Lookup(tag string) (Descriptor, error) {
	m, err := ParseModelType(tag)
	if err != nil {
		return Descriptor{}, err
	}
	d, ok := Get(m)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s is not registered", ErrUnknownModel, m)
	}
	return d, nil
}

// All returns every registered descriptor in model declaration order.
func All() []Descriptor {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		result = append(result, d)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Model < result[j].Model
	})

	return result
}

// ModelCount returns the number of registered models.
func ModelCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
