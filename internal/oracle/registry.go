package oracle

import (
	"sort"
	"sync"

	apperrors "github.com/agbru/djsim/internal/errors"
)

// Factory provides registration and lookup of oracle variants by name.
// It enables dependency injection in tests and a stable, sorted listing for
// reproducible "run all" behavior.
type Factory interface {
	// Register adds a variant under its Name. Registering the same name
	// twice replaces the previous variant.
	Register(v Variant)
	// Get returns the variant registered under name.
	Get(name string) (Variant, error)
	// List returns the sorted names of all registered variants.
	List() []string
	// GetAll returns all registered variants in List() order.
	GetAll() []Variant
}

// registry is the default Factory implementation, safe for concurrent use.
type registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewFactory creates an empty oracle factory.
func NewFactory() Factory {
	return &registry{variants: make(map[string]Variant)}
}

// NewDefaultFactory creates a factory pre-populated with the shipped
// variants: constant0, constant1, and the parity-balanced oracle.
func NewDefaultFactory() Factory {
	f := NewFactory()
	f.Register(Constant0{})
	f.Register(Constant1{})
	f.Register(Parity{})
	return f
}

// Register adds a variant under its Name.
func (r *registry) Register(v Variant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[v.Name()] = v
}

// Get returns the variant registered under name. An unknown name is a
// configuration error, reported as apperrors.ConfigError.
func (r *registry) Get(name string) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown oracle variant: %q", name)
	}
	return v, nil
}

// List returns the sorted names of all registered variants.
func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns all registered variants in List() order.
func (r *registry) GetAll() []Variant {
	names := r.List()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		out = append(out, r.variants[name])
	}
	return out
}

var (
	globalFactory     Factory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory, created on first
// use with the shipped variants registered.
func GlobalFactory() Factory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
