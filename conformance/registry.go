package conformance

import (
	"fmt"

	"github.com/gogpu/glslconf/shader"
)

// ShaderSource is a named shader registered with a Registry. Sources are
// immutable once registered.
type ShaderSource struct {
	ID    string
	Stage shader.Stage
	Text  string
}

// NotFoundError is returned by Resolve for an unregistered id.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("shader source %q is not registered", e.ID)
}

// Registry stores shader sources by id.
type Registry struct {
	sources []ShaderSource
	index   map[string]int
}

// NewRegistry creates an empty shader source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make([]ShaderSource, 0, 8),
		index:   make(map[string]int, 8),
	}
}

// Register stores a shader source under a unique id.
func (r *Registry) Register(id string, stage shader.Stage, text string) error {
	if id == "" {
		return fmt.Errorf("shader source id must not be empty")
	}
	if _, exists := r.index[id]; exists {
		return fmt.Errorf("shader source %q is already registered", id)
	}
	r.index[id] = len(r.sources)
	r.sources = append(r.sources, ShaderSource{ID: id, Stage: stage, Text: text})
	return nil
}

// Resolve returns the source registered under id, or a *NotFoundError.
func (r *Registry) Resolve(id string) (ShaderSource, error) {
	i, ok := r.index[id]
	if !ok {
		return ShaderSource{}, &NotFoundError{ID: id}
	}
	return r.sources[i], nil
}

// Count returns the number of registered sources.
func (r *Registry) Count() int {
	return len(r.sources)
}
