// Package catalog loads the default list setup of every console page.
package catalog

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Hazembel/mamaty-dashboard-sub000/internal/config"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/domain"
	"github.com/Hazembel/mamaty-dashboard-sub000/internal/listview"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the catalog entries by entity name.
type Registry struct {
	entities map[string]*Entity
	mu       sync.RWMutex
}

// NewRegistry loads the embedded catalog.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/views.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read views catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal views catalog: %w", err)
	}

	r := &Registry{entities: make(map[string]*Entity, len(file.Entities))}
	for name, entity := range file.Entities {
		if entity == nil {
			return nil, fmt.Errorf("entity %s: empty definition", name)
		}
		entity.Name = name
		if entity.Resource == "" {
			entity.Resource = name
		}
		if entity.PageSize == 0 {
			entity.PageSize = config.DefaultPageSize
		}
		if entity.Tab == "" {
			entity.Tab = listview.AllValue
		}
		if err := entity.check(); err != nil {
			return nil, fmt.Errorf("entity %s: %w", name, err)
		}
		r.entities[name] = entity
	}
	return r, nil
}

func (e *Entity) check() error {
	if e.PageSize < config.MinPageSize || e.PageSize > config.MaxPageSize {
		return fmt.Errorf("page_size %d outside [%d, %d]", e.PageSize, config.MinPageSize, config.MaxPageSize)
	}
	if e.Sort == "" {
		return fmt.Errorf("missing default sort")
	}
	if !listview.IsAll(e.Tab) && !e.HasTab(e.Tab) {
		return fmt.Errorf("default tab %q is not one of %v", e.Tab, e.Tabs)
	}
	return nil
}

// Get returns an entity by name.
func (r *Registry) Get(name string) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.entities[name]
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("unknown entity: %s", name)}
	}
	return entity, nil
}

// Names returns every entity name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
