package mapdata

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// MapRegistry holds every embedded map, ordered by ID.
type MapRegistry struct {
	maps []*MapDef
	byID map[string]*MapDef
}

// NewMapRegistry creates a registry from loaded map definitions.
func NewMapRegistry(maps []*MapDef) *MapRegistry {
	sorted := make([]*MapDef, len(maps))
	copy(sorted, maps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	registry := &MapRegistry{
		maps: sorted,
		byID: make(map[string]*MapDef, len(sorted)),
	}
	for _, m := range sorted {
		registry.byID[m.ID] = m
	}
	return registry
}

// LoadMapRegistry loads every maps/*.json file.
func LoadMapRegistry() (*MapRegistry, error) {
	entries, err := fs.ReadDir(dataFS, "maps")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded maps: %w", err)
	}

	maps := make([]*MapDef, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		def, err := LoadMap(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		maps = append(maps, def)
	}
	if len(maps) == 0 {
		return nil, errors.New("no maps found in maps/")
	}
	return NewMapRegistry(maps), nil
}

// MustLoadMapRegistry loads a registry, panicking on error.
func MustLoadMapRegistry() *MapRegistry {
	registry, err := LoadMapRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the map with the given ID, or nil if not found.
func (r *MapRegistry) GetByID(id string) *MapDef {
	return r.byID[id]
}

// Next returns the map after id, wrapping around. Unknown IDs yield the first map.
func (r *MapRegistry) Next(id string) *MapDef {
	if len(r.maps) == 0 {
		return nil
	}
	for i, m := range r.maps {
		if m.ID == id {
			return r.maps[(i+1)%len(r.maps)]
		}
	}
	return r.maps[0]
}

// IDs returns all map IDs in order.
func (r *MapRegistry) IDs() []string {
	ids := make([]string, len(r.maps))
	for i, m := range r.maps {
		ids[i] = m.ID
	}
	return ids
}

// Count returns the number of maps in the registry.
func (r *MapRegistry) Count() int {
	return len(r.maps)
}
