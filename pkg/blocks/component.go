package blocks

import (
	"maps"
	"slices"
	"sort"
)

// Capability is something a workspace component can do.
type Capability string

const (
	// CapDeleteArea marks components that delete blocks dropped on them,
	// such as the trash can or the toolbox.
	CapDeleteArea Capability = "delete_area"
	// CapDragTarget marks components that react to blocks dragged over them.
	CapDragTarget Capability = "drag_target"
)

// Component is a UI element registered with a workspace.
type Component interface {
	ID() string
}

// DeleteArea is a component that may delete a block dropped on it.
type DeleteArea interface {
	Component
	// WouldDelete reports whether dropping b now would delete it.
	// couldConnect tells whether b currently has a connection candidate.
	WouldDelete(b Block, couldConnect bool) bool
}

// ComponentManager is the registry of workspace components and their
// capabilities.
type ComponentManager struct {
	components map[string]Component
	caps       map[string]map[Capability]bool
}

// NewComponentManager returns an empty registry.
func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		components: make(map[string]Component),
		caps:       make(map[string]map[Capability]bool),
	}
}

// Add registers c with the given capabilities, replacing any component with
// the same id.
func (m *ComponentManager) Add(c Component, caps ...Capability) {
	m.components[c.ID()] = c
	set := make(map[Capability]bool, len(caps))
	for _, k := range caps {
		set[k] = true
	}
	m.caps[c.ID()] = set
}

// Remove unregisters the component with the given id.
func (m *ComponentManager) Remove(id string) {
	delete(m.components, id)
	delete(m.caps, id)
}

// Get returns the component with the given id, or nil.
func (m *ComponentManager) Get(id string) Component { return m.components[id] }

// HasCapability reports whether the component with the given id was
// registered with want.
func (m *ComponentManager) HasCapability(id string, want Capability) bool {
	return m.caps[id][want]
}

// IDs returns the ids of all components, sorted.
func (m *ComponentManager) IDs() []string {
	ids := slices.Collect(maps.Keys(m.components))
	sort.Strings(ids)
	return ids
}
