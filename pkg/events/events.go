// Package events is the structural-change history consumed by the drag
// engine.
//
// The undo/redo machinery itself lives outside blocksnap; this package only
// provides what the engine needs from it: a nesting-safe way to suppress
// emission, a way to emit structural changes, and grouping so that all events
// of one drag undo atomically.
//
// # Suppression
//
// Suppression is scoped. [Log.Suppress] returns a release function that must
// be deferred; the release is idempotent, so early returns and error paths
// can never leave history permanently disabled:
//
//	release := log.Suppress()
//	defer release()
//	// create, connect and disconnect insertion markers
//
// # Groups
//
// [Log.BeginGroup] opens a group identified by a random UUID. Events emitted
// while the group is open carry its ID.
package events

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/blocksnap/pkg/geom"
)

// Type identifies the kind of structural change.
type Type string

const (
	// TypeCreate is emitted when a document block is instantiated.
	TypeCreate Type = "create"
	// TypeDelete is emitted when a document block is disposed.
	TypeDelete Type = "delete"
	// TypeMove is emitted when a block changes parent or position. A drag
	// that ends in a connection produces exactly one move event for the
	// dragged block with NewParentID set.
	TypeMove Type = "move"
	// TypeDragOutside marks the start and end of a drag in the history UI.
	TypeDragOutside Type = "drag"
)

// Event is a single recorded structural change.
type Event struct {
	Type    Type   `json:"type"`
	BlockID string `json:"blockId"`
	Group   string `json:"group,omitempty"`

	OldParentID string     `json:"oldParentId,omitempty"`
	NewParentID string     `json:"newParentId,omitempty"`
	OldInput    string     `json:"oldInput,omitempty"`
	NewInput    string     `json:"newInput,omitempty"`
	OldPosition geom.Point `json:"oldPosition"`
	NewPosition geom.Point `json:"newPosition"`
}

// Listener receives every event that is actually recorded.
type Listener func(Event)

// Log records structural changes. The zero value is ready to use.
//
// Log is not safe for concurrent use; the drag engine is single threaded.
type Log struct {
	disabled  int
	group     string
	events    []Event
	listeners []Listener
}

// NewLog creates an empty, enabled log.
func NewLog() *Log { return &Log{} }

// Enabled reports whether emitted events are currently recorded.
func (l *Log) Enabled() bool { return l.disabled == 0 }

// Suppress disables recording until the returned release function is called.
// Calls nest: recording resumes only once every guard has been released.
// Calling a release function more than once has no further effect.
func (l *Log) Suppress() (release func()) {
	l.disabled++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.disabled--
	}
}

// Emit records e unless suppression is active. The current group, if any,
// is stamped onto the event. It reports whether the event was recorded.
func (l *Log) Emit(e Event) bool {
	if l.disabled > 0 {
		return false
	}
	if e.Group == "" {
		e.Group = l.group
	}
	l.events = append(l.events, e)
	for _, fn := range l.listeners {
		fn(e)
	}
	return true
}

// BeginGroup opens a new event group and returns its ID together with a
// function that closes it. Closing restores the previously open group, so
// groups may nest.
func (l *Log) BeginGroup() (id string, end func()) {
	prev := l.group
	id = uuid.NewString()
	l.group = id
	done := false
	return id, func() {
		if done {
			return
		}
		done = true
		l.group = prev
	}
}

// Group returns the ID of the currently open group, or "".
func (l *Log) Group() string { return l.group }

// Subscribe registers fn to be called for every recorded event.
func (l *Log) Subscribe(fn Listener) {
	if fn != nil {
		l.listeners = append(l.listeners, fn)
	}
}

// Events returns a copy of all recorded events in emission order.
func (l *Log) Events() []Event { return slices.Clone(l.events) }

// Len returns the number of recorded events.
func (l *Log) Len() int { return len(l.events) }

// Clear drops all recorded events. Suppression and group state are kept.
func (l *Log) Clear() { l.events = nil }

// ByGroup returns the recorded events that belong to group id.
func (l *Log) ByGroup(id string) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Group == id {
			out = append(out, e)
		}
	}
	return out
}
