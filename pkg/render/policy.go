package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/blocksnap/pkg/blocks"
	"github.com/matzehuels/blocksnap/pkg/errors"
)

// Mode is the kind of preview shown for a candidate connection.
type Mode int

const (
	// InsertionMarker connects a translucent clone of the dragged block.
	InsertionMarker Mode = iota
	// InputOutline outlines the candidate input.
	InputOutline
	// ReplacementFade fades the block the drop would displace.
	ReplacementFade
)

func (m Mode) String() string {
	switch m {
	case InsertionMarker:
		return "insertion-marker"
	case InputOutline:
		return "input-outline"
	case ReplacementFade:
		return "replacement-fade"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Policy chooses previews. closest is the stationary candidate connection,
// local the dragged one, and top the root of the dragged stack.
type Policy interface {
	PreviewMode(closest, local *blocks.Connection, top blocks.Block) Mode
	ShouldHighlight(closest *blocks.Connection) bool
}

// Classic shows insertion markers. When the drop would displace a block
// that cannot be reattached below the dragged stack, it fades that block
// instead.
type Classic struct{}

func (Classic) PreviewMode(closest, local *blocks.Connection, top blocks.Block) Mode {
	if local.Type() != blocks.OutputValue && local.Type() != blocks.PreviousStatement {
		return InsertionMarker
	}
	if !closest.IsConnected() || orphanCanConnectAtEnd(top, closest.TargetBlock(), local.Type()) {
		return InsertionMarker
	}
	return ReplacementFade
}

func (Classic) ShouldHighlight(*blocks.Connection) bool { return true }

// Zelos outlines empty value inputs and fades occupied ones. Statement
// connections behave as in [Classic]. Value connections are never
// highlighted.
type Zelos struct{}

func (Zelos) PreviewMode(closest, local *blocks.Connection, top blocks.Block) Mode {
	if local.Type() == blocks.OutputValue {
		if !closest.IsConnected() {
			return InputOutline
		}
		return ReplacementFade
	}
	return Classic{}.PreviewMode(closest, local, top)
}

func (Zelos) ShouldHighlight(c *blocks.Connection) bool {
	return c.Type() != blocks.InputValue && c.Type() != blocks.OutputValue
}

func orphanCanConnectAtEnd(top, orphan blocks.Block, localType blocks.ConnType) bool {
	var conn *blocks.Connection
	if localType == blocks.OutputValue {
		conn = orphan.OutputConnection()
	} else {
		conn = orphan.PreviousConnection()
	}
	if conn == nil {
		return false
	}
	return top.Workspace().OrphanTarget(top, conn) != nil
}

// Names of the built-in policies.
const (
	PolicyClassic = "classic"
	PolicyZelos   = "zelos"
)

var policies = map[string]Policy{
	PolicyClassic: Classic{},
	PolicyZelos:   Zelos{},
}

// Lookup returns the built-in policy with the given name.
func Lookup(name string) (Policy, error) {
	if p, ok := policies[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"unknown renderer %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names returns the built-in policy names, sorted.
func Names() []string {
	names := make([]string, 0, len(policies))
	for n := range policies {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
