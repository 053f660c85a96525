package blocks

import (
	"fmt"
	"testing"

	"github.com/matzehuels/blocksnap/pkg/geom"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	ifShape := func(state ExtraState) []InputSpec {
		n := state.Int("elseif", 0)
		var specs []InputSpec
		for i := 0; i <= n; i++ {
			specs = append(specs,
				InputSpec{Name: fmt.Sprintf("IF%d", i), Kind: ValueInput, Check: []string{"Boolean"}},
				InputSpec{Name: fmt.Sprintf("DO%d", i), Kind: StatementInput})
		}
		return specs
	}
	r, err := NewRegistry(
		&Definition{Type: "stmt", Previous: true, Next: true, Height: 40},
		&Definition{Type: "end", Previous: true, Height: 40},
		&Definition{Type: "hat", Next: true, Height: 40},
		&Definition{Type: "value", Output: true, Width: 40, Height: 20},
		&Definition{Type: "bool", Output: true, OutputCheck: []string{"Boolean"}, Width: 40, Height: 20},
		&Definition{Type: "op", Output: true, Width: 60, Height: 40, StaticInputs: []InputSpec{
			{Name: "A", Kind: ValueInput},
		}},
		&Definition{Type: "print", Previous: true, Next: true, Height: 40, StaticInputs: []InputSpec{
			{Name: "VALUE", Kind: ValueInput, Fields: []FieldSpec{{Name: "LABEL", Value: "print"}}},
		}},
		&Definition{Type: "loop", Previous: true, Next: true, Height: 80, StaticInputs: []InputSpec{
			{Name: "DO", Kind: StatementInput},
		}},
		&Definition{Type: "if", Previous: true, Next: true, Shape: ifShape},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func testWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(Options{Registry: testRegistry(t)})
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	return ws
}

func mustBlock(t *testing.T, ws *Workspace, typ, id string, x, y float64) *DocumentBlock {
	t.Helper()
	b, err := ws.NewBlock(typ, BlockOptions{ID: id, Position: geom.Pt(x, y)})
	if err != nil {
		t.Fatalf("NewBlock(%s): %v", typ, err)
	}
	return b
}

func mustConnect(t *testing.T, ws *Workspace, a, b *Connection) {
	t.Helper()
	if err := ws.Connect(a, b); err != nil {
		t.Fatalf("Connect(%s, %s): %v", a, b, err)
	}
}
