package scenario

import (
	"strings"
	"testing"

	"github.com/matzehuels/blocksnap/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"dir/a.YML", FormatYAML, false},
		{"a.toml", FormatTOML, false},
		{"a.json", "", true},
		{"a", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

const stmtType = `
types:
  - {type: stmt, previous: true, next: true}
`

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no types", "blocks: []", "no block types"},
		{"unknown key", stmtType + "colour: red\n", "colour"},
		{"duplicate type", stmtType + "  - {type: stmt}\n", "declared twice"},
		{"bad input kind", "types:\n  - {type: x, inputs: [{name: A, kind: sideways}]}\n", "sideways"},
		{"repeat without key", "types:\n  - {type: x, repeat: {inputs: []}}\n", "needs a key"},
		{"block without id", stmtType + "blocks:\n  - {type: stmt}\n", "without an id"},
		{"undeclared type", stmtType + "blocks:\n  - {id: a, type: nope}\n", "undeclared type"},
		{"duplicate id", stmtType + "blocks:\n  - {id: a, type: stmt, next: {id: a, type: stmt}}\n", "used twice"},
		{"bad delete policy", stmtType + "areas:\n  - {id: t, delete: sometimes}\n", "delete must be"},
		{"unknown begin", stmtType + "steps:\n  - begin: ghost\n", "unknown block"},
		{"two actions", stmtType + "blocks:\n  - {id: a, type: stmt}\nsteps:\n  - {begin: a, end: true}\n", "exactly one"},
		{"short move", stmtType + "steps:\n  - move: [1]\n", "[dx, dy]"},
		{"unknown area", stmtType + "steps:\n  - {move: [1, 2], over: bin}\n", "unknown area"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.yaml), FormatYAML)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidScenario) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidScenario)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader(stmtType), Format("xml"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v", err)
	}
}

func TestReadTOMLRejectsUnknownKeys(t *testing.T) {
	src := "[[types]]\ntype = \"stmt\"\nwobble = true\n"
	_, err := Read(strings.NewReader(src), FormatTOML)
	if !errors.Is(err, errors.ErrCodeInvalidScenario) || !strings.Contains(err.Error(), "wobble") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad(t *testing.T) {
	f, err := Load("testdata/insert.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Name != "insert below" || len(f.Blocks) != 2 || len(f.Steps) != 4 {
		t.Errorf("unexpected file: %+v", f)
	}

	g, err := Load("testdata/trash.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Areas) != 2 || g.Areas[1].Delete != DeleteAlways || g.Steps[3].Over != "trash" {
		t.Errorf("unexpected file: %+v", g)
	}

	if _, err := Load("testdata/missing.yaml"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestStepAction(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Step{Begin: "b"}, "begin b"},
		{Step{Move: []float64{1, -2}}, "move (1, -2)"},
		{Step{Move: []float64{0, 5}, Over: "trash"}, "move (0, 5) over trash"},
		{Step{End: true}, "end"},
		{Step{Cancel: true}, "cancel"},
		{Step{}, "invalid"},
	}
	for _, tt := range tests {
		if got := tt.step.Action(); got != tt.want {
			t.Errorf("Action() = %q, want %q", got, tt.want)
		}
	}
}
