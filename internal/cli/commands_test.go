package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/template"
)

const editorJSON = `{
  "split": "horiz",
  "ratio": [1, 3],
  "children": [
    {"id": "files", "template": "tree", "gravity": "left"},
    {"id": "editor", "template": "code", "gravity": "main"}
  ]
}`

// isolate points the config and data directories at fresh temp dirs so
// commands use an empty file store.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

// run executes the root command with args, feeding stdin and capturing
// stdout and stderr together.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.stdin = strings.NewReader(stdin)

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func parse(t *testing.T, out string) *layout.Root {
	t.Helper()
	root, err := template.Read(strings.NewReader(out), template.FormatJSON)
	if err != nil {
		t.Fatalf("output is not a template: %v\n%s", err, out)
	}
	return root
}

func TestShow(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"show"}, []string{"root", "horiz", "files", "editor", "25%", "75%", "2 leaves"}},
		{[]string{"show", "--as", "expr"}, []string{"root(horiz(left:leaf(files), main:leaf(editor)))"}},
		{[]string{"show", "--as", "shape"}, []string{"root(horiz(leaf, leaf))"}},
		{[]string{"show", "--as", "toml"}, []string{`split = "horiz"`, `id = "files"`}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, editorJSON, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	if _, err := run(t, editorJSON, "show", "--as", "yaml"); err == nil {
		t.Error("unknown --as should fail")
	}
}

func TestSimplifyCommand(t *testing.T) {
	isolate(t)
	messy := `{"split": "vert", "children": [
	  {"split": "vert", "ratio": [1, 1], "children": [
	    {"id": "a", "template": "t"},
	    {"id": "b", "template": "t"}
	  ]},
	  {"split": "tab", "children": [{"id": "c", "template": "t"}]}
	]}`
	out, err := run(t, messy, "simplify")
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if got, want := layout.Format(parse(t, out)), "root(vert(leaf(a), leaf(b), leaf(c)))"; got != want {
		t.Errorf("simplified = %s, want %s", got, want)
	}
}

func TestPlaceCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, editorJSON, "place", "--id", "t1", "--template", "terminal", "--gravity", "bottom")
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	want := "root(horiz(left:leaf(files), vert(main:leaf(editor), bottom:leaf(t1))))"
	if got := layout.Format(parse(t, out)); got != want {
		t.Errorf("placed = %s, want %s", got, want)
	}

	out, err = run(t, editorJSON, "place", "--template", "terminal", "--gravity", "left", "--extra", `{"cwd":"/tmp"}`)
	if err != nil {
		t.Fatalf("place with generated id: %v", err)
	}
	root := parse(t, out)
	if n := len(root.Leaves()); n != 3 {
		t.Errorf("leaves = %d, want 3", n)
	}
	id, ok := root.FindChildByGravity(layout.GravityLeft)
	if !ok || id.Child().Kind() != layout.KindTabbed {
		t.Errorf("left slot should become a tab stack: %s", layout.Format(root))
	}

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"no anchor", []string{"place", "--id", "x", "--template", "t"}, errs.ErrCodePlacement},
		{"duplicate id", []string{"place", "--id", "files", "--template", "t", "--gravity", "right"}, errs.ErrCodePlacement},
		{"bad gravity", []string{"place", "--id", "x", "--template", "t", "--gravity", "up"}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, editorJSON, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := run(t, editorJSON, "place", "--id", "x"); err == nil {
		t.Error("missing --template should fail")
	}
}

func TestValidateCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, editorJSON, "validate", "--strict")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Layout is valid") {
		t.Errorf("output = %q", out)
	}

	nested := `{"split": "vert", "children": [{"id": "a", "template": "t"}]}`
	if _, err := run(t, nested, "validate"); err != nil {
		t.Errorf("non-strict validate should pass: %v", err)
	}
	out, err = run(t, nested, "validate", "--strict")
	if err == nil {
		t.Fatal("strict validate of an unsimplified layout should fail")
	}
	if !strings.Contains(out, "root(leaf(a))") {
		t.Errorf("output should show the canonical form:\n%s", out)
	}

	if _, err := run(t, `{"id": "a"}`, "validate"); !errs.Is(err, errs.ErrCodeInvalidTemplate) {
		t.Errorf("leaf without template: err = %v", err)
	}
}

func TestStoreCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "store", "list")
	if err != nil || !strings.Contains(out, "No saved layouts") {
		t.Fatalf("empty list: %q, %v", out, err)
	}

	if _, err := run(t, editorJSON, "store", "put", "editor"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := run(t, "", "store", "put", "bad name"); !errs.Is(err, errs.ErrCodeInvalidName) {
		t.Errorf("invalid name: err = %v", err)
	}

	out, err = run(t, "", "store", "list")
	if err != nil || strings.TrimSpace(out) != "editor" {
		t.Errorf("list = %q, %v", out, err)
	}

	out, err = run(t, "", "store", "get", "editor")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := layout.Format(parse(t, out)); got != "root(horiz(left:leaf(files), main:leaf(editor)))" {
		t.Errorf("get = %s", got)
	}

	// Edit the stored layout in place, then read it back by name.
	if _, err := run(t, "", "place", "@editor", "--id", "t1", "--template", "terminal", "--gravity", "bottom", "-o", "@"); err != nil {
		t.Fatalf("place -o @: %v", err)
	}
	out, err = run(t, "", "show", "@editor", "--as", "expr")
	if err != nil || !strings.Contains(out, "bottom:leaf(t1)") {
		t.Errorf("stored layout after place = %q, %v", out, err)
	}

	if _, err := run(t, "", "store", "delete", "editor"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := run(t, "", "store", "get", "editor"); !errs.Is(err, errs.ErrCodeLayoutNotFound) {
		t.Errorf("get after delete: err = %v", err)
	}

	out, err = run(t, "", "store", "info")
	if err != nil || !strings.Contains(out, "file") {
		t.Errorf("info = %q, %v", out, err)
	}
}

func TestOutputAtNeedsStoredInput(t *testing.T) {
	isolate(t)
	if _, err := run(t, editorJSON, "simplify", "-o", "@"); err == nil {
		t.Error("-o @ with stdin input should fail")
	}
}

func TestDotCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, editorJSON, "dot", "--detailed")
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	for _, w := range []string{"digraph layout {", "gravity: left", `label="75%"`} {
		if !strings.Contains(out, w) {
			t.Errorf("dot output missing %q:\n%s", w, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Errorf("bash completion does not mention %s", appName)
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[store]\nbackend = \"memory\"\n")
	out, err := run(t, "", "--config", path, "store", "info")
	if err != nil || !strings.Contains(out, "memory") {
		t.Errorf("info with memory config = %q, %v", out, err)
	}

	path = writeConfig(t, "[store]\nbackend = \"tape\"\n")
	if _, err := run(t, "", "--config", path, "store", "list"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("unknown backend: err = %v", err)
	}
}
