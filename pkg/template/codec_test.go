package template

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

func TestCodecRoundTrip(t *testing.T) {
	root, err := Load(workspace())
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(root, &buf, format); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !layout.Equal(got, root) {
				t.Errorf("round trip\ngot:  %s\nwant: %s", layout.Format(got), layout.Format(root))
			}
		})
	}
}

func TestCodecEmpty(t *testing.T) {
	empty := layout.NewRoot(nil)
	for _, format := range []Format{FormatJSON, FormatTOML} {
		var buf bytes.Buffer
		if err := Write(empty, &buf, format); err != nil {
			t.Fatalf("%s: Write: %v", format, err)
		}
		got, err := Read(&buf, format)
		if err != nil {
			t.Fatalf("%s: Read: %v", format, err)
		}
		if !got.IsEmpty() {
			t.Errorf("%s: got %s", format, layout.Format(got))
		}
	}
}

func TestReadJSONFieldNames(t *testing.T) {
	input := `{
	  "split": "horiz",
	  "ratio": [1, 2],
	  "gravity": "main",
	  "children": [
	    {"id": "a", "template": "editor", "extra": {"path": "a.go"}, "group": "code"},
	    {"split": "tab", "currentTab": 1, "children": [
	      {"id": "b", "template": "t"},
	      {"id": "c", "template": "t"}
	    ]}
	  ]
	}`
	root, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := "root(main:horiz(@code:leaf(a), tabs#1(leaf(b), leaf(c))))"
	if got := layout.Format(root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	l := root.Leaves()[0]
	if l.Extra().(map[string]any)["path"] != "a.go" {
		t.Errorf("extra = %v", l.Extra())
	}
}

func TestReadRejectsUnknownFields(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"id": "a", "template": "t", "colour": "red"}`))
	if !errs.Is(err, errs.ErrCodeInvalidTemplate) {
		t.Errorf("json: err = %v", err)
	}

	_, err = ReadTOML(strings.NewReader("id = \"a\"\ntemplate = \"t\"\ncolour = \"red\"\n"))
	if !errs.Is(err, errs.ErrCodeInvalidTemplate) || !strings.Contains(err.Error(), "colour") {
		t.Errorf("toml: err = %v", err)
	}
}

func TestReadTOMLExtraTable(t *testing.T) {
	input := `
split = "vert"

[[children]]
id = "a"
template = "editor"
gravity = "header"

[children.extra]
path = "a.go"

[[children]]
id = "b"
template = "editor"
`
	root, err := ReadTOML(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if got := layout.Format(root); got != "root(vert(header:leaf(a), leaf(b)))" {
		t.Errorf("got %s", got)
	}
	if extra, _ := root.Leaves()[0].Extra().(map[string]any); extra["path"] != "a.go" {
		t.Errorf("extra = %v", root.Leaves()[0].Extra())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"layout.json", FormatJSON, false},
		{"dir/Layout.TOML", FormatTOML, false},
		{"layout.yaml", "", true},
		{"layout", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("code = %s", errs.GetCode(err))
		}
	}
}

func TestImportExportFile(t *testing.T) {
	root, err := Load(workspace())
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	for _, name := range []string{"layout.json", "layout.toml"} {
		path := filepath.Join(dir, name)
		if err := ExportFile(root, path); err != nil {
			t.Fatalf("ExportFile(%s): %v", name, err)
		}
		got, err := ImportFile(path)
		if err != nil {
			t.Fatalf("ImportFile(%s): %v", name, err)
		}
		if !layout.Equal(got, root) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"split": "nope", "children": [{"id": "a", "template": "t"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportFile(bad)
	if !errs.Is(err, errs.ErrCodeInvalidTemplate) || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("bad file: err = %v", err)
	}
}
