package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// Format names a template encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported template file %q (want .json or .toml)", path)
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported template format %q", s)
}

// DecodeJSON decodes a template without building a layout. Unknown fields
// are rejected. JSON null decodes to nil.
func DecodeJSON(r io.Reader) (*Template, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var t *Template
	if err := dec.Decode(&t); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "decode json")
	}
	return t, nil
}

// DecodeTOML decodes a template without building a layout. Unknown keys
// are rejected.
func DecodeTOML(r io.Reader) (*Template, error) {
	var t Template
	md, err := toml.NewDecoder(r).Decode(&t)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "decode toml")
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		if !inExtra(k) {
			unknown = append(unknown, k.String())
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errs.New(errs.ErrCodeInvalidTemplate, "decode toml: unknown keys %s", strings.Join(unknown, ", "))
	}
	return &t, nil
}

// inExtra reports whether k lies inside an opaque extra payload, whose keys
// the decoder does not track.
func inExtra(k toml.Key) bool {
	for _, part := range k {
		if part == "extra" {
			return true
		}
	}
	return false
}

// ReadJSON decodes a JSON template from r and loads it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layout.Root, error) {
	t, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	return Load(t)
}

// WriteJSON saves root and writes it to w as indented JSON.
func WriteJSON(root *layout.Root, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Save(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTOML decodes a TOML template from r and loads it.
func ReadTOML(r io.Reader) (*layout.Root, error) {
	t, err := DecodeTOML(r)
	if err != nil {
		return nil, err
	}
	return Load(t)
}

// WriteTOML saves root and writes it to w as TOML. An empty layout writes
// an empty document.
func WriteTOML(root *layout.Root, w io.Writer) error {
	t := Save(root)
	if t == nil {
		return nil
	}
	if err := toml.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes and loads a template in the given format.
func Read(r io.Reader, format Format) (*layout.Root, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported template format %q", format)
}

// Write saves root and encodes it in the given format.
func Write(root *layout.Root, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(root, w)
	case FormatTOML:
		return WriteTOML(root, w)
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported template format %q", format)
}

// Marshal encodes root as JSON bytes.
func Marshal(root *layout.Root) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal loads a layout from JSON bytes.
func Unmarshal(data []byte) (*layout.Root, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportFile reads a template file, choosing the format by extension.
func ImportFile(path string) (*layout.Root, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// ExportFile writes root to path, choosing the format by extension.
func ExportFile(root *layout.Root, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(root, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
