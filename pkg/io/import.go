package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

var (
	// ErrInvalidFile is returned when a map file cannot be decoded or its
	// arrays have inconsistent lengths.
	ErrInvalidFile = perrors.New(perrors.ErrCodeInvalidFormat, "invalid map file")

	// ErrUnknownExtension is returned by [Import] and [Export] for paths
	// that end in neither .json nor .toml.
	ErrUnknownExtension = perrors.New(perrors.ErrCodeInvalidFormat, "unknown map file extension")
)

// Document is a decoded map file.
type Document struct {
	Name  string
	Map   *ribbon.Map
	Outer []ribbon.Dart // nil when the file has no outer face
}

// ReadJSON decodes a JSON map file from r. Unknown fields are rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var data mapFile
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidFile, err)
	}
	return data.document()
}

// ReadTOML decodes a TOML map file from r. Unknown keys are rejected.
func ReadTOML(r io.Reader) (*Document, error) {
	var data mapFile
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidFile, undecoded[0].String())
	}
	return data.document()
}

// Import reads the map file at path, choosing the decoder by extension.
func Import(path string) (*Document, error) {
	if _, err := readerFor(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(path, f)
}

// Read decodes a map file from r, choosing the decoder by the extension
// of name. A file without a name of its own is named after name.
func Read(name string, r io.Reader) (*Document, error) {
	read, err := readerFor(name)
	if err != nil {
		return nil, err
	}
	doc, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return doc, nil
}

func readerFor(path string) (func(io.Reader) (*Document, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, path)
}

func (f *mapFile) document() (*Document, error) {
	n := len(f.Rot)
	if len(f.Pair) != n {
		return nil, fmt.Errorf("%w: rot has %d entries but pair has %d", ErrInvalidFile, n, len(f.Pair))
	}
	if f.Deco != nil && len(f.Deco) != n {
		return nil, fmt.Errorf("%w: rot has %d entries but deco has %d", ErrInvalidFile, n, len(f.Deco))
	}
	if f.Interior != nil && len(f.Interior) != n {
		return nil, fmt.Errorf("%w: rot has %d entries but interior has %d", ErrInvalidFile, n, len(f.Interior))
	}

	m, err := ribbon.New(toDarts(f.Rot), toDarts(f.Pair), f.Deco, f.Interior)
	if err != nil {
		return nil, err
	}
	doc := &Document{Name: f.Name, Map: m}
	if f.Outer != nil {
		doc.Outer = toDarts(f.Outer)
	}
	return doc, nil
}

func toDarts(xs []int) []ribbon.Dart {
	ds := make([]ribbon.Dart, len(xs))
	for i, x := range xs {
		ds[i] = ribbon.Dart(x)
	}
	return ds
}
