package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

type mapFile struct {
	Name     string              `json:"name,omitempty" toml:"name,omitempty"`
	Rot      []int               `json:"rot" toml:"rot"`
	Pair     []int               `json:"pair" toml:"pair"`
	Deco     []ribbon.Decoration `json:"deco,omitempty" toml:"deco,omitempty"`
	Interior []bool              `json:"interior,omitempty" toml:"interior,omitempty"`
	Outer    []int               `json:"outer,omitempty" toml:"outer,omitempty"`
}

func newMapFile(d *Document) mapFile {
	m := d.Map
	out := mapFile{
		Name:  d.Name,
		Rot:   fromDarts(m.Rotation()),
		Pair:  fromDarts(m.Pairing()),
		Deco:  m.Decorations(),
		Outer: fromDarts(d.Outer),
	}
	for _, in := range m.InteriorFlags() {
		if in {
			out.Interior = m.InteriorFlags()
			break
		}
	}
	return out
}

// WriteJSON encodes a document as indented JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newMapFile(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a document as TOML and writes it to w.
func WriteTOML(d *Document, w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(newMapFile(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes a document to path, choosing the encoder by extension.
func Export(d *Document, path string) error {
	write := WriteJSON
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".toml"):
		write = WriteTOML
	case !strings.HasSuffix(strings.ToLower(path), ".json"):
		return fmt.Errorf("%w: %s", ErrUnknownExtension, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(d, f)
}

func fromDarts(ds []ribbon.Dart) []int {
	if ds == nil {
		return nil
	}
	xs := make([]int, len(ds))
	for i, x := range ds {
		xs[i] = int(x)
	}
	return xs
}
