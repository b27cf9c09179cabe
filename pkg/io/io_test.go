package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/ribbonpack/pkg/errors"
	"github.com/matzehuels/ribbonpack/pkg/ribbon"
)

func pentagon(t *testing.T) *Document {
	t.Helper()
	p, err := ribbon.Polygon(5)
	require.NoError(t, err)
	p.SetDecoration(0, ribbon.Decoration{Direction: ribbon.Tail, Colour: "blue", Over: false})
	m, outer, err := p.Closure(nil, nil)
	require.NoError(t, err)
	return &Document{Name: "pentagon", Map: m, Outer: outer}
}

func assertSameDocument(t *testing.T, want, got *Document) {
	t.Helper()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Outer, got.Outer)
	assert.Equal(t, want.Map.Rotation(), got.Map.Rotation())
	assert.Equal(t, want.Map.Pairing(), got.Map.Pairing())
	assert.Equal(t, want.Map.Decorations(), got.Map.Decorations())
	assert.Equal(t, want.Map.InteriorFlags(), got.Map.InteriorFlags())
}

func TestJSONRoundTrip(t *testing.T) {
	doc := pentagon(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(doc, &buf))
	assert.Contains(t, buf.String(), `"direction": "tail"`)

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assertSameDocument(t, doc, got)
}

func TestTOMLRoundTrip(t *testing.T) {
	doc := pentagon(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTOML(doc, &buf))
	assert.Contains(t, buf.String(), `name = "pentagon"`)
	assert.Contains(t, buf.String(), "[[deco]]")

	got, err := ReadTOML(&buf)
	require.NoError(t, err)
	assertSameDocument(t, doc, got)
}

func TestInteriorFlagsKept(t *testing.T) {
	doc := &Document{Map: ribbon.Line()}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(doc, &buf))
	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, got.Map.InteriorFlags())
	assert.Nil(t, got.Outer)
}

func TestReadDefaults(t *testing.T) {
	got, err := ReadTOML(strings.NewReader("rot = [1, 2, 0]\npair = [-1, -1, -1]\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Map.Len())
	assert.Equal(t, ribbon.Vanilla, got.Map.Decoration(2))
	assert.Empty(t, got.Name)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		code perrors.Code
	}{
		{"malformed", `{"rot": [`, perrors.ErrCodeInvalidFormat},
		{"unknown field", `{"rot": [0], "pair": [-1], "colour": "red"}`, perrors.ErrCodeInvalidFormat},
		{"length mismatch", `{"rot": [0, 1], "pair": [-1]}`, perrors.ErrCodeInvalidFormat},
		{"deco mismatch", `{"rot": [0], "pair": [-1], "deco": []}`, perrors.ErrCodeInvalidFormat},
		{"not a bijection", `{"rot": [0, 0], "pair": [-1, -1]}`, perrors.ErrCodeStructuralInvariant},
		{"pair fixed point", `{"rot": [0], "pair": [0]}`, perrors.ErrCodeStructuralInvariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.Equal(t, tt.code, perrors.GetCode(err))
		})
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("rot = [0]\npair = [-1]\nouter_face = [0]\n"))
	assert.ErrorIs(t, err, ErrInvalidFile)
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	doc := pentagon(t)

	for _, name := range []string{"p.json", "p.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Export(doc, path))
		got, err := Import(path)
		require.NoError(t, err)
		assertSameDocument(t, doc, got)
	}

	doc.Name = ""
	path := filepath.Join(dir, "square-ish.json")
	require.NoError(t, Export(doc, path))
	got, err := Import(path)
	require.NoError(t, err)
	assert.Equal(t, "square-ish", got.Name)
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "missing.json"))
	assert.True(t, perrors.Is(err, perrors.ErrCodeFileNotFound))

	bad := filepath.Join(dir, "map.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rot: []"), 0o644))
	_, err = Import(bad)
	assert.ErrorIs(t, err, ErrUnknownExtension)

	assert.ErrorIs(t, Export(pentagon(t), filepath.Join(dir, "x.txt")), ErrUnknownExtension)
}
