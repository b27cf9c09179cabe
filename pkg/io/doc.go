// Package io reads and writes combinatorial maps as JSON or TOML files.
//
// # Overview
//
// A map file stores the raw arrays of a [ribbon.Map] together with an
// optional name and outer face, so a surface can be packed again without
// rebuilding it from an expression:
//
//	{
//	  "name": "triangle",
//	  "rot":  [1, 2, 0],
//	  "pair": [-1, -1, -1],
//	  "deco": [{"direction": "neither", "colour": "red", "over": true}, ...],
//	  "outer": []
//	}
//
// The same fields are used in TOML:
//
//	name = "triangle"
//	rot = [1, 2, 0]
//	pair = [-1, -1, -1]
//
// # Fields
//
// Required:
//   - rot: the rotation c, one entry per dart
//   - pair: the pairing e, -1 for unpaired darts
//
// Optional:
//   - name: label used by the CLI and the catalog
//   - deco: one decoration per dart (defaults to [ribbon.Vanilla])
//   - interior: one flag per dart (defaults to false)
//   - outer: the darts of the outer face, in face order
//
// # Import and Export
//
// [ReadJSON] and [ReadTOML] decode from any io.Reader; [Import] picks the
// format from the file extension. [WriteJSON], [WriteTOML] and [Export] are
// the inverses. Decoded arrays are validated by [ribbon.New]; the outer face
// is only checked when a surface is built from the document.
package io
