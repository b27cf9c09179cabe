package sink

import (
	"encoding/json"

	"github.com/matzehuels/ribbonpack/pkg/embed"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
)

// JSONOption configures a [JSON] sink.
type JSONOption func(*JSON)

// WithJSONName records a name for the drawing.
func WithJSONName(n string) JSONOption { return func(j *JSON) { j.name = n } }

// WithJSONLayers records which layers were drawn.
func WithJSONLayers(opts diagram.Options) JSONOption {
	return func(j *JSON) { j.layers = opts.Layers() }
}

// JSON records primitives and encodes them on Close, so external tools can
// redraw the diagram.
type JSON struct {
	diagram.Recorder
	name   string
	layers []string
	out    []byte
}

type jsonOutput struct {
	Name       string              `json:"name,omitempty"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Layers     []string            `json:"layers,omitempty"`
	Primitives []diagram.Primitive `json:"primitives"`
}

// NewJSON returns an empty JSON sink.
func NewJSON(opts ...JSONOption) *JSON {
	j := &JSON{}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *JSON) Close() error {
	prims := j.Primitives
	if prims == nil {
		prims = []diagram.Primitive{}
	}
	out, err := json.MarshalIndent(jsonOutput{
		Name:       j.name,
		Width:      embed.CanvasSize,
		Height:     embed.CanvasSize,
		Layers:     j.layers,
		Primitives: prims,
	}, "", "  ")
	if err != nil {
		return err
	}
	j.out = out
	return j.Recorder.Close()
}

// Bytes returns the document written by Close.
func (j *JSON) Bytes() []byte { return j.out }

// ReadJSON decodes a document written by the JSON sink back into a
// recorder, ready to be replayed into another sink.
func ReadJSON(data []byte) (*diagram.Recorder, error) {
	var doc jsonOutput
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &diagram.Recorder{Primitives: doc.Primitives}, nil
}
