package cache

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always give the same key.
type Keyer interface {
	// PackingKey is the key of a solved packing.
	PackingKey(mapHash string, opts PackingKeyOpts) string
	// ArtifactKey is the key of a rendered diagram.
	ArtifactKey(packingKey string, opts ArtifactKeyOpts) string
}

// PackingKeyOpts holds every setting that changes the radii.
type PackingKeyOpts struct {
	Scheme            string  `json:"scheme"`
	Tolerance         float64 `json:"tolerance"`
	MaxIterations     int     `json:"max_iterations"`
	AnchorRadius      float64 `json:"anchor_radius"`
	DefaultRadius     float64 `json:"default_radius"`
	Geometry          string  `json:"geometry"`
	BoundaryCondition string  `json:"boundary_condition"`
}

// ArtifactKeyOpts holds the settings that change a rendered diagram.
type ArtifactKeyOpts struct {
	Format string   `json:"format"`
	Layers []string `json:"layers"`
	Title  string   `json:"title,omitempty"`
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PackingKey returns "packing:" followed by the hash of the map hash and options.
func (DefaultKeyer) PackingKey(mapHash string, opts PackingKeyOpts) string {
	return hashKey("packing", mapHash, opts)
}

// ArtifactKey returns "artifact:" followed by the hash of the packing key and options.
func (DefaultKeyer) ArtifactKey(packingKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", packingKey, opts)
}
