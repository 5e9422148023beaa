package cache

// Keyer builds cache keys for the cacheable pipeline stages.
type Keyer interface {
	// ArtifactKey identifies one encoded render: the descriptor content
	// hash plus every option that changes the output bytes.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the encoding options that participate in the
// artifact key. Options that cannot change the output, like sequential
// rendering, stay out so they share entries.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	FullScale bool   `json:"full_scale"`
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for encoded render output.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
