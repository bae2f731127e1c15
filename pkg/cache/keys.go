package cache

// LayoutKeyOpts are the inputs that change a resolved layout besides
// the scene itself. Any field change produces a different key.
type LayoutKeyOpts struct {
	// RulesHash is the content hash of the placement rule set.
	RulesHash string

	// Engine is the engine version stamp; bumping it invalidates
	// layouts cached by older engine behavior.
	Engine string
}

// Keyer generates cache keys. Implementations must be deterministic:
// equal inputs always produce equal keys.
type Keyer interface {
	// LayoutKey generates a key for a resolved layout document.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a namespace prefix plus a
// SHA-256 over the JSON-encoded key components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a resolved layout document.
func (k *DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}
