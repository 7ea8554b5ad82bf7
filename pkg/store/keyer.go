package store

// Keyer maps layout names to store keys.
type Keyer interface {
	// LayoutKey returns the store key for a layout name.
	LayoutKey(name string) string

	// Prefix is the common prefix of every key LayoutKey produces.
	Prefix() string
}

// DefaultKeyer produces keys of the form "layout:<name>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(name string) string { return "layout:" + name }

func (DefaultKeyer) Prefix() string { return "layout:" }

// ScopedKeyer prepends a namespace to another keyer's keys, so several
// users or workspaces can share one backend.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "user:abc:")
//	k.LayoutKey("editor") // "user:abc:layout:editor"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(name string) string { return k.prefix + k.inner.LayoutKey(name) }

func (k *ScopedKeyer) Prefix() string { return k.prefix + k.inner.Prefix() }
