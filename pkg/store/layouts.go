package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/observability"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/template"
)

// Layouts stores layout roots by name on top of a Store. Documents are
// the JSON template encoding.
type Layouts struct {
	store  Store
	keyer  Keyer
	ttl    time.Duration
	logger *log.Logger
}

// LayoutsOption configures Layouts.
type LayoutsOption func(*Layouts)

// WithKeyer sets the key scheme. The default is DefaultKeyer.
func WithKeyer(k Keyer) LayoutsOption {
	return func(l *Layouts) {
		if k != nil {
			l.keyer = k
		}
	}
}

// WithTTL expires saved layouts after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) LayoutsOption {
	return func(l *Layouts) { l.ttl = ttl }
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) LayoutsOption {
	return func(l *Layouts) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLayouts wraps s.
func NewLayouts(s Store, opts ...LayoutsOption) *Layouts {
	l := &Layouts{store: s, keyer: NewDefaultKeyer(), logger: log.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store returns the underlying backend.
func (l *Layouts) Store() Store { return l.store }

// Save validates root and stores it under name. It returns the document's ETag.
func (l *Layouts) Save(ctx context.Context, name string, root *layout.Root) (string, error) {
	if err := errs.ValidateLayoutName(name); err != nil {
		return "", err
	}
	if root == nil {
		root = layout.NewRoot(nil)
	}
	if err := layout.Validate(root); err != nil {
		return "", err
	}
	data, err := template.Marshal(root)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "encode layout %q", name)
	}

	backend := l.store.Backend()
	if err := l.store.Set(ctx, l.keyer.LayoutKey(name), data, l.ttl); err != nil {
		observability.Store().OnStoreError(ctx, backend, "set", err)
		return "", errs.Wrap(errs.ErrCodeStore, err, "save layout %q", name)
	}
	observability.Store().OnStoreSet(ctx, backend, len(data))
	etag := Hash(data)
	l.logger.Debug("saved layout", "name", name, "backend", backend, "bytes", len(data))
	return etag, nil
}

// Load returns the layout stored under name and its ETag.
// A missing layout fails with ErrCodeLayoutNotFound.
func (l *Layouts) Load(ctx context.Context, name string) (*layout.Root, string, error) {
	if err := errs.ValidateLayoutName(name); err != nil {
		return nil, "", err
	}
	backend := l.store.Backend()
	data, ok, err := l.store.Get(ctx, l.keyer.LayoutKey(name))
	if err != nil {
		observability.Store().OnStoreError(ctx, backend, "get", err)
		return nil, "", errs.Wrap(errs.ErrCodeStore, err, "load layout %q", name)
	}
	if !ok {
		observability.Store().OnStoreMiss(ctx, backend)
		return nil, "", errs.New(errs.ErrCodeLayoutNotFound, "layout %q not found", name)
	}
	observability.Store().OnStoreHit(ctx, backend)

	root, err := template.Unmarshal(data)
	if err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidTemplate, err, "decode layout %q", name)
	}
	return root, Hash(data), nil
}

// Exists reports whether name is stored.
func (l *Layouts) Exists(ctx context.Context, name string) (bool, error) {
	if err := errs.ValidateLayoutName(name); err != nil {
		return false, err
	}
	_, ok, err := l.store.Get(ctx, l.keyer.LayoutKey(name))
	if err != nil {
		return false, errs.Wrap(errs.ErrCodeStore, err, "load layout %q", name)
	}
	return ok, nil
}

// Delete removes name. A missing layout fails with ErrCodeLayoutNotFound.
func (l *Layouts) Delete(ctx context.Context, name string) error {
	ok, err := l.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.ErrCodeLayoutNotFound, "layout %q not found", name)
	}
	if err := l.store.Delete(ctx, l.keyer.LayoutKey(name)); err != nil {
		observability.Store().OnStoreError(ctx, l.store.Backend(), "delete", err)
		return errs.Wrap(errs.ErrCodeStore, err, "delete layout %q", name)
	}
	l.logger.Debug("deleted layout", "name", name)
	return nil
}

// Names returns the stored layout names, sorted.
func (l *Layouts) Names(ctx context.Context) ([]string, error) {
	prefix := l.keyer.Prefix()
	keys, err := l.store.List(ctx, prefix)
	if err != nil {
		observability.Store().OnStoreError(ctx, l.store.Backend(), "list", err)
		return nil, errs.Wrap(errs.ErrCodeStore, err, "list layouts")
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, prefix))
	}
	slices.Sort(names)
	return names, nil
}

// Close closes the underlying store.
func (l *Layouts) Close() error { return l.store.Close() }
