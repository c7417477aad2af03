package adapters

import (
	"errors"
	"fmt"

	"github.com/brettbedarf/filetree"
	"github.com/puzpuzpuz/xsync/v4"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType = errors.New("no factory for source type")
	ErrMissingType = errors.New("source has no type")
)

// Factory decodes one source entry of a manifest into a provider.
// The node is the whole mapping, including its "type" key.
type Factory func(node *yaml.Node) (filetree.AdapterProvider, error)

// Registry ties source "type" keys to their factories.
type Registry struct {
	factories *xsync.Map[string, Factory]
}

func NewRegistry() *Registry {
	return &Registry{factories: xsync.NewMap[string, Factory]()}
}

// Default is the registry used by the package-level helpers.
var Default = NewRegistry()

// Register ties a factory to a "type" key and should be called for each
// adapter type during app init. The first registration for a key wins;
// Register reports whether f was stored.
func (r *Registry) Register(adapterType string, f Factory) bool {
	_, loaded := r.factories.LoadOrStore(adapterType, f)
	return !loaded
}

// GetFactory returns the factory registered for adapterType.
func (r *Registry) GetFactory(adapterType string) (Factory, error) {
	f, ok := r.factories.Load(adapterType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, adapterType)
	}
	return f, nil
}

// NewProvider picks the right factory based on the node's "type" field.
// All expected source types should be registered before calling this.
func (r *Registry) NewProvider(node *yaml.Node) (filetree.AdapterProvider, error) {
	var meta struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&meta); err != nil {
		return nil, err
	}
	if meta.Type == "" {
		return nil, ErrMissingType
	}
	f, err := r.GetFactory(meta.Type)
	if err != nil {
		return nil, err
	}
	return f(node)
}

// Types lists the registered source types in no particular order.
func (r *Registry) Types() []string {
	types := make([]string, 0, r.factories.Size())
	r.factories.Range(func(k string, _ Factory) bool {
		types = append(types, k)
		return true
	})
	return types
}

// Register adds f to the [Default] registry.
func Register(adapterType string, f Factory) bool {
	return Default.Register(adapterType, f)
}

// NewProvider builds a provider using the [Default] registry.
func NewProvider(node *yaml.Node) (filetree.AdapterProvider, error) {
	return Default.NewProvider(node)
}
