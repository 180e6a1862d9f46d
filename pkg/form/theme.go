package form

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ManifestSelector selects from a fixed set of manifests. It serves setups
// that declare themes in configuration instead of a theme registry.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. The first manifest is the
// fallback used when Select receives an empty name.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, fmt.Errorf("form: theme manifest name is required")
		}
		if _, exists := selector.manifests[name]; exists {
			return nil, fmt.Errorf("form: theme %q registered twice", name)
		}
		selector.manifests[name] = manifest
		if selector.fallback == "" {
			selector.fallback = name
		}
	}
	return selector, nil
}

// Select returns the manifest registered under name. Unknown variants keep
// the manifest tokens only.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("form: theme %q not found", name)
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  strings.TrimSpace(variant),
		Manifest: manifest,
	}, nil
}
