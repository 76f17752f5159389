// Package catalog holds the static product table shipped with the binary.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phenrril/fightshop/internal/domain"
)

//go:embed products.yaml
var productsYAML []byte

// Products parses the embedded table. Every call returns a fresh slice.
func Products() ([]domain.Product, error) {
	return Parse(productsYAML)
}

// Parse decodes a YAML product list and rejects duplicate or empty ids.
func Parse(data []byte) ([]domain.Product, error) {
	var list []domain.Product
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(list))
	for i := range list {
		p := &list[i]
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s: negative price", p.ID)
		}
		if p.Sizes == nil {
			p.Sizes = []string{}
		}
		if p.Colors == nil {
			p.Colors = []domain.ColorVariant{}
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		if p.Features == nil {
			p.Features = []string{}
		}
	}
	return list, nil
}
