// Package seed loads a YAML product fixture into a store.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/edvin/catalog/internal/model"
	"github.com/edvin/catalog/internal/store"
)

type productsFile struct {
	Products []model.Product `yaml:"products"`
}

// Load reads the fixture at path.
func Load(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f productsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return f.Products, nil
}

// Apply saves products into s when s holds no products yet, so restarting with
// the same fixture never duplicates or overwrites data. It returns how many
// products were written.
func Apply(ctx context.Context, s store.ProductStore, products []model.Product) (int, error) {
	existing, err := s.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("check existing products: %w", err)
	}
	if len(existing) > 0 {
		zerolog.Ctx(ctx).Debug().Int("existing", len(existing)).Msg("store not empty, skipping seed")
		return 0, nil
	}

	for i := range products {
		if _, err := s.Save(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("seed product %q: %w", products[i].Name, err)
		}
	}
	return len(products), nil
}
