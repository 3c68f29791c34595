// Package store holds the persistence backends for products. Every backend
// implements ProductStore with the same semantics: Save inserts when the ID is
// unassigned and replaces (or inserts under the given ID) otherwise, and
// DeleteByID is a no-op for unknown IDs.
package store

import (
	"context"
	"errors"

	"github.com/edvin/catalog/internal/model"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// ProductStore is the persistence contract used by the product handler.
type ProductStore interface {
	// FindAll returns every product ordered by ascending ID.
	FindAll(ctx context.Context) ([]model.Product, error)
	// FindByID reports found=false, with a nil error, when no product has the ID.
	FindByID(ctx context.Context, id int64) (*model.Product, bool, error)
	Save(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id int64) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
