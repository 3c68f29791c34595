package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edvin/catalog/internal/model"
)

// DB is the subset of pgxpool.Pool used by PostgresStore.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists products in the products table (see migrations/postgres).
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, price, category, image, stock
		 FROM products
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	var p model.Product
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, price, category, image, stock
		 FROM products
		 WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, p *model.Product) (*model.Product, error) {
	saved := *p
	if saved.ID == 0 {
		err := s.db.QueryRow(ctx,
			`INSERT INTO products (name, description, price, category, image, stock)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			saved.Name, saved.Description, saved.Price, saved.Category, saved.Image, saved.Stock,
		).Scan(&saved.ID)
		if err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return &saved, nil
	}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		// An explicit ID bypasses the sequence. Raise it first, never lower it,
		// so generated IDs stay above every ID ever written.
		if saved.ID > 0 {
			if _, err := tx.Exec(ctx,
				`SELECT setval('products_id_seq', GREATEST($1, last_value)) FROM products_id_seq`,
				saved.ID,
			); err != nil {
				return fmt.Errorf("advance product id sequence: %w", err)
			}
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category, image, stock)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   price = EXCLUDED.price,
			   category = EXCLUDED.category,
			   image = EXCLUDED.image,
			   stock = EXCLUDED.stock`,
			saved.ID, saved.Name, saved.Description, saved.Price, saved.Category, saved.Image, saved.Stock,
		)
		if err != nil {
			return fmt.Errorf("save product %d: %w", saved.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// Ping checks the connection when the underlying DB supports it (pgxpool does).
func (s *PostgresStore) Ping(ctx context.Context) error {
	if p, ok := s.db.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
