package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edvin/catalog/internal/model"
)

// MySQLStore persists products in a MySQL products table (see migrations/mysql).
// AUTO_INCREMENT advances on its own when a row is written with an explicit ID.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, price, category, image, stock FROM products ORDER BY id")
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

func (s *MySQLStore) FindByID(ctx context.Context, id int64) (*model.Product, bool, error) {
	var p model.Product
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, price, category, image, stock FROM products WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, true, nil
}

func (s *MySQLStore) Save(ctx context.Context, p *model.Product) (*model.Product, error) {
	saved := *p
	if saved.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO products (name, description, price, category, image, stock)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			saved.Name, saved.Description, saved.Price, saved.Category, saved.Image, saved.Stock,
		)
		if err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read product id: %w", err)
		}
		saved.ID = id
		return &saved, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, category, image, stock)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name),
		   description = VALUES(description),
		   price = VALUES(price),
		   category = VALUES(category),
		   image = VALUES(image),
		   stock = VALUES(stock)`,
		saved.ID, saved.Name, saved.Description, saved.Price, saved.Category, saved.Image, saved.Stock,
	)
	if err != nil {
		return nil, fmt.Errorf("save product %d: %w", saved.ID, err)
	}
	return &saved, nil
}

func (s *MySQLStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
