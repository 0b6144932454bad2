package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to product record storage.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository builds a product repository over the named table.
func NewRepository(pool *pgxpool.Pool, table string) *Repository {
	return &Repository{pool: pool, table: table}
}

// Put writes a record, fully overwriting any existing row with the same id.
// There is no optimistic concurrency: the last writer wins.
func (r *Repository) Put(ctx context.Context, p Product) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := fmt.Sprintf(`
INSERT INTO %s (id, name, quantity, price, image_key)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    quantity = EXCLUDED.quantity,
    price = EXCLUDED.price,
    image_key = EXCLUDED.image_key,
    updated_at = now();`, r.ident())

	if _, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Quantity, p.Price, p.ImageKey); err != nil {
		return fmt.Errorf("put product: %w", err)
	}
	return nil
}

// Get fetches a single record by id.
func (r *Repository) Get(ctx context.Context, id string) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := fmt.Sprintf(`
SELECT id, name, quantity, price, image_key
FROM %s
WHERE id = $1;`, r.ident())

	var p Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.ImageKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Delete removes a record by id. Deleting an unknown id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1;`, r.ident())

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ScanAll returns every record in a single unbounded page. There is no
// pagination and no guaranteed ordering; acceptable only for small
// inventories.
func (r *Repository) ScanAll(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, name, quantity, price, image_key FROM %s;`, r.ident())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.ImageKey); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *Repository) ident() string {
	return pgx.Identifier{r.table}.Sanitize()
}
