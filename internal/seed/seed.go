package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	ImageURL    string
	PriceCents  int64
}

// Apply inserts a demo catalog for manual testing. Prices are in öre.
// Re-running is a no-op for products that already exist.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Classic T-Shirt",
			Description: "Soft organic cotton tee",
			ImageURL:    "https://images.example.com/classic-tee.jpg",
			PriceCents:  19900,
		},
		{
			Name:        "Canvas Tote",
			Description: "Heavyweight canvas tote bag",
			ImageURL:    "https://images.example.com/canvas-tote.jpg",
			PriceCents:  14900,
		},
		{
			Name:        "Enamel Mug",
			Description: "Camp-style enamel mug",
			ImageURL:    "https://images.example.com/enamel-mug.jpg",
			PriceCents:  9900,
		},
		{
			Name:        "Wool Beanie",
			Description: "Merino wool beanie",
			ImageURL:    "https://images.example.com/wool-beanie.jpg",
			PriceCents:  24900,
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	var existing string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var priceID string
	if err := tx.QueryRow(ctx, `
INSERT INTO prices (amount) VALUES ($1) RETURNING id::text
`, p.PriceCents).Scan(&priceID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO products (name, description, image_url, price_id)
VALUES ($1, $2, $3, $4)
`, p.Name, p.Description, p.ImageURL, priceID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
