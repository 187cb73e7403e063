package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, created_at, updated_at
FROM carts
WHERE id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, id).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT ci.cart_id::text, ci.product_id::text, ci.quantity, p.name, p.image_url, pr.amount, ci.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
JOIN prices pr ON pr.id = p.price_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.ProductName,
			&item.ImageURL,
			&item.PriceCents,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) CreateWithItem(ctx context.Context, cartID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO carts (id) VALUES ($1)
`, cartID); err != nil {
		return mapPgError(err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
`, cartID, productID, quantity); err != nil {
		return mapPgError(err)
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
`
	return r.upsertItem(ctx, q, cartID, productID, quantity)
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
`
	return r.upsertItem(ctx, q, cartID, productID, quantity)
}

func (r *postgresRepo) upsertItem(ctx context.Context, query, cartID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, cartID, productID, quantity); err != nil {
		return mapPgError(err)
	}
	if err := touchCart(ctx, tx, cartID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, productID string) (removed, cartDeleted bool, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, false, err
	}
	defer tx.Rollback(ctx)

	// Serialize removals on the same cart. Without the lock, two
	// transactions deleting the cart's last two lines each count the
	// other's uncommitted delete as a surviving line, and the emptied
	// cart row outlives both.
	var locked int
	if err := tx.QueryRow(ctx, `
SELECT 1 FROM carts WHERE id = $1 FOR UPDATE
`, cartID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, tx.Commit(ctx)
		}
		return false, false, err
	}

	cmd, err := tx.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID)
	if err != nil {
		return false, false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, false, tx.Commit(ctx)
	}

	var remaining int
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM cart_items WHERE cart_id = $1
`, cartID).Scan(&remaining); err != nil {
		return false, false, err
	}

	if remaining == 0 {
		// A cart never persists with zero lines.
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
			return false, false, err
		}
		return true, true, tx.Commit(ctx)
	}

	if err := touchCart(ctx, tx, cartID); err != nil {
		return false, false, err
	}
	return true, false, tx.Commit(ctx)
}

func touchCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts SET updated_at = now() WHERE id = $1
`, cartID)
	return err
}

// mapPgError translates the constraint violations the cart flow relies on:
// a duplicate cart id means a concurrent writer won the create race, a
// broken foreign key means the cart (or product) vanished underneath us.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrConflict
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}
