package order

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CreateInput) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Deleting the cart first acts as the double-checkout guard: a
	// concurrent finalize of the same cart loses here and rolls back.
	cmd, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, in.CartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO orders (id, status, paid_at)
VALUES ($1, 'PAID', $2)
`, in.OrderID, in.PaidAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO customer_info (order_id, email, first_name, last_name, address, city, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, in.OrderID,
		in.Customer.Email,
		in.Customer.FirstName,
		in.Customer.LastName,
		in.Customer.Address,
		in.Customer.City,
		in.Customer.PostalCode,
		in.Customer.Country,
	); err != nil {
		return err
	}

	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, price_id, quantity)
VALUES ($1, $2, $3, $4)
`, in.OrderID, item.ProductID, item.PriceID, item.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: created order=%s items=%d from cart=%s", in.OrderID, len(in.Items), in.CartID)
	return nil
}

const orderColumns = `
o.id::text, o.status::text, o.created_at, o.paid_at, o.completed_at, COALESCE(o.cancel_reason, ''),
ci.email, ci.first_name, ci.last_name, ci.address, ci.city, ci.postal_code, ci.country
`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customer_info ci ON ci.order_id = o.id
WHERE o.id = $1
`
	var o domain.Order
	var status string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &status, &o.CreatedAt, &o.PaidAt, &o.CompletedAt, &o.CancelReason,
		&o.CustomerInfo.Email,
		&o.CustomerInfo.FirstName,
		&o.CustomerInfo.LastName,
		&o.CustomerInfo.Address,
		&o.CustomerInfo.City,
		&o.CustomerInfo.PostalCode,
		&o.CustomerInfo.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)

	const itemsQuery = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, oi.price_id::text, pr.amount, oi.quantity, p.name, p.image_url
FROM order_items oi
JOIN prices pr ON pr.id = oi.price_id
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY p.name ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.PriceID,
			&item.PriceCents,
			&item.Quantity,
			&item.ProductName,
			&item.ImageURL,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN customer_info ci ON ci.order_id = o.id
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		if err := rows.Scan(
			&o.ID, &status, &o.CreatedAt, &o.PaidAt, &o.CompletedAt, &o.CancelReason,
			&o.CustomerInfo.Email,
			&o.CustomerInfo.FirstName,
			&o.CustomerInfo.LastName,
			&o.CustomerInfo.Address,
			&o.CustomerInfo.City,
			&o.CustomerInfo.PostalCode,
			&o.CustomerInfo.Country,
		); err != nil {
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
