package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

// CreateCart opens a cart for the user. A partial unique index on
// carts(user_id) WHERE status = 'open' enforces one open cart per user.
func (s *Store) CreateCart(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.db.QueryRow(ctx,
		`INSERT INTO carts (user_id, status)
		 VALUES ($1, 'open')
		 RETURNING id, user_id, status, created_at, updated_at`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, domain.ErrCartExists
		}
		return nil, domain.Internal(err, "cart.create", "failed to create cart")
	}
	return &c, nil
}

// GetOpenCartByUser retrieves the user's open cart.
func (s *Store) GetOpenCartByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var c domain.Cart
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, status, created_at, updated_at
		 FROM carts WHERE user_id = $1 AND status = 'open'`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get_open", "failed to get open cart")
	}
	return &c, nil
}

// UpsertCartItem adds quantity to the product's cart line, creating the
// line if the product is not yet in the cart.
func (s *Store) UpsertCartItem(ctx context.Context, cartID, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity,
	)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, "cart.upsert_item", "failed to upsert cart item")
	}
	return nil
}

// RemoveCartItem deletes the product's line from the cart. Removing a
// product that is not in the cart is a no-op.
func (s *Store) RemoveCartItem(ctx context.Context, cartID, productID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	)
	if err != nil {
		return domain.Internal(err, "cart.remove_item", "failed to remove cart item")
	}
	return nil
}

// ListCartLines returns cart items joined with current product details.
func (s *Store) ListCartLines(ctx context.Context, cartID uuid.UUID) ([]domain.CartLine, error) {
	rows, err := s.db.Query(ctx,
		`SELECT ci.product_id, p.name, ci.quantity, p.price
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY p.name`,
		cartID,
	)
	if err != nil {
		return nil, domain.Internal(err, "cart.list_lines", "failed to list cart lines")
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, domain.Internal(err, "cart.list_lines", "failed to scan cart line")
		}
		l.LineTotal = l.UnitPrice.Mul(decimalFromInt32(l.Quantity))
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "cart.list_lines", "failed to read cart lines")
	}
	return lines, nil
}

// ClearCartItems deletes every line in the cart.
func (s *Store) ClearCartItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return domain.Internal(err, "cart.clear", "failed to clear cart items")
	}
	return nil
}

// MarkCartCheckedOut closes the cart after a successful order.
func (s *Store) MarkCartCheckedOut(ctx context.Context, cartID uuid.UUID) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE carts SET status = 'checked_out', updated_at = NOW() WHERE id = $1`,
		cartID,
	)
	if err != nil {
		return domain.Internal(err, "cart.checkout", "failed to mark cart checked out")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}
