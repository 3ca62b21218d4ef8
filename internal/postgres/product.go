package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jswan/mercantile/internal/domain"
)

const productColumns = `id, category_id, name, description, size, color, brand,
	image_url, price, stock_quantity, reorder_threshold, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Size, &p.Color,
		&p.Brand, &p.ImageURL, &p.Price, &p.StockQuantity, &p.ReorderThreshold,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a catalog item.
func (s *Store) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO products (category_id, name, description, size, color, brand,
			image_url, price, stock_quantity, reorder_threshold)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+productColumns,
		params.CategoryID, params.Name, params.Description, params.Size,
		params.Color, params.Brand, params.ImageURL, params.Price,
		params.StockQuantity, params.ReorderThreshold,
	)

	p, err := scanProduct(row)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, domain.Internal(err, "product.create", "failed to create product")
	}
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}
	return p, nil
}

// ListProducts returns the full catalog ordered by name.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	return collectProducts(rows, "product.list")
}

// ListLowStockProducts returns products at or below their reorder threshold.
func (s *Store) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE stock_quantity <= reorder_threshold
		 ORDER BY stock_quantity`)
	if err != nil {
		return nil, domain.Internal(err, "product.list_low_stock", "failed to list low stock products")
	}
	defer rows.Close()

	return collectProducts(rows, "product.list_low_stock")
}

func collectProducts(rows pgx.Rows, op string) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to read products")
	}
	return products, nil
}

// UpdateProduct applies the non-nil fields of params.
func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, params domain.UpdateProductParams) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE products SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			size = COALESCE($4, size),
			color = COALESCE($5, color),
			brand = COALESCE($6, brand),
			image_url = COALESCE($7, image_url),
			price = COALESCE($8, price),
			reorder_threshold = COALESCE($9, reorder_threshold),
			updated_at = NOW()
		 WHERE id = $1`,
		id, params.Name, params.Description, params.Size, params.Color,
		params.Brand, params.ImageURL, params.Price, params.ReorderThreshold,
	)
	if err != nil {
		return domain.Internal(err, "product.update", "failed to update product")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock atomically takes quantity units out of stock. The guard in
// the WHERE clause makes the check-and-decrement a single statement, so two
// concurrent orders can never both succeed on the last unit.
func (s *Store) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	ct, err := s.db.Exec(ctx,
		`UPDATE products
		 SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		 WHERE id = $1 AND stock_quantity >= $2`,
		productID, quantity,
	)
	if err != nil {
		return domain.Internal(err, "inventory.decrement", "failed to decrement stock")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock puts quantity units back into stock.
func (s *Store) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	ct, err := s.db.Exec(ctx,
		`UPDATE products
		 SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		 WHERE id = $1`,
		productID, quantity,
	)
	if err != nil {
		return domain.Internal(err, "inventory.increment", "failed to increment stock")
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, sex FROM categories ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, "category.list", "failed to list categories")
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Sex); err != nil {
			return nil, domain.Internal(err, "category.list", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "category.list", "failed to read categories")
	}
	return categories, nil
}
