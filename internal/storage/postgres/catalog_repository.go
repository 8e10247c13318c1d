package postgres

import (
	"context"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

type catalogRepository struct {
	store *Store
}

// NewCatalogRepository создаёт PostgreSQL-реализацию справочников.
func NewCatalogRepository(store *Store) domain.CatalogRepository {
	return &catalogRepository{store: store}
}

func (r *catalogRepository) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT payment_method_id, method_name
		FROM payment_methods
		WHERE is_active
		ORDER BY payment_method_id
	`)
	if err != nil {
		return nil, classify("list payment methods", "payment_methods", err)
	}
	defer rows.Close()

	result := make([]domain.PaymentMethod, 0)
	for rows.Next() {
		var m domain.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, classify("scan payment method", "payment_methods", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate payment methods", "payment_methods", err)
	}
	return result, nil
}

func (r *catalogRepository) Channels(ctx context.Context) ([]domain.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT channel_id, channel_name, description
		FROM channels
		ORDER BY channel_id
	`)
	if err != nil {
		return nil, classify("list channels", "channels", err)
	}
	defer rows.Close()

	result := make([]domain.Channel, 0)
	for rows.Next() {
		var c domain.Channel
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, classify("scan channel", "channels", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate channels", "channels", err)
	}
	return result, nil
}

func (r *catalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT category_id, category_name, description
		FROM product_categories
		WHERE is_active
		ORDER BY category_name
	`)
	if err != nil {
		return nil, classify("list categories", "product_categories", err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, classify("scan category", "product_categories", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate categories", "product_categories", err)
	}
	return result, nil
}

func (r *catalogRepository) Products(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	conn, err := r.store.session(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT product_id, category_id, product_name, description, unit_price, stock_quantity, is_active
		FROM products
		WHERE category_id = $1 AND is_active
		ORDER BY product_name
	`, categoryID)
	if err != nil {
		return nil, classify("list products", "products", err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.UnitPrice, &p.StockQuantity, &p.Active); err != nil {
			return nil, classify("scan product", "products", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate products", "products", err)
	}
	return result, nil
}

var _ domain.CatalogRepository = (*catalogRepository)(nil)
