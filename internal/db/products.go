package db

import (
	"context"
	"fmt"

	"github.com/glum-catalog/backend/internal/model"
)

func (db *Postgres) EnsureCatalogSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			company_id BIGINT NOT NULL,
			category_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status SMALLINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			company_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			product_code TEXT NOT NULL DEFAULT '',
			product_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			points_value INT NOT NULL DEFAULT 0,
			monetary_value NUMERIC(10,2) NOT NULL DEFAULT 0,
			stock_quantity INT NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			status SMALLINT NOT NULL DEFAULT 0,
			currency_id SMALLINT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS products_company_id_idx ON products(company_id)`,
		`CREATE INDEX IF NOT EXISTS products_product_code_idx ON products(product_code) WHERE product_code != ''`,
		`CREATE INDEX IF NOT EXISTS categories_company_id_idx ON categories(company_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const productColumns = `id, company_id, category_id, product_code, product_name,
	description, points_value, monetary_value, stock_quantity, image_url,
	status, currency_id, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.CategoryID,
		&p.ProductCode,
		&p.ProductName,
		&p.Description,
		&p.PointsValue,
		&p.MonetaryValue,
		&p.StockQuantity,
		&p.ImageURL,
		&p.Status,
		&p.CurrencyID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO products (company_id, category_id, product_code, product_name,
			description, points_value, monetary_value, stock_quantity, image_url,
			status, currency_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s
	`, productColumns)

	return scanProduct(db.Pool.QueryRow(ctx, query,
		p.CompanyID, p.CategoryID, p.ProductCode, p.ProductName, p.Description,
		p.PointsValue, p.MonetaryValue, p.StockQuantity, p.ImageURL,
		p.Status, p.CurrencyID,
	))
}

func (db *Postgres) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return scanProduct(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET product_code = $2, product_name = $3, description = $4,
			points_value = $5, monetary_value = $6, stock_quantity = $7,
			image_url = $8, status = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	return scanProduct(db.Pool.QueryRow(ctx, query,
		p.ID, p.ProductCode, p.ProductName, p.Description,
		p.PointsValue, p.MonetaryValue, p.StockQuantity,
		p.ImageURL, p.Status,
	))
}

func (db *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListProductSummaries joins products with their category names for a
// company's storefront listing.
func (db *Postgres) ListProductSummaries(ctx context.Context, companyID int64) ([]model.ProductSummary, error) {
	query := `
		SELECT p.id, p.product_name, p.category_id, c.category_name,
			p.points_value, p.image_url
		FROM products p
		INNER JOIN categories c ON c.id = p.category_id
		WHERE p.company_id = $1
		ORDER BY p.id
	`

	rows, err := db.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.ProductSummary
	for rows.Next() {
		var s model.ProductSummary
		if err := rows.Scan(&s.ID, &s.ProductName, &s.CategoryID,
			&s.CategoryName, &s.PointsValue, &s.ImageURL); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
