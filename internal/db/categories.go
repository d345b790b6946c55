package db

import (
	"context"

	"github.com/glum-catalog/backend/internal/model"
)

const categoryColumns = `id, company_id, category_name, description, status,
	created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (*model.Category, error) {
	var c model.Category
	err := row.Scan(
		&c.ID,
		&c.CompanyID,
		&c.CategoryName,
		&c.Description,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (db *Postgres) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) ListCategoriesByCompany(ctx context.Context, companyID int64) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE company_id = $1 ORDER BY id`

	rows, err := db.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}
