package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/glum-catalog/backend/internal/model"
)

type ProductStore interface {
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProductSummaries(ctx context.Context, companyID int64) ([]model.ProductSummary, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	ListCategoriesByCompany(ctx context.Context, companyID int64) ([]model.Category, error)
}

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

// Create validates the category reference before inserting so a bad
// category id surfaces as invalid input instead of a constraint error.
func (s *ProductService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	category, err := s.store.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, req.CategoryID)
		}
		return nil, err
	}
	if category.CompanyID != req.CompanyID {
		return nil, fmt.Errorf("%w: category %d belongs to another company", ErrInvalidInput, req.CategoryID)
	}

	return s.store.CreateProduct(ctx, &model.Product{
		CompanyID:     req.CompanyID,
		CategoryID:    req.CategoryID,
		ProductCode:   req.ProductCode,
		ProductName:   req.ProductName,
		Description:   req.Description,
		PointsValue:   req.PointsValue,
		MonetaryValue: req.MonetaryValue,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		Status:        req.Status,
		CurrencyID:    1,
	})
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)

	return s.store.UpdateProduct(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

func (s *ProductService) Summary(ctx context.Context, companyID int64) ([]model.ProductSummary, error) {
	if companyID <= 0 {
		return nil, fmt.Errorf("%w: company_id is required", ErrInvalidInput)
	}
	return s.store.ListProductSummaries(ctx, companyID)
}

func (s *ProductService) Categories(ctx context.Context, companyID int64) ([]model.Category, error) {
	if companyID <= 0 {
		return nil, fmt.Errorf("%w: company_id is required", ErrInvalidInput)
	}
	return s.store.ListCategoriesByCompany(ctx, companyID)
}
