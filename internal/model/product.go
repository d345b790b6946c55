package model

import "time"

type Product struct {
	ID            int64
	CompanyID     int64
	CategoryID    int64
	ProductCode   string
	ProductName   string
	Description   string
	PointsValue   int
	MonetaryValue float64
	StockQuantity int
	ImageURL      string
	Status        int
	CurrencyID    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Category struct {
	ID           int64
	CompanyID    int64
	CategoryName string
	Description  string
	Status       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateProductRequest struct {
	CompanyID     int64   `json:"companyId" binding:"required"`
	CategoryID    int64   `json:"categoryId" binding:"required"`
	ProductCode   string  `json:"productCode"`
	ProductName   string  `json:"productName" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	PointsValue   int     `json:"pointsValue" binding:"required"`
	MonetaryValue float64 `json:"monetaryValue" binding:"required"`
	StockQuantity int     `json:"stockQuantity" binding:"required"`
	ImageURL      string  `json:"imageUrl" binding:"required"`
	Status        int     `json:"status"`
}

// ProductPatch mirrors UserPatch: nil fields are left untouched.
type ProductPatch struct {
	ProductCode   *string  `json:"productCode"`
	ProductName   *string  `json:"productName"`
	Description   *string  `json:"description"`
	PointsValue   *int     `json:"pointsValue"`
	MonetaryValue *float64 `json:"monetaryValue"`
	StockQuantity *int     `json:"stockQuantity"`
	ImageURL      *string  `json:"imageUrl"`
	Status        *int     `json:"status"`
}

func (p ProductPatch) Apply(product *Product) {
	if p.ProductCode != nil {
		product.ProductCode = *p.ProductCode
	}
	if p.ProductName != nil {
		product.ProductName = *p.ProductName
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.PointsValue != nil {
		product.PointsValue = *p.PointsValue
	}
	if p.MonetaryValue != nil {
		product.MonetaryValue = *p.MonetaryValue
	}
	if p.StockQuantity != nil {
		product.StockQuantity = *p.StockQuantity
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
}

type ProductRead struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyId"`
	CategoryID    int64     `json:"categoryId"`
	ProductCode   string    `json:"productCode"`
	ProductName   string    `json:"productName"`
	Description   string    `json:"description"`
	PointsValue   int       `json:"pointsValue"`
	MonetaryValue float64   `json:"monetaryValue"`
	StockQuantity int       `json:"stockQuantity"`
	ImageURL      string    `json:"imageUrl"`
	Status        int       `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p *Product) Read() ProductRead {
	return ProductRead{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		CategoryID:    p.CategoryID,
		ProductCode:   p.ProductCode,
		ProductName:   p.ProductName,
		Description:   p.Description,
		PointsValue:   p.PointsValue,
		MonetaryValue: p.MonetaryValue,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type CategoryRead struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"companyId"`
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
	Status       int    `json:"status"`
}

func (c *Category) Read() CategoryRead {
	return CategoryRead{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		CategoryName: c.CategoryName,
		Description:  c.Description,
		Status:       c.Status,
	}
}

// ProductSummary is the joined listing row for a company's storefront.
type ProductSummary struct {
	ID           int64  `json:"id"`
	ProductName  string `json:"productName"`
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	PointsValue  int    `json:"pointsValue"`
	ImageURL     string `json:"imageUrl"`
}
