package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glum-catalog/backend/internal/model"
	"github.com/glum-catalog/backend/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Summary godoc
// @Summary List a company's products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param company_id query int true "Company ID"
// @Success 200 {array} model.ProductSummary
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) Summary(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Query("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}

	summaries, err := h.svc.Summary(c.Request.Context(), companyID)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Categories godoc
// @Summary List a company's categories
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param company_id query int true "Company ID"
// @Success 200 {array} model.CategoryRead
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/categories [get]
func (h *ProductHandler) Categories(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Query("company_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}

	categories, err := h.svc.Categories(c.Request.Context(), companyID)
	if err != nil {
		writeProductError(c, err)
		return
	}

	out := make([]model.CategoryRead, 0, len(categories))
	for i := range categories {
		out = append(out, categories[i].Read())
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "New product"
// @Success 201 {object} model.ProductRead
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	product, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product.Read())
}

// GetByID godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductRead
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.Read())
}

// Update godoc
// @Summary Update product
// @Description Applies only the supplied fields.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.ProductPatch true "Fields to change"
// @Success 200 {object} model.ProductRead
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var patch model.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	product, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product.Read())
}

// Delete godoc
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func writeProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		log.Printf("[Products] Request failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
