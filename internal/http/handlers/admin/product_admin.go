package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
	"github.com/2063ti/flugede-gadgets-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest is the product create/update payload.
type ProductRequest struct {
	Name           string              `json:"name" binding:"required"`
	Slug           string              `json:"slug" binding:"required"`
	Description    string              `json:"description"`
	CategoryID     uint                `json:"category_id" binding:"required"`
	BrandID        *uint               `json:"brand_id"`
	Price          float64             `json:"price" binding:"required"`
	DiscountPrice  *float64            `json:"discount_price"`
	Stock          int                 `json:"stock"`
	WarrantyMonths int                 `json:"warranty_months"`
	MainImage      string              `json:"main_image"`
	IsFeatured     bool                `json:"is_featured"`
	IsActive       *bool               `json:"is_active"`
	Images         []ProductImageInput `json:"images"`
	Specifications []ProductSpecInput  `json:"specifications"`
}

// ProductImageInput is one gallery image in the payload.
type ProductImageInput struct {
	Image     string `json:"image" binding:"required"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
}

// ProductSpecInput is one specification row in the payload.
type ProductSpecInput struct {
	Name      string `json:"name" binding:"required"`
	Value     string `json:"value" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		CategoryID:     r.CategoryID,
		BrandID:        r.BrandID,
		Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Stock:          r.Stock,
		WarrantyMonths: r.WarrantyMonths,
		MainImage:      r.MainImage,
		IsFeatured:     r.IsFeatured,
		IsActive:       true,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	if r.DiscountPrice != nil {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.DiscountPrice))
		input.DiscountPrice = &m
	}
	for _, image := range r.Images {
		input.Images = append(input.Images, models.ProductImage{
			Image:     image.Image,
			AltText:   image.AltText,
			SortOrder: image.SortOrder,
		})
	}
	for _, spec := range r.Specifications {
		input.Specifications = append(input.Specifications, models.ProductSpecification{
			Name:      spec.Name,
			Value:     spec.Value,
			SortOrder: spec.SortOrder,
		})
	}
	return input
}

func respondCatalogAdminError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrBrandNotFound):
		respondError(c, response.CodeBadRequest, "brand not found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeConflict, "slug already in use", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// ListProducts lists the catalog for staff, inactive items included.
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	products, total, err := h.CatalogAdminService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetProduct fetches one product for editing.
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	product, err := h.CatalogAdminService.GetProduct(uint(productID))
	if err != nil {
		respondCatalogAdminError(c, err, "product fetch failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct adds a catalog item.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.CatalogAdminService.CreateProduct(req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "product create failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct edits a catalog item.
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.CatalogAdminService.UpdateProduct(uint(productID), req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "product update failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct soft-deletes a catalog item.
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.CatalogAdminService.DeleteProduct(uint(productID)); err != nil {
		respondCatalogAdminError(c, err, "product delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
