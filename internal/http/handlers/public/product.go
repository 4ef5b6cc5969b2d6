package public

import (
	"strconv"
	"strings"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetProducts lists the catalog with filtering and sorting.
func (h *Handler) GetProducts(c *gin.Context) {
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
	if raw := c.Query("brand_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			filter.BrandID = uint(id)
		}
	}
	if raw := c.Query("min_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			m := models.NewMoneyFromDecimal(d)
			filter.MinPrice = &m
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			m := models.NewMoneyFromDecimal(d)
			filter.MaxPrice = &m
		}
	}
	if c.Query("featured") == "true" {
		featured := true
		filter.Featured = &featured
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct returns one product by slug, with images and specifications.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, product)
}

// GetCategories lists active categories.
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetBrands lists active brands.
func (h *Handler) GetBrands(c *gin.Context) {
	brands, err := h.ProductService.ListBrands()
	if err != nil {
		respondError(c, response.CodeInternal, "brand list failed", err)
		return
	}
	response.Success(c, gin.H{"brands": brands})
}
