package admin

import (
	"strconv"

	"github.com/2063ti/flugede-gadgets-store/internal/http/response"
	"github.com/2063ti/flugede-gadgets-store/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest is the category create/update payload.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	input := service.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    true,
		SortOrder:   r.SortOrder,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

// CreateCategory adds a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.CatalogAdminService.CreateCategory(req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "category create failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory edits a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	category, err := h.CatalogAdminService.UpdateCategory(uint(categoryID), req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "category update failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "invalid category id", nil)
		return
	}
	if err := h.CatalogAdminService.DeleteCategory(uint(categoryID)); err != nil {
		respondCatalogAdminError(c, err, "category delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// BrandRequest is the brand create/update payload.
type BrandRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Logo     string `json:"logo"`
	IsActive *bool  `json:"is_active"`
}

func (r BrandRequest) toInput() service.BrandInput {
	input := service.BrandInput{
		Name:     r.Name,
		Slug:     r.Slug,
		Logo:     r.Logo,
		IsActive: true,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

// CreateBrand adds a brand.
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand, err := h.CatalogAdminService.CreateBrand(req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "brand create failed")
		return
	}
	response.Success(c, brand)
}

// UpdateBrand edits a brand.
func (h *Handler) UpdateBrand(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || brandID == 0 {
		respondError(c, response.CodeBadRequest, "invalid brand id", nil)
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	brand, err := h.CatalogAdminService.UpdateBrand(uint(brandID), req.toInput())
	if err != nil {
		respondCatalogAdminError(c, err, "brand update failed")
		return
	}
	response.Success(c, brand)
}

// DeleteBrand removes a brand.
func (h *Handler) DeleteBrand(c *gin.Context) {
	brandID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || brandID == 0 {
		respondError(c, response.CodeBadRequest, "invalid brand id", nil)
		return
	}
	if err := h.CatalogAdminService.DeleteBrand(uint(brandID)); err != nil {
		respondCatalogAdminError(c, err, "brand delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
