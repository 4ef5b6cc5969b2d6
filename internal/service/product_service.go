package service

import (
	"context"
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/cache"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
)

const productCacheTTL = 5 * time.Minute

func productCacheKey(slug string) string {
	return "product:slug:" + slug
}

// invalidateProductCache drops the cached detail page for a slug. Safe to
// call when the cache is disabled.
func invalidateProductCache(slug string) {
	if slug == "" {
		return
	}
	if err := cache.Del(context.Background(), productCacheKey(slug)); err != nil {
		logger.Debugw("product_cache_invalidate_failed", "slug", slug, "error", err)
	}
}

// ProductService serves the public catalog.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewProductService creates the product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ProductSummary is the listing shape with derived pricing fields.
type ProductSummary struct {
	ID                 uint         `json:"id"`
	Name               string       `json:"name"`
	Slug               string       `json:"slug"`
	CategoryID         uint         `json:"category_id"`
	BrandID            *uint        `json:"brand_id,omitempty"`
	Price              models.Money `json:"price"`
	FinalPrice         models.Money `json:"final_price"`
	DiscountPercentage int          `json:"discount_percentage"`
	MainImage          string       `json:"main_image"`
	StockStatus        string       `json:"stock_status"`
	IsFeatured         bool         `json:"is_featured"`
}

// List returns catalog products matching the filter.
func (s *ProductService) List(filter repository.ProductListFilter) ([]ProductSummary, int64, error) {
	active := true
	filter.IsActive = &active

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarizeProduct(&products[i]))
	}
	return summaries, total, nil
}

// GetBySlug returns one product for the detail page. Details are cached
// briefly; stock status may lag by up to the TTL.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	ctx := context.Background()

	var cached models.Product
	if hit, err := cache.GetJSON(ctx, productCacheKey(slug), &cached); err == nil && hit {
		if !cached.IsActive {
			return nil, ErrProductNotFound
		}
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	if err := cache.SetJSON(ctx, productCacheKey(slug), product, productCacheTTL); err != nil {
		logger.Debugw("product_cache_set_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// ListCategories returns the active categories.
func (s *ProductService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}

// ListBrands returns the active brands.
func (s *ProductService) ListBrands() ([]models.Brand, error) {
	return s.brandRepo.ListActive()
}

func summarizeProduct(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		CategoryID:         p.CategoryID,
		BrandID:            p.BrandID,
		Price:              p.Price,
		FinalPrice:         p.FinalPrice(),
		DiscountPercentage: p.DiscountPercentage(),
		MainImage:          p.MainImage,
		StockStatus:        p.StockStatus(),
		IsFeatured:         p.IsFeatured,
	}
}
