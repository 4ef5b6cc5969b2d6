package service

import (
	"strings"

	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
)

// CatalogAdminService manages products, categories and brands for staff.
type CatalogAdminService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
}

// NewCatalogAdminService creates the catalog admin service.
func NewCatalogAdminService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository) *CatalogAdminService {
	return &CatalogAdminService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ProductInput is the typed product create/update command.
type ProductInput struct {
	Name           string
	Slug           string
	Description    string
	CategoryID     uint
	BrandID        *uint
	Price          models.Money
	DiscountPrice  *models.Money
	Stock          int
	WarrantyMonths int
	MainImage      string
	IsFeatured     bool
	IsActive       bool
	Images         []models.ProductImage
	Specifications []models.ProductSpecification
}

// ListProducts lists the catalog for staff, inactive items included.
func (s *CatalogAdminService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct fetches one product for editing.
func (s *CatalogAdminService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct adds a catalog item.
func (s *CatalogAdminService) CreateProduct(input ProductInput) (*models.Product, error) {
	slug := normalizeSlug(input.Slug)
	existing, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if input.BrandID != nil {
		brand, err := s.brandRepo.GetByID(*input.BrandID)
		if err != nil {
			return nil, err
		}
		if brand == nil {
			return nil, ErrBrandNotFound
		}
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Slug:           slug,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		BrandID:        input.BrandID,
		Price:          input.Price,
		DiscountPrice:  input.DiscountPrice,
		Stock:          input.Stock,
		WarrantyMonths: input.WarrantyMonths,
		MainImage:      input.MainImage,
		IsFeatured:     input.IsFeatured,
		IsActive:       input.IsActive,
		Images:         input.Images,
		Specifications: input.Specifications,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct edits a catalog item.
func (s *CatalogAdminService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	slug := normalizeSlug(input.Slug)
	if slug != product.Slug {
		existing, err := s.productRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugTaken
		}
	}

	oldSlug := product.Slug
	product.Name = strings.TrimSpace(input.Name)
	product.Slug = slug
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	product.Stock = input.Stock
	product.WarrantyMonths = input.WarrantyMonths
	product.MainImage = input.MainImage
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	invalidateProductCache(oldSlug)
	if slug != oldSlug {
		invalidateProductCache(slug)
	}
	return product, nil
}

// DeleteProduct soft-deletes a catalog item. Sold order lines keep their
// snapshot fields.
func (s *CatalogAdminService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	invalidateProductCache(product.Slug)
	return nil
}

// CategoryInput is the typed category command.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Image       string
	IsActive    bool
	SortOrder   int
}

// CreateCategory adds a category.
func (s *CatalogAdminService) CreateCategory(input CategoryInput) (*models.Category, error) {
	slug := normalizeSlug(input.Slug)
	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory edits a category.
func (s *CatalogAdminService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Slug = normalizeSlug(input.Slug)
	category.Description = input.Description
	category.Image = input.Image
	category.IsActive = input.IsActive
	category.SortOrder = input.SortOrder
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogAdminService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

// BrandInput is the typed brand command.
type BrandInput struct {
	Name     string
	Slug     string
	Logo     string
	IsActive bool
}

// CreateBrand adds a brand.
func (s *CatalogAdminService) CreateBrand(input BrandInput) (*models.Brand, error) {
	brand := &models.Brand{
		Name:     strings.TrimSpace(input.Name),
		Slug:     normalizeSlug(input.Slug),
		Logo:     input.Logo,
		IsActive: input.IsActive,
	}
	if err := s.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// UpdateBrand edits a brand.
func (s *CatalogAdminService) UpdateBrand(id uint, input BrandInput) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	brand.Name = strings.TrimSpace(input.Name)
	brand.Slug = normalizeSlug(input.Slug)
	brand.Logo = input.Logo
	brand.IsActive = input.IsActive
	if err := s.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand removes a brand.
func (s *CatalogAdminService) DeleteBrand(id uint) error {
	brand, err := s.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return ErrBrandNotFound
	}
	return s.brandRepo.Delete(id)
}

func normalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	return strings.ReplaceAll(slug, " ", "-")
}
