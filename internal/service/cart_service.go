package service

import (
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
)

// CartService manages per-user carts.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponSvc   *CouponService
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, couponSvc *CouponService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponSvc:   couponSvc,
	}
}

// CartItemDetail is one cart line with its product snapshot.
type CartItemDetail struct {
	ProductID   uint         `json:"product_id"`
	ProductName string       `json:"product_name"`
	Slug        string       `json:"slug"`
	Image       string       `json:"image"`
	UnitPrice   models.Money `json:"unit_price"`
	Quantity    int          `json:"quantity"`
	LineTotal   models.Money `json:"line_total"`
	Stock       int          `json:"stock"`
	StockStatus string       `json:"stock_status"`
}

// CartDetail is the cart plus its priced totals.
type CartDetail struct {
	Items      []CartItemDetail `json:"items"`
	Totals     OrderTotals      `json:"totals"`
	CouponCode string           `json:"coupon_code,omitempty"`
}

// GetCart returns the cart with totals. A coupon code, when given, is quoted
// against the subtotal without consuming a use.
func (s *CartService) GetCart(userID uint, couponCode string) (*CartDetail, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{Items: make([]CartItemDetail, 0, len(items))}
	lines := make([]PricingLine, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		unit := item.Product.FinalPrice()
		lineTotal := ComputeSubtotal([]PricingLine{{UnitPrice: unit, Quantity: item.Quantity}})
		detail.Items = append(detail.Items, CartItemDetail{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Slug:        item.Product.Slug,
			Image:       item.Product.MainImage,
			UnitPrice:   unit,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
			Stock:       item.Product.Stock,
			StockStatus: item.Product.StockStatus(),
		})
		lines = append(lines, PricingLine{UnitPrice: unit, Quantity: item.Quantity})
	}

	subtotal := ComputeSubtotal(lines)
	discount := models.Money{}
	if couponCode != "" && len(lines) > 0 {
		quoted, _, err := s.couponSvc.Quote(subtotal, couponCode)
		if err != nil {
			return nil, err
		}
		discount = quoted
		detail.CouponCode = NormalizeCode(couponCode)
	}
	detail.Totals = ComputeTotals(subtotal, discount)
	return detail, nil
}

// AddItem puts one more unit of the product in the cart, capped at stock.
func (s *CartService) AddItem(userID, productID uint) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if product.Stock <= 0 {
		return nil, ErrStockInsufficient
	}

	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
	} else if item.Quantity < product.Stock {
		item.Quantity++
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the quantity of one line, bounded by stock.
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if quantity > product.Stock {
		return ErrStockInsufficient
	}

	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.UpdateQuantity(userID, productID, quantity)
}

// RemoveItem drops one line from the cart.
func (s *CartService) RemoveItem(userID, productID uint) error {
	item, err := s.cartRepo.GetItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Remove(userID, productID)
}
