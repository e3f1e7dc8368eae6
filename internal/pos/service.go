package pos

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

// Service drives the point-of-sale screen: cart management and checkout.
type Service struct {
	carts    *CartStore
	variants repo.VariantRepository
	sales    repo.SaleRepository
	log      *zap.Logger
}

func NewService(variants repo.VariantRepository, sales repo.SaleRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:    NewCartStore(),
		variants: variants,
		sales:    sales,
		log:      logger,
	}
}

func (s *Service) CreateCart() Cart {
	return s.carts.Create()
}

func (s *Service) GetCart(id string) (Cart, error) {
	return s.carts.Get(id)
}

// AddToCart resolves the SKU against the catalog and snapshots name, price
// and tax rate onto the cart line.
func (s *Service) AddToCart(cartID, sku string, quantity int) (Cart, error) {
	variant, err := s.variants.GetBySKU(sku)
	if err != nil {
		return Cart{}, err
	}
	taxRate := 0.0
	if variant.TaxApplied {
		taxRate = variant.OutputTax
	}
	return s.carts.AddItem(cartID, CartItem{
		VariantID: variant.ID,
		SKU:       variant.SKU,
		Name:      variant.Name,
		UnitPrice: variant.RetailPrice,
		TaxRate:   taxRate,
		Quantity:  quantity,
	})
}

func (s *Service) SetQuantity(cartID, sku string, quantity int) (Cart, error) {
	return s.carts.SetQuantity(cartID, sku, quantity)
}

// Totals computes subtotal, tax and total of a cart.
func Totals(cart Cart) (subtotal, tax, total float64) {
	for _, item := range cart.Items {
		amount := item.UnitPrice * float64(item.Quantity)
		subtotal += amount
		tax += amount * item.TaxRate / 100
	}
	return subtotal, tax, subtotal + tax
}

// Checkout books the cart as a sale. Stock decrements and the sale row commit
// together in the sale repository's transaction; on success the cart is gone.
func (s *Service) Checkout(cartID string, cashierID int, paymentMethod string) (models.Sale, error) {
	cart, err := s.carts.Get(cartID)
	if err != nil {
		return models.Sale{}, err
	}
	if len(cart.Items) == 0 {
		return models.Sale{}, ErrEmptyCart
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	subtotal, tax, total := Totals(cart)
	sale := models.Sale{
		Code:          saleCode(),
		CashierID:     cashierID,
		Subtotal:      subtotal,
		TaxTotal:      tax,
		Total:         total,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	for _, item := range cart.Items {
		sale.Items = append(sale.Items, models.SaleItem{
			VariantID: item.VariantID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.UnitPrice * float64(item.Quantity),
		})
	}

	created, err := s.sales.Create(sale)
	if err != nil {
		return models.Sale{}, fmt.Errorf("checkout cart %s: %w", cartID, err)
	}

	s.carts.Delete(cartID)
	s.log.Info("sale completed",
		zap.String("code", created.Code),
		zap.Int("items", len(created.Items)),
		zap.Float64("total", created.Total))
	return created, nil
}

func saleCode() string {
	return "POS-" + strings.ToUpper(uuid.NewString()[:8])
}
