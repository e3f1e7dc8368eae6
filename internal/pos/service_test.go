package pos_test

import (
	"errors"
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/pos"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

func newTestService(t *testing.T) (*pos.Service, *repo.MemoryCatalog) {
	t.Helper()
	catalog := repo.NewMemoryCatalog()

	product, err := catalog.Products().Create(models.Product{Name: "Nước suối Lavie"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	chai, err := catalog.Variants().Create(models.ProductVariant{
		ProductID:   product.ID,
		SKU:         "CHAI",
		Name:        "Nước suối Lavie - chai",
		RetailPrice: 10000,
		TaxApplied:  true,
		OutputTax:   10,
	})
	if err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	if _, err := catalog.Inventories().Create(models.Inventory{
		VariantID: chai.ID, InitialStock: 10, CurrentStock: 10,
	}); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	sales := repo.NewMemorySaleRepository(catalog)
	return pos.NewService(catalog.Variants(), sales, nil), catalog
}

func TestAddToCart_SnapshotsVariant(t *testing.T) {
	svc, _ := newTestService(t)
	cart := svc.CreateCart()

	cart, err := svc.AddToCart(cart.ID, "CHAI", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Name != "Nước suối Lavie - chai" || item.UnitPrice != 10000 || item.TaxRate != 10 {
		t.Errorf("snapshot wrong: %+v", item)
	}
	if item.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", item.Quantity)
	}
}

func TestAddToCart_MergesSameSKU(t *testing.T) {
	svc, _ := newTestService(t)
	cart := svc.CreateCart()

	if _, err := svc.AddToCart(cart.ID, "CHAI", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddToCart(cart.ID, "CHAI", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Errorf("expected one merged line with quantity 5, got %+v", cart.Items)
	}
}

func TestAddToCart_UnknownSKU(t *testing.T) {
	svc, _ := newTestService(t)
	cart := svc.CreateCart()

	if _, err := svc.AddToCart(cart.ID, "NOPE", 1); !errors.Is(err, repo.ErrVariantNotFound) {
		t.Errorf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	svc, _ := newTestService(t)
	cart := svc.CreateCart()
	if _, err := svc.AddToCart(cart.ID, "CHAI", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.SetQuantity(cart.ID, "CHAI", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected the line removed, got %+v", cart.Items)
	}
}

func TestTotals(t *testing.T) {
	cart := pos.Cart{Items: []pos.CartItem{
		{UnitPrice: 10000, TaxRate: 10, Quantity: 2},
		{UnitPrice: 5000, Quantity: 1},
	}}
	subtotal, tax, total := pos.Totals(cart)
	if subtotal != 25000 {
		t.Errorf("expected subtotal 25000, got %v", subtotal)
	}
	if tax != 2000 {
		t.Errorf("expected tax 2000, got %v", tax)
	}
	if total != 27000 {
		t.Errorf("expected total 27000, got %v", total)
	}
}

func TestCheckout_BooksSaleAndDecrementsStock(t *testing.T) {
	svc, catalog := newTestService(t)
	cart := svc.CreateCart()
	if _, err := svc.AddToCart(cart.ID, "CHAI", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sale, err := svc.Checkout(cart.ID, 7, "cash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.Code == "" || sale.CashierID != 7 || sale.PaymentMethod != "cash" {
		t.Errorf("unexpected sale header: %+v", sale)
	}
	if sale.Subtotal != 30000 || sale.TaxTotal != 3000 || sale.Total != 33000 {
		t.Errorf("unexpected totals: %+v", sale)
	}
	if len(sale.Items) != 1 || sale.Items[0].Amount != 30000 {
		t.Errorf("unexpected sale items: %+v", sale.Items)
	}

	chai, _ := catalog.Variants().GetBySKU("CHAI")
	inv, err := catalog.Inventories().GetByVariantID(chai.ID)
	if err != nil {
		t.Fatalf("inventory lookup: %v", err)
	}
	if inv.CurrentStock != 7 {
		t.Errorf("expected stock 7 after selling 3 of 10, got %d", inv.CurrentStock)
	}

	if _, err := svc.GetCart(cart.ID); !errors.Is(err, pos.ErrCartNotFound) {
		t.Errorf("expected the cart gone after checkout, got %v", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newTestService(t)
	cart := svc.CreateCart()

	if _, err := svc.Checkout(cart.ID, 1, "cash"); !errors.Is(err, pos.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_InsufficientStockAbortsSale(t *testing.T) {
	svc, catalog := newTestService(t)
	cart := svc.CreateCart()
	if _, err := svc.AddToCart(cart.ID, "CHAI", 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Checkout(cart.ID, 1, "cash"); !errors.Is(err, repo.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	chai, _ := catalog.Variants().GetBySKU("CHAI")
	inv, _ := catalog.Inventories().GetByVariantID(chai.ID)
	if inv.CurrentStock != 10 {
		t.Errorf("failed checkout must not move stock, got %d", inv.CurrentStock)
	}
	if _, err := svc.GetCart(cart.ID); err != nil {
		t.Errorf("cart must survive a failed checkout: %v", err)
	}
}
