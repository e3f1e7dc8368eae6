package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// CartItem is one line of a cart with the price snapshotted at add time.
type CartItem struct {
	VariantID int     `json:"variant_id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	TaxRate   float64 `json:"tax_rate"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// CartStore holds open carts in memory; carts are a screen-lifetime concern
// and are not persisted.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: map[string]*Cart{}}
}

func (s *CartStore) Create() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := &Cart{ID: uuid.NewString(), CreatedAt: time.Now()}
	s.carts[cart.ID] = cart
	return *cart
}

func (s *CartStore) Get(id string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[id]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	return *cart, nil
}

// AddItem appends a line, merging quantities when the SKU is already present.
func (s *CartStore) AddItem(cartID string, item CartItem) (Cart, error) {
	if item.Quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].SKU == item.SKU {
			cart.Items[i].Quantity += item.Quantity
			return *cart, nil
		}
	}
	cart.Items = append(cart.Items, item)
	return *cart, nil
}

// SetQuantity changes a line's quantity; zero removes the line.
func (s *CartStore) SetQuantity(cartID, sku string, quantity int) (Cart, error) {
	if quantity < 0 {
		return Cart{}, ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].SKU != sku {
			continue
		}
		if quantity == 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		return *cart, nil
	}
	return Cart{}, ErrLineNotFound
}

func (s *CartStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}
