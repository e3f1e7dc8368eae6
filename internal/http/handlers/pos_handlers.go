package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/khanhvo/retail-backoffice/internal/auth"
	"github.com/khanhvo/retail-backoffice/internal/pos"
	"github.com/khanhvo/retail-backoffice/internal/receipt"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

// CreateCartHandler godoc
// @Summary Open a new POS cart
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Success 201 {object} pos.Cart
// @Router /pos/carts [post]
func CreateCartHandler(w http.ResponseWriter, r *http.Request) {
	cart := posService.CreateCart()
	writeJSON(w, http.StatusCreated, cart)
}

// GetCartHandler godoc
// @Summary Get an open cart
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} pos.Cart
// @Failure 404 {string} string "Not found"
// @Router /pos/carts/{id} [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	cart, err := posService.GetCart(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "cart not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddCartItemHandler godoc
// @Summary Add a variant to a cart by SKU
// @Tags pos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param item body CartItemRequest true "SKU and quantity"
// @Success 200 {object} pos.Cart
// @Failure 400 {string} string "Invalid quantity"
// @Failure 404 {string} string "Cart or SKU not found"
// @Router /pos/carts/{id}/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	cart, err := posService.AddToCart(chi.URLParam(r, "id"), req.SKU, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrCartNotFound):
			http.Error(w, "cart not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrVariantNotFound):
			http.Error(w, "no variant with that SKU", http.StatusNotFound)
		case errors.Is(err, pos.ErrInvalidQuantity):
			http.Error(w, "quantity must be positive", http.StatusBadRequest)
		default:
			http.Error(w, "could not add item", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// SetCartQuantityHandler godoc
// @Summary Change a cart line's quantity; zero removes the line
// @Tags pos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param sku path string true "Line SKU"
// @Param quantity body CartQuantityRequest true "New quantity"
// @Success 200 {object} pos.Cart
// @Failure 400 {string} string "Invalid quantity"
// @Failure 404 {string} string "Cart or line not found"
// @Router /pos/carts/{id}/items/{sku} [put]
func SetCartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req CartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	cart, err := posService.SetQuantity(chi.URLParam(r, "id"), chi.URLParam(r, "sku"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrCartNotFound):
			http.Error(w, "cart not found", http.StatusNotFound)
		case errors.Is(err, pos.ErrLineNotFound):
			http.Error(w, "cart line not found", http.StatusNotFound)
		case errors.Is(err, pos.ErrInvalidQuantity):
			http.Error(w, "quantity cannot be negative", http.StatusBadRequest)
		default:
			http.Error(w, "could not update cart", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// CheckoutHandler godoc
// @Summary Book a cart as a sale and return its receipt text
// @Tags pos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Param checkout body CheckoutRequest true "Payment details"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {string} string "Empty cart"
// @Failure 404 {string} string "Cart not found"
// @Failure 409 {string} string "Insufficient stock"
// @Router /pos/carts/{id}/checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	sale, err := posService.Checkout(chi.URLParam(r, "id"), cashierFromToken(r), req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrCartNotFound):
			http.Error(w, "cart not found", http.StatusNotFound)
		case errors.Is(err, pos.ErrEmptyCart):
			http.Error(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, repo.ErrInsufficientStock):
			http.Error(w, "insufficient stock for one or more items", http.StatusConflict)
		default:
			http.Error(w, "could not complete checkout", http.StatusInternalServerError)
		}
		return
	}

	invalidateCatalogCache()
	writeJSON(w, http.StatusCreated, CheckoutResponse{
		Sale:    sale,
		Receipt: receipt.Render(sale, receiptOpts),
	})
}

// GetSalesHandler godoc
// @Summary List completed sales
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Sale
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := saleRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetSaleByIDHandler godoc
// @Summary Get a sale with its items
// @Tags pos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} models.Sale
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// GetReceiptHandler godoc
// @Summary Render the receipt text of a completed sale
// @Tags pos
// @Produce plain
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {string} string "Receipt text"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id}/receipt [get]
func GetReceiptHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(receipt.Render(sale, receiptOpts)))
}

// cashierFromToken pulls the authenticated user ID out of the bearer token so
// sales record who rang them up.
func cashierFromToken(r *http.Request) int {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return 0
	}
	if sub, ok := claims["sub"].(float64); ok {
		return int(sub)
	}
	return 0
}
