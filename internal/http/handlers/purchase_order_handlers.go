package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	models "github.com/khanhvo/retail-backoffice/internal/models"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

// CreatePurchaseOrderHandler godoc
// @Summary Create a purchase order in the ordered state
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body PurchaseOrderRequest true "Order to place"
// @Success 201 {object} models.PurchaseOrder
// @Failure 400 {object} map[string]string
// @Failure 404 {string} string "Supplier or variant not found"
// @Router /purchase-orders [post]
func CreatePurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PurchaseOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validatePurchaseOrder(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	if _, err := supplierRepo.GetByID(req.SupplierID); err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
		return
	}

	order := models.PurchaseOrder{
		Code:       "PO-" + strings.ToUpper(uuid.NewString()[:8]),
		SupplierID: req.SupplierID,
		Status:     models.PurchaseOrderOrdered,
		Note:       req.Note,
		CreatedAt:  time.Now().Format(time.RFC3339),
		Items:      make([]models.PurchaseOrderItem, len(req.Items)),
	}
	for i, item := range req.Items {
		if _, err := variantRepo.GetByID(item.VariantID); err != nil {
			if errors.Is(err, repo.ErrVariantNotFound) {
				http.Error(w, "variant not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch variant", http.StatusInternalServerError)
			return
		}
		order.Items[i] = models.PurchaseOrderItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}

	created, err := orderRepo.Create(order)
	if err != nil {
		http.Error(w, "could not create purchase order", http.StatusInternalServerError)
		return
	}

	logger.Info("purchase order placed",
		zap.String("code", created.Code),
		zap.Int("supplier_id", created.SupplierID),
		zap.Int("items", len(created.Items)))
	writeJSON(w, http.StatusCreated, created)
}

// GetPurchaseOrdersHandler godoc
// @Summary List all purchase orders
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PurchaseOrder
// @Router /purchase-orders [get]
func GetPurchaseOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := orderRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch purchase orders", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetPurchaseOrderByIDHandler godoc
// @Summary Get a purchase order with its items
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Failure 404 {string} string "Not found"
// @Router /purchase-orders/{id} [get]
func GetPurchaseOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "purchase order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch purchase order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ReceivePurchaseOrderHandler godoc
// @Summary Mark a purchase order received and book its stock in
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Order is not in the ordered state"
// @Router /purchase-orders/{id}/receive [post]
func ReceivePurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.Receive(id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrOrderNotFound):
			http.Error(w, "purchase order not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrOrderNotOpen):
			http.Error(w, "purchase order is not in the ordered state", http.StatusConflict)
		default:
			http.Error(w, "could not receive purchase order", http.StatusInternalServerError)
		}
		return
	}

	logger.Info("purchase order received", zap.String("code", order.Code))
	writeJSON(w, http.StatusOK, order)
}

// CancelPurchaseOrderHandler godoc
// @Summary Cancel a purchase order that has not been received
// @Tags purchase-orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.PurchaseOrder
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Order is not in the ordered state"
// @Router /purchase-orders/{id}/cancel [post]
func CancelPurchaseOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrOrderNotFound):
			http.Error(w, "purchase order not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrOrderNotOpen):
			http.Error(w, "purchase order is not in the ordered state", http.StatusConflict)
		default:
			http.Error(w, "could not cancel purchase order", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}
