package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	models "github.com/khanhvo/retail-backoffice/internal/models"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

// CreateSupplierHandler godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body SupplierRequest true "Supplier to add"
// @Success 201 {object} models.Supplier
// @Failure 400 {object} map[string]string
// @Router /suppliers [post]
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateSupplier(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	supplier := models.Supplier{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		TaxCode:   req.TaxCode,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := supplierRepo.Create(supplier)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create supplier: name duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not create supplier", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetSuppliersHandler godoc
// @Summary List all suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Supplier
// @Router /suppliers [get]
func GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch suppliers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// GetSupplierByIDHandler godoc
// @Summary Get supplier by ID
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [get]
func GetSupplierByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	supplier, err := supplierRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch supplier", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, supplier)
}

// UpdateSupplierHandler godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param supplier body SupplierRequest true "Updated supplier"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [put]
func UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateSupplier(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	supplier := models.Supplier{
		ID:        id,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		TaxCode:   req.TaxCode,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	updated, err := supplierRepo.Update(supplier)
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update supplier", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteSupplierHandler godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [delete]
func DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	if err := supplierRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete supplier", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
