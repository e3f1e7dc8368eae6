package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	models "github.com/khanhvo/retail-backoffice/internal/models"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

// CreateVariantHandler godoc
// @Summary Create a product variant
// @Description Adds a variant with its inventory record to an existing product
// @Tags variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variant body VariantRequest true "Variant to add"
// @Success 201 {object} VariantResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {string} string "Duplicate SKU"
// @Router /variants [post]
func CreateVariantHandler(w http.ResponseWriter, r *http.Request) {
	var req VariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateVariant(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	if _, err := productRepo.GetByID(req.ProductID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	variant := models.ProductVariant{
		ProductID:      req.ProductID,
		SKU:            req.SKU,
		Barcode:        req.Barcode,
		Name:           req.Name,
		Weight:         req.Weight,
		WeightUnit:     req.WeightUnit,
		Unit:           req.Unit,
		ImageURL:       req.ImageURL,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		ImportPrice:    req.ImportPrice,
		TaxApplied:     req.TaxApplied,
		InputTax:       req.InputTax,
		OutputTax:      req.OutputTax,
	}
	created, err := variantRepo.Create(variant)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create variant: SKU duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not create variant", http.StatusInternalServerError)
		return
	}

	inv, err := inventoryRepo.Create(models.Inventory{
		VariantID:    created.ID,
		InitialStock: req.InitialStock,
		CurrentStock: req.InitialStock,
		MinStock:     req.MinStock,
		MaxStock:     req.MaxStock,
		Location:     req.Location,
	})
	if err != nil {
		http.Error(w, "could not create inventory record", http.StatusInternalServerError)
		return
	}

	invalidateCatalogCache()
	writeJSON(w, http.StatusCreated, VariantResponse{Variant: created, Inventory: &inv})
}

// GetVariantByIDHandler godoc
// @Summary Get a variant by ID, with inventory and warranty
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Variant ID"
// @Success 200 {object} VariantResponse
// @Failure 404 {string} string "Not found"
// @Router /variants/{id} [get]
func GetVariantByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid variant ID", http.StatusBadRequest)
		return
	}

	variant, err := variantRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrVariantNotFound) {
			http.Error(w, "variant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch variant", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, buildVariantResponse(variant))
}

// GetVariantBySKUHandler godoc
// @Summary Get a variant by SKU, with inventory and warranty
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param sku path string true "Variant SKU"
// @Success 200 {object} VariantResponse
// @Failure 404 {string} string "Not found"
// @Router /variants/sku/{sku} [get]
func GetVariantBySKUHandler(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		http.Error(w, "invalid SKU", http.StatusBadRequest)
		return
	}

	variant, err := variantRepo.GetBySKU(sku)
	if err != nil {
		if errors.Is(err, repo.ErrVariantNotFound) {
			http.Error(w, "variant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch variant", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, buildVariantResponse(variant))
}

// GetVariantsByProductHandler godoc
// @Summary List the variants of a product, with inventory and warranty
// @Tags variants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {array} VariantResponse
// @Failure 404 {string} string "Not found"
// @Router /products/{id}/variants [get]
func GetVariantsByProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	variants, err := variantRepo.GetByProductID(id)
	if err != nil {
		http.Error(w, "could not fetch variants", http.StatusInternalServerError)
		return
	}

	result := make([]VariantResponse, len(variants))
	for i, v := range variants {
		result[i] = buildVariantResponse(v)
	}
	writeJSON(w, http.StatusOK, result)
}

// UpdateVariantHandler godoc
// @Summary Update a variant
// @Tags variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Variant ID"
// @Param variant body VariantRequest true "Updated variant"
// @Success 200 {object} VariantResponse
// @Failure 404 {string} string "Not found"
// @Router /variants/{id} [put]
func UpdateVariantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid variant ID", http.StatusBadRequest)
		return
	}

	var req VariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateVariant(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	variant := models.ProductVariant{
		ID:             id,
		ProductID:      req.ProductID,
		SKU:            req.SKU,
		Barcode:        req.Barcode,
		Name:           req.Name,
		Weight:         req.Weight,
		WeightUnit:     req.WeightUnit,
		Unit:           req.Unit,
		ImageURL:       req.ImageURL,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		ImportPrice:    req.ImportPrice,
		TaxApplied:     req.TaxApplied,
		InputTax:       req.InputTax,
		OutputTax:      req.OutputTax,
	}
	updated, err := variantRepo.Update(variant)
	if err != nil {
		if errors.Is(err, repo.ErrVariantNotFound) {
			http.Error(w, "variant not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not update variant: SKU duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "could not update variant", http.StatusInternalServerError)
		return
	}

	invalidateCatalogCache()
	writeJSON(w, http.StatusOK, buildVariantResponse(updated))
}

// DeleteVariantHandler godoc
// @Summary Delete a variant
// @Tags variants
// @Security BearerAuth
// @Param id path int true "Variant ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Not found"
// @Router /variants/{id} [delete]
func DeleteVariantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid variant ID", http.StatusBadRequest)
		return
	}

	if err := variantRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrVariantNotFound) {
			http.Error(w, "variant not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete variant", http.StatusInternalServerError)
		return
	}

	invalidateCatalogCache()
	w.WriteHeader(http.StatusNoContent)
}

// LowStockHandler godoc
// @Summary List inventory records at or below their minimum stock
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Inventory
// @Router /inventory/low-stock [get]
func LowStockHandler(w http.ResponseWriter, r *http.Request) {
	records, err := inventoryRepo.LowStock()
	if err != nil {
		http.Error(w, "could not fetch low-stock records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// AdjustStockHandler godoc
// @Summary Adjust the current stock of a variant by a delta
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Variant ID"
// @Param adjustment body QuantityAdjustmentRequest true "Delta to apply"
// @Success 200 {object} models.Inventory
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Router /variants/{id}/stock [post]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid variant ID", http.StatusBadRequest)
		return
	}

	var req QuantityAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	inv, err := inventoryRepo.AdjustStock(id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInventoryNotFound):
			http.Error(w, "inventory record not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInvalidQuantityChange):
			http.Error(w, "adjustment would take stock negative", http.StatusBadRequest)
		default:
			http.Error(w, "could not adjust stock", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

func buildVariantResponse(v models.ProductVariant) VariantResponse {
	resp := VariantResponse{Variant: v}
	if inv, err := inventoryRepo.GetByVariantID(v.ID); err == nil {
		resp.Inventory = &inv
	}
	if wr, err := warrantyRepo.GetByVariantID(v.ID); err == nil {
		resp.Warranty = &wr
	}
	return resp
}
