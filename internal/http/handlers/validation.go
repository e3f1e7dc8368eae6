package handlers

import (
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}

func validateVariant(v VariantRequest) []ValidationError {
	errs := []ValidationError{}
	if v.ProductID <= 0 {
		errs = append(errs, ValidationError{Field: "ProductID", Description: "ProductID is required"})
	}
	if strings.TrimSpace(v.SKU) == "" {
		errs = append(errs, ValidationError{Field: "SKU", Description: "SKU is required"})
	}
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if v.RetailPrice < 0 || v.WholesalePrice < 0 || v.ImportPrice < 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Prices cannot be negative"})
	}
	if v.InitialStock < 0 {
		errs = append(errs, ValidationError{Field: "InitialStock", Description: "Initial stock cannot be negative"})
	}
	return errs
}

func validateSupplier(s SupplierRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	return errs
}

func validatePurchaseOrder(o PurchaseOrderRequest) []ValidationError {
	errs := []ValidationError{}
	if o.SupplierID <= 0 {
		errs = append(errs, ValidationError{Field: "SupplierID", Description: "SupplierID is required"})
	}
	if len(o.Items) == 0 {
		errs = append(errs, ValidationError{Field: "Items", Description: "At least one item is required"})
	}
	for _, item := range o.Items {
		if item.VariantID <= 0 || item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: "Items", Description: "Items need a variant and a positive quantity"})
			break
		}
	}
	return errs
}
