package repo

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrVariantNotFound       = errors.New("variant not found")
	ErrInventoryNotFound     = errors.New("inventory not found")
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrOrderNotFound         = errors.New("purchase order not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value in unique column")
	ErrInvalidQuantityChange = errors.New("quantity change would drop stock below zero")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrOrderNotOpen          = errors.New("purchase order is not open")
)
