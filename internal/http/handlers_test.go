package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/khanhvo/retail-backoffice/docs"
	"github.com/khanhvo/retail-backoffice/internal/auth"
	api "github.com/khanhvo/retail-backoffice/internal/http"
	"github.com/khanhvo/retail-backoffice/internal/http/handlers"
	rl "github.com/khanhvo/retail-backoffice/internal/http/rate_limiter"
	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/pos"
	repo "github.com/khanhvo/retail-backoffice/internal/repo"
)

var (
	catalog *repo.MemoryCatalog
	token   string
)

func init() {
	resetState()
	r := api.NewRouter()
	newToken, err := registerUser(r, "admin", "secret-password")
	if err != nil {
		panic(fmt.Sprintf("error registering test user: %v", err))
	}
	token = newToken
}

// userRepo is kept across resets so the registered test user survives.
var userRepo = repo.NewMemoryUserRepository()

// resetState rebuilds every repository on a fresh in-memory catalog. Rate
// limiter state is cleared too: every httptest request shares one remote
// address, and tests should not throttle each other.
func resetState() {
	rl.CleanupAllVisitors()
	catalog = repo.NewMemoryCatalog()
	saleRepo := repo.NewMemorySaleRepository(catalog)

	handlers.SetProductRepo(catalog.Products())
	handlers.SetVariantRepo(catalog.Variants())
	handlers.SetInventoryRepo(catalog.Inventories())
	handlers.SetWarrantyRepo(catalog.Warranties())
	handlers.SetConversionRepo(catalog.Conversions())
	handlers.SetImportStore(catalog.ImportStore())
	handlers.SetSupplierRepo(repo.NewMemorySupplierRepository())
	handlers.SetPurchaseOrderRepo(repo.NewMemoryPurchaseOrderRepository(catalog))
	handlers.SetSaleRepo(saleRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetPOSService(pos.NewService(catalog.Variants(), saleRepo, nil))
}

func registerUser(r http.Handler, username, password string) (string, error) {
	body, _ := json.Marshal(handlers.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		return "", fmt.Errorf("register returned %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func doJSON(t *testing.T, r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter()

	body, _ := json.Marshal(handlers.UserLogin{Username: "admin", Password: "secret-password"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var resp handlers.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := api.NewRouter()

	body, _ := json.Marshal(handlers.UserLogin{Username: "admin", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestSwaggerDocServed(t *testing.T) {
	resetState()
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Retail Back Office API") {
		t.Error("expected the API title in the served document")
	}
}

func TestAuthRequired(t *testing.T) {
	r := api.NewRouter()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized without a token, got %d", w.Code)
	}
}

func TestCreateProductHandler_Valid(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{
		Name:        "Nước suối Lavie",
		ProductType: "Đồ uống",
		Brand:       "Lavie",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handlers.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Nước suối Lavie" || resp.Id == 0 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestDeleteProductHandler_RequiresAdmin(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "Trà xanh"})
	var product handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)
	path := fmt.Sprintf("/products/%d", product.Id)

	// the registered user has the staff role
	w = doJSON(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden for staff, got %d", w.Code)
	}

	adminToken, err := auth.GenerateToken(models.User{ID: 99, Username: "boss", Role: "admin"})
	if err != nil {
		t.Fatalf("error generating admin token: %v", err)
	}
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content for admin, got %d", rec.Code)
	}
}

func TestGetProductsHandler_Filter(t *testing.T) {
	resetState()
	r := api.NewRouter()

	for _, name := range []string{"Nước suối Lavie", "Trà xanh", "Nước ngọt"} {
		w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: name})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed product %q: got %d", name, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/products?name=n%C6%B0%E1%BB%9Bc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var result handlers.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Meta.TotalCount != 2 || len(result.Data) != 2 {
		t.Errorf("expected 2 matches, got %+v", result)
	}
}

func TestVariantLifecycle(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "Nước suối Lavie"})
	var product handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)

	w = doJSON(t, r, http.MethodPost, "/variants", handlers.VariantRequest{
		ProductID:    product.Id,
		SKU:          "CHAI",
		Name:         "Nước suối Lavie - chai",
		RetailPrice:  10000,
		InitialStock: 48,
		MinStock:     10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var created handlers.VariantResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if created.Inventory == nil || created.Inventory.CurrentStock != 48 {
		t.Errorf("expected inventory created with current stock 48, got %+v", created.Inventory)
	}

	w = doJSON(t, r, http.MethodGet, "/variants/sku/CHAI", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var bySKU handlers.VariantResponse
	json.NewDecoder(w.Body).Decode(&bySKU)
	if bySKU.Variant.ID != created.Variant.ID {
		t.Errorf("SKU lookup returned a different variant: %+v", bySKU.Variant)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/products/%d/variants", product.Id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var list []handlers.VariantResponse
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 1 {
		t.Errorf("expected 1 variant for the product, got %d", len(list))
	}
}

func TestAdjustStockHandler_RejectsNegativeResult(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "Trà xanh"})
	var product handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)

	w = doJSON(t, r, http.MethodPost, "/variants", handlers.VariantRequest{
		ProductID: product.Id, SKU: "T1", Name: "Trà xanh - chai", InitialStock: 5,
	})
	var created handlers.VariantResponse
	json.NewDecoder(w.Body).Decode(&created)

	path := fmt.Sprintf("/variants/%d/stock", created.Variant.ID)
	w = doJSON(t, r, http.MethodPost, path, handlers.QuantityAdjustmentRequest{Delta: -10})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an over-draining delta, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, path, handlers.QuantityAdjustmentRequest{Delta: -3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var inv models.Inventory
	json.NewDecoder(w.Body).Decode(&inv)
	if inv.CurrentStock != 2 {
		t.Errorf("expected stock 2 after -3 from 5, got %d", inv.CurrentStock)
	}
}

func importCSV(t *testing.T, r http.Handler, csv string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/products/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	resetState()
	r := api.NewRouter()

	csv := "Tên sản phẩm*,Mã SKU*,Tên phiên bản sản phẩm,Giá bán lẻ,Tồn kho ban đầu\n" +
		"Nước suối Lavie,CHAI,Nước suối Lavie - chai,10000,48\n" +
		",THUNG,Nước suối Lavie - thùng,240000,2\n"

	w := importCSV(t, r, csv)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var result handlers.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Products != 1 || result.Variants != 2 || result.Conversions != 1 {
		t.Errorf("unexpected import result: %+v", result)
	}

	w = doJSON(t, r, http.MethodGet, "/variants/sku/THUNG", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("imported variant not reachable: %d", w.Code)
	}
}

func TestImportProductsHandler_DuplicateSKU(t *testing.T) {
	resetState()
	r := api.NewRouter()

	csv := "Tên sản phẩm*,Mã SKU*,Tên phiên bản sản phẩm\n" +
		"Trà xanh,A1,Trà xanh - chai\n" +
		"Trà xanh,A1,Trà xanh - lốc\n"

	w := importCSV(t, r, csv)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict for a duplicated SKU, got %d: %s", w.Code, w.Body.String())
	}
	products, variants, _, _, _ := catalog.Counts()
	if products != 0 || variants != 0 {
		t.Errorf("aborted import must write nothing, got %d products, %d variants", products, variants)
	}
}

func TestPurchaseOrderFlow(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "Nước suối Lavie"})
	var product handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)

	w = doJSON(t, r, http.MethodPost, "/variants", handlers.VariantRequest{
		ProductID: product.Id, SKU: "CHAI", Name: "Nước suối Lavie - chai", InitialStock: 10,
	})
	var variant handlers.VariantResponse
	json.NewDecoder(w.Body).Decode(&variant)

	w = doJSON(t, r, http.MethodPost, "/suppliers", handlers.SupplierRequest{Name: "NPP Minh Phát"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var supplier models.Supplier
	json.NewDecoder(w.Body).Decode(&supplier)

	w = doJSON(t, r, http.MethodPost, "/purchase-orders", handlers.PurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items: []handlers.PurchaseOrderItemRequest{
			{VariantID: variant.Variant.ID, Quantity: 24, UnitCost: 7000},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var order models.PurchaseOrder
	json.NewDecoder(w.Body).Decode(&order)
	if order.Status != models.PurchaseOrderOrdered {
		t.Errorf("expected status ordered, got %q", order.Status)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/purchase-orders/%d/receive", order.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var received models.PurchaseOrder
	json.NewDecoder(w.Body).Decode(&received)
	if received.Status != models.PurchaseOrderReceived {
		t.Errorf("expected status received, got %q", received.Status)
	}

	inv, err := catalog.Inventories().GetByVariantID(variant.Variant.ID)
	if err != nil {
		t.Fatalf("inventory lookup: %v", err)
	}
	if inv.CurrentStock != 34 {
		t.Errorf("expected stock 34 after receiving 24 onto 10, got %d", inv.CurrentStock)
	}

	// a received order cannot be received again
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/purchase-orders/%d/receive", order.ID), nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict on double receive, got %d", w.Code)
	}
}

func TestPOSCheckoutFlow(t *testing.T) {
	resetState()
	r := api.NewRouter()

	w := doJSON(t, r, http.MethodPost, "/products", handlers.ProductRequest{Name: "Nước suối Lavie"})
	var product handlers.ProductResponse
	json.NewDecoder(w.Body).Decode(&product)

	w = doJSON(t, r, http.MethodPost, "/variants", handlers.VariantRequest{
		ProductID: product.Id, SKU: "CHAI", Name: "Nước suối Lavie - chai",
		RetailPrice: 10000, InitialStock: 10,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed variant: got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/pos/carts", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	var cart pos.Cart
	json.NewDecoder(w.Body).Decode(&cart)

	w = doJSON(t, r, http.MethodPost, "/pos/carts/"+cart.ID+"/items", handlers.CartItemRequest{SKU: "CHAI", Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/pos/carts/"+cart.ID+"/checkout", handlers.CheckoutRequest{PaymentMethod: "cash"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var checkout handlers.CheckoutResponse
	if err := json.NewDecoder(w.Body).Decode(&checkout); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if checkout.Sale.Total != 20000 {
		t.Errorf("expected total 20000, got %v", checkout.Sale.Total)
	}
	if !strings.Contains(checkout.Receipt, "TỔNG CỘNG") || !strings.Contains(checkout.Receipt, "20.000") {
		t.Errorf("receipt text missing totals:\n%s", checkout.Receipt)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sales/%d/receipt", checkout.Sale.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if got := w.Body.String(); got != checkout.Receipt {
		t.Error("stored sale must render the same receipt text")
	}
}
