package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/khanhvo/retail-backoffice/internal/importer"
	"github.com/khanhvo/retail-backoffice/internal/models"
	"github.com/khanhvo/retail-backoffice/internal/repo"
)

func lavieRows() []importer.Row {
	return []importer.Row{
		{
			Name: "Nước suối Lavie", VariantName: "Nước suối Lavie - chai",
			SKU: "CHAI", RetailPrice: 10000, InitialStock: 48,
			WarrantyApplied: true, ExpiryWarningDays: 30,
		},
		{
			Name: "Nước suối Lavie", VariantName: "Nước suối Lavie - thùng",
			SKU: "THUNG", RetailPrice: 240000, InitialStock: 2,
		},
	}
}

func TestExecutorRun_FullPipeline(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	result, err := executor.Run(context.Background(), lavieRows())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Products != 1 || result.Variants != 2 || result.Conversions != 1 {
		t.Errorf("expected 1 product, 2 variants, 1 conversion; got %d, %d, %d",
			result.Products, result.Variants, result.Conversions)
	}

	product, err := catalog.Products().GetByName("Nước suối Lavie")
	if err != nil {
		t.Fatalf("product not persisted: %v", err)
	}

	chai, err := catalog.Variants().GetBySKU("CHAI")
	if err != nil {
		t.Fatalf("variant not persisted: %v", err)
	}
	if chai.ProductID != product.ID {
		t.Errorf("variant linked to product %d, want %d", chai.ProductID, product.ID)
	}

	inv, err := catalog.Inventories().GetByVariantID(chai.ID)
	if err != nil {
		t.Fatalf("inventory not persisted: %v", err)
	}
	if inv.CurrentStock != 48 || inv.InitialStock != 48 {
		t.Errorf("expected current stock to start at initial stock 48, got %d/%d",
			inv.CurrentStock, inv.InitialStock)
	}

	warranty, err := catalog.Warranties().GetByVariantID(chai.ID)
	if err != nil {
		t.Fatalf("warranty not persisted: %v", err)
	}
	if warranty.WarningDays != 30 || warranty.Policy == "" {
		t.Errorf("unexpected warranty record: %+v", warranty)
	}

	conversions, err := catalog.Conversions().GetByVariantID(chai.ID)
	if err != nil || len(conversions) != 1 {
		t.Fatalf("expected 1 conversion edge, got %d (err %v)", len(conversions), err)
	}
	thung, _ := catalog.Variants().GetBySKU("THUNG")
	c := conversions[0]
	if c.FromVariantID != chai.ID || c.ToVariantID != thung.ID || c.Rate != 24 {
		t.Errorf("unexpected conversion edge: %+v", c)
	}
}

func TestExecutorRun_DuplicateSKUAbortsBeforeWriting(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	seedCatalog(t, catalog)
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	rows := []importer.Row{
		{Name: "Trà xanh", VariantName: "Trà xanh - chai", SKU: "A1"},
		{Name: "Trà xanh", VariantName: "Trà xanh - lốc", SKU: "A1"},
		{Name: "Kẹo dẻo", VariantName: "Kẹo dẻo - bịch", SKU: "B2"},
	}

	_, err := executor.Run(context.Background(), rows)
	if !errors.Is(err, importer.ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}

	products, variants, _, _, _ := catalog.Counts()
	if products != 1 || variants != 1 {
		t.Errorf("existing catalog must be untouched after abort, got %d products, %d variants",
			products, variants)
	}
}

func TestExecutorRun_DuplicateSKUOnUngroupableRowStillAborts(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	seedCatalog(t, catalog)
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	// The second row has no derivable product name, so the grouper drops it;
	// its SKU still counts toward the duplicate check.
	rows := []importer.Row{
		{Name: "Trà xanh", VariantName: "Trà xanh - chai", SKU: "A1"},
		{SKU: "A1"},
	}

	_, err := executor.Run(context.Background(), rows)
	if !errors.Is(err, importer.ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}

	products, variants, _, _, _ := catalog.Counts()
	if products != 1 || variants != 1 {
		t.Errorf("existing catalog must be untouched after abort, got %d products, %d variants",
			products, variants)
	}
}

func TestExecutorRun_ReplacesPreviousCatalog(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	seedCatalog(t, catalog)
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	if _, err := executor.Run(context.Background(), lavieRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := catalog.Variants().GetBySKU("OLD"); !errors.Is(err, repo.ErrVariantNotFound) {
		t.Errorf("expected the pre-existing variant deleted, got %v", err)
	}
	products, variants, inventories, warranties, conversions := catalog.Counts()
	if products != 1 || variants != 2 || inventories != 2 || warranties != 2 || conversions != 1 {
		t.Errorf("unexpected table sizes after replace: %d %d %d %d %d",
			products, variants, inventories, warranties, conversions)
	}
}

func TestExecutorRun_Idempotent(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	first, err := executor.Run(context.Background(), lavieRows())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := executor.Run(context.Background(), lavieRows())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Products != second.Products || first.Variants != second.Variants ||
		first.Conversions != second.Conversions {
		t.Errorf("re-running the same import changed the outcome: %+v then %+v", first, second)
	}

	products, variants, inventories, warranties, conversions := catalog.Counts()
	if products != 1 || variants != 2 || inventories != 2 || warranties != 2 || conversions != 1 {
		t.Errorf("unexpected table sizes after re-run: %d %d %d %d %d",
			products, variants, inventories, warranties, conversions)
	}
}

func TestExecutorRun_SkipsRowsMissingSKUOrVariantName(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	executor := importer.NewExecutor(catalog.ImportStore(), nil)

	rows := []importer.Row{
		{Name: "Trà xanh", VariantName: "Trà xanh - chai", SKU: "T1"},
		{Name: "Trà xanh", VariantName: "", SKU: "T2"},
		{Name: "Trà xanh", VariantName: "Trà xanh - thùng", SKU: ""},
	}

	result, err := executor.Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Variants != 1 || result.SkippedRows != 2 {
		t.Errorf("expected 1 variant and 2 skipped rows, got %d and %d",
			result.Variants, result.SkippedRows)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("expected a warning per skipped row, got %v", result.Warnings)
	}
}

func TestExecutorRun_MidRunFailureLeavesCatalogUntouched(t *testing.T) {
	catalog := repo.NewMemoryCatalog()
	seedCatalog(t, catalog)
	store := &failingStore{inner: catalog.ImportStore(), failAfter: 1}
	executor := importer.NewExecutor(store, nil)

	_, err := executor.Run(context.Background(), lavieRows())
	if err == nil {
		t.Fatal("expected the injected failure to surface")
	}

	products, variants, _, _, _ := catalog.Counts()
	if products != 1 || variants != 1 {
		t.Errorf("failed run must leave previous catalog intact, got %d products, %d variants",
			products, variants)
	}
	if _, err := catalog.Variants().GetBySKU("OLD"); err != nil {
		t.Errorf("pre-existing variant must survive a failed run: %v", err)
	}
}

// seedCatalog loads one product with one variant so tests can tell a
// preserved catalog from a replaced one.
func seedCatalog(t *testing.T, catalog *repo.MemoryCatalog) {
	t.Helper()
	product, err := catalog.Products().Create(models.Product{Name: "Hàng cũ"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	variant, err := catalog.Variants().Create(models.ProductVariant{
		ProductID: product.ID, SKU: "OLD", Name: "Hàng cũ - chai",
	})
	if err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	if _, err := catalog.Inventories().Create(models.Inventory{VariantID: variant.ID, InitialStock: 5, CurrentStock: 5}); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
}

// failingStore wraps a real store with a transaction that errors after a set
// number of variant creates.
type failingStore struct {
	inner     repo.ImportStore
	failAfter int
}

func (s *failingStore) Begin(ctx context.Context) (repo.ImportTx, error) {
	tx, err := s.inner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{ImportTx: tx, failAfter: s.failAfter}, nil
}

type failingTx struct {
	repo.ImportTx
	created   int
	failAfter int
}

func (t *failingTx) CreateVariant(v models.ProductVariant) (int, error) {
	if t.created >= t.failAfter {
		return 0, errors.New("injected variant failure")
	}
	t.created++
	return t.ImportTx.CreateVariant(v)
}
