package catalog

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/storage"
	"github.com/kainnovads/apukainnovabe-sub001/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProductRepo struct {
	testutil.CrudRepository[catalog.Product]
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func newImageStore(t *testing.T) *storage.LocalStorage {
	t.Helper()
	store, err := storage.NewLocalStorage(config.StorageConfig{
		RootDir:           t.TempDir(),
		PublicURL:         "/uploads",
		MaxFileSize:       1 << 20,
		AllowedExtensions: []string{".png", ".jpg"},
		ThumbnailWidth:    64,
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for x := range 120 {
		img.Set(x, 10, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()

	t.Run("applies prices and tax", func(t *testing.T) {
		products := new(mockProductRepo)
		taxes := new(testutil.CrudRepository[catalog.Tax])
		svc := NewProductService(products, taxes, newImageStore(t), zap.NewNop())

		tax, err := catalog.NewTax(tenantID, "PPN11", "PPN", decimal.NewFromInt(11), catalog.TaxTypeBoth)
		require.NoError(t, err)

		products.On("ExistsByCode", ctx, tenantID, "SKU-001").Return(false, nil)
		products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		taxes.On("FindByIDForTenant", ctx, tenantID, tax.ID).Return(tax, nil)

		purchase, selling := decimal.NewFromInt(45000), decimal.NewFromInt(60000)
		resp, err := svc.Create(ctx, tenantID, CreateProductRequest{
			Code: "sku-001", Name: "Kopi Arabika", Unit: "pcs",
			PurchasePrice: &purchase, SellingPrice: &selling, TaxID: &tax.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", resp.Code)
		assert.True(t, resp.Margin.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, &tax.ID, resp.TaxID)
		products.AssertExpectations(t)
	})

	t.Run("unknown tax", func(t *testing.T) {
		products := new(mockProductRepo)
		taxes := new(testutil.CrudRepository[catalog.Tax])
		svc := NewProductService(products, taxes, newImageStore(t), zap.NewNop())

		missing := uuid.New()
		products.On("ExistsByCode", ctx, tenantID, "SKU-002").Return(false, nil)
		taxes.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{Code: "SKU-002", Name: "Teh", Unit: "box", TaxID: &missing})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TAX", domainErr.Code)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate code", func(t *testing.T) {
		products := new(mockProductRepo)
		svc := NewProductService(products, new(testutil.CrudRepository[catalog.Tax]), newImageStore(t), zap.NewNop())
		products.On("ExistsByCode", ctx, tenantID, "SKU-001").Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreateProductRequest{Code: "SKU-001", Name: "Dup", Unit: "pcs"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()
	products := new(mockProductRepo)
	svc := NewProductService(products, new(testutil.CrudRepository[catalog.Tax]), newImageStore(t), zap.NewNop())

	product, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", "pcs")
	require.NoError(t, err)
	taxID := uuid.New()
	product.SetTax(&taxID)

	products.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	products.On("Save", ctx, product).Return(nil)

	name := "Widget Pro"
	selling := decimal.NewFromInt(20)
	inactive := false
	resp, err := svc.Update(ctx, tenantID, product.ID, UpdateProductRequest{
		Name: &name, SellingPrice: &selling, ClearTax: true, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", resp.Name)
	assert.Equal(t, "pcs", resp.Unit)
	assert.True(t, resp.SellingPrice.Equal(selling))
	assert.Nil(t, resp.TaxID)
	assert.False(t, resp.IsActive)
}

func TestProductService_UploadImage(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()
	store := newImageStore(t)
	products := new(mockProductRepo)
	svc := NewProductService(products, new(testutil.CrudRepository[catalog.Tax]), store, zap.NewNop())

	product, err := catalog.NewProduct(tenantID, "SKU-1", "Widget", "pcs")
	require.NoError(t, err)
	products.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
	products.On("Save", ctx, product).Return(nil)

	first, err := svc.UploadImage(ctx, tenantID, product.ID, "front.png", bytes.NewReader(pngImage(t)))
	require.NoError(t, err)
	require.NotEmpty(t, first.ThumbnailPath)
	assert.FileExists(t, filepath.Join(store.Root(), first.ImagePath))
	assert.FileExists(t, filepath.Join(store.Root(), first.ThumbnailPath))

	second, err := svc.UploadImage(ctx, tenantID, product.ID, "back.png", bytes.NewReader(pngImage(t)))
	require.NoError(t, err)
	assert.NotEqual(t, first.ImagePath, second.ImagePath)

	_, statErr := os.Stat(filepath.Join(store.Root(), first.ImagePath))
	assert.True(t, os.IsNotExist(statErr))

	t.Run("rejects non-image extension", func(t *testing.T) {
		_, err := svc.UploadImage(ctx, tenantID, product.ID, "notes.exe", bytes.NewReader([]byte("x")))
		assert.ErrorIs(t, err, storage.ErrUnsupportedFileType)
	})
}

func TestTaxService(t *testing.T) {
	ctx := context.Background()
	tenantID := testutil.TestTenantID()

	t.Run("create normalises code", func(t *testing.T) {
		repo := new(testutil.CrudRepository[catalog.Tax])
		svc := NewTaxService(repo)
		repo.On("ExistsByCode", ctx, tenantID, "PPN11").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Tax")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateTaxRequest{Code: "ppn11", Name: "PPN 11%", Rate: decimal.NewFromInt(11), Type: "BOTH"})
		require.NoError(t, err)
		assert.Equal(t, "PPN11", resp.Code)
		assert.Equal(t, "BOTH", resp.Type)
	})

	t.Run("update rejects negative rate", func(t *testing.T) {
		repo := new(testutil.CrudRepository[catalog.Tax])
		svc := NewTaxService(repo)
		tax, err := catalog.NewTax(tenantID, "PPN11", "PPN", decimal.NewFromInt(11), catalog.TaxTypeSales)
		require.NoError(t, err)
		repo.On("FindByIDForTenant", ctx, tenantID, tax.ID).Return(tax, nil)

		_, err = svc.Update(ctx, tenantID, tax.ID, UpdateTaxRequest{Name: "PPN", Rate: decimal.NewFromInt(-1), Type: "SALES"})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("delete in use", func(t *testing.T) {
		repo := new(testutil.CrudRepository[catalog.Tax])
		svc := NewTaxService(repo)
		id := uuid.New()
		repo.On("DeleteForTenant", ctx, tenantID, id).Return(shared.ErrInUse)
		assert.ErrorIs(t, svc.Delete(ctx, tenantID, id), shared.ErrInUse)
	})
}
