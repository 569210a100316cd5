package catalog

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/application/upload"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	taxRepo     catalog.TaxRepository
	files       upload.FileStore
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	taxRepo catalog.TaxRepository,
	files upload.FileStore,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		taxRepo:     taxRepo,
		files:       files,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Code, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, tenantID, product.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	if err := product.Update(product.Name, req.Description, product.Unit); err != nil {
		return nil, err
	}
	purchase, selling := product.PurchasePrice, product.SellingPrice
	if req.PurchasePrice != nil {
		purchase = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		selling = *req.SellingPrice
	}
	if err := product.SetPrices(purchase, selling); err != nil {
		return nil, err
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	if req.TaxID != nil {
		if err := s.ensureTax(ctx, tenantID, *req.TaxID); err != nil {
			return nil, err
		}
		product.SetTax(req.TaxID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("code", product.Code))

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := filter.toFilter()

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name, description, unit := product.Name, product.Description, product.Unit
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if err := product.Update(name, description, unit); err != nil {
		return nil, err
	}

	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchase, selling := product.PurchasePrice, product.SellingPrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(purchase, selling); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	switch {
	case req.ClearTax:
		product.SetTax(nil)
	case req.TaxID != nil:
		if err := s.ensureTax(ctx, tenantID, *req.TaxID); err != nil {
			return nil, err
		}
		product.SetTax(req.TaxID)
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// UploadImage stores a product image and its thumbnail, replacing any previous one
func (s *ProductService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, filename string, r io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	file, err := upload.Replace(ctx, s.files, s.logger, tenantID, upload.CategoryProducts, filename, r, product.ImagePath)
	if err != nil {
		return nil, err
	}
	product.SetImage(file.Path, file.ThumbnailPath)

	if err := s.productRepo.Save(ctx, product); err != nil {
		// the row still points at the old image; drop the orphan
		if derr := s.files.DeleteByPath(ctx, tenantID, file.Path); derr != nil {
			s.logger.Warn("Failed to remove orphaned image", zap.String("path", file.Path), zap.Error(derr))
		}
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product and its image
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	if product.ImagePath != "" {
		if err := s.files.DeleteByPath(ctx, tenantID, product.ImagePath); err != nil {
			s.logger.Warn("Failed to remove product image", zap.String("path", product.ImagePath), zap.Error(err))
		}
	}
	return nil
}

func (s *ProductService) ensureTax(ctx context.Context, tenantID, taxID uuid.UUID) error {
	if _, err := s.taxRepo.FindByIDForTenant(ctx, tenantID, taxID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TAX", "Tax does not exist")
		}
		return err
	}
	return nil
}
