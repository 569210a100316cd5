package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/finance"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// AssetService manages fixed assets and their straight-line depreciation
type AssetService struct {
	repo   finance.AssetRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAssetService creates a new AssetService
func NewAssetService(repo finance.AssetRepository, logger *zap.Logger) *AssetService {
	return &AssetService{repo: repo, logger: logger, now: time.Now}
}

// Create registers an asset. A blank code gets a generated FA number.
func (s *AssetService) Create(ctx context.Context, tenantID uuid.UUID, req AssetRequest) (*AssetResponse, error) {
	now := s.now()
	code := req.Code
	if code == "" {
		code = shared.GenerateNumber("FA", now)
	}
	asset, err := finance.NewAsset(tenantID, code, req.Name, req.Category, req.AcquisitionDate, req.Cost, req.SalvageValue, req.UsefulLifeMonths)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByCode(ctx, tenantID, asset.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Asset with this code already exists")
	}

	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, err
	}
	s.logger.Info("Asset registered", zap.String("asset_id", asset.ID.String()), zap.String("code", asset.Code))

	response := ToAssetResponse(asset, now)
	return &response, nil
}

// GetByID retrieves an asset valued as of now
func (s *AssetService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*AssetResponse, error) {
	asset, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToAssetResponse(asset, s.now())
	return &response, nil
}

// List retrieves a page of assets
func (s *AssetService) List(ctx context.Context, tenantID uuid.UUID, filter AssetListFilter) ([]AssetResponse, int64, error) {
	domainFilter := filter.toFilter()

	assets, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = ToAssetResponse(&assets[i], now)
	}
	return responses, total, nil
}

// Update changes an active asset; the code is immutable
func (s *AssetService) Update(ctx context.Context, tenantID, id uuid.UUID, req AssetRequest) (*AssetResponse, error) {
	asset, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := asset.Update(req.Name, req.Category, req.AcquisitionDate, req.Cost, req.SalvageValue, req.UsefulLifeMonths); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, err
	}
	response := ToAssetResponse(asset, s.now())
	return &response, nil
}

// Schedule returns the monthly depreciation schedule over the useful life
func (s *AssetService) Schedule(ctx context.Context, tenantID, id uuid.UUID) ([]DepreciationEntryResponse, error) {
	asset, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	entries := asset.Schedule()
	responses := make([]DepreciationEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = DepreciationEntryResponse{
			Period:       e.Period,
			Date:         e.Date,
			Depreciation: e.Depreciation,
			Accumulated:  e.Accumulated,
			BookValue:    e.BookValue,
		}
	}
	return responses, nil
}

// Dispose retires an asset and reports the gain or loss against book value
func (s *AssetService) Dispose(ctx context.Context, tenantID, id uuid.UUID, req DisposeAssetRequest) (*DisposalResponse, error) {
	asset, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	at := s.now()
	if req.Date != nil && !req.Date.IsZero() {
		at = *req.Date
	}
	gain, err := asset.Dispose(at, req.Proceeds)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, err
	}
	s.logger.Info("Asset disposed",
		zap.String("asset_id", asset.ID.String()),
		zap.String("gain", gain.String()))

	return &DisposalResponse{Asset: ToAssetResponse(asset, at), Gain: gain}, nil
}

// Delete deletes an asset
func (s *AssetService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.DeleteForTenant(ctx, tenantID, id)
}
