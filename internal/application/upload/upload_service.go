// Package upload exposes the file upload helpers used by the HTTP layer and by
// services that attach files to their aggregates.
package upload

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Categories used by services that attach files
const (
	CategoryProducts = "products"
	CategoryReceipts = "receipts"
)

// FileStore persists uploaded files per tenant
type FileStore interface {
	Save(ctx context.Context, tenantID uuid.UUID, category, filename string, r io.Reader) (*storage.StoredFile, error)
	Delete(ctx context.Context, tenantID uuid.UUID, category, name string) error
	DeleteByPath(ctx context.Context, tenantID uuid.UUID, rel string) error
}

// Service handles generic uploads
type Service struct {
	store  FileStore
	logger *zap.Logger
}

// NewService creates a new upload Service
func NewService(store FileStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Upload stores a file under the tenant's category
func (s *Service) Upload(ctx context.Context, tenantID uuid.UUID, category, filename string, r io.Reader) (*storage.StoredFile, error) {
	file, err := s.store.Save(ctx, tenantID, category, filename, r)
	if err != nil {
		return nil, err
	}
	s.logger.Info("File uploaded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("category", file.Category),
		zap.String("path", file.Path),
		zap.Int64("size", file.Size))
	return file, nil
}

// Delete removes a file of the tenant and its thumbnail
func (s *Service) Delete(ctx context.Context, tenantID uuid.UUID, category, name string) error {
	return s.store.Delete(ctx, tenantID, category, name)
}

// Replace stores a new file and removes previous once the new one is saved.
// A failed cleanup is logged, not returned.
func Replace(ctx context.Context, store FileStore, logger *zap.Logger, tenantID uuid.UUID, category, filename string, r io.Reader, previous string) (*storage.StoredFile, error) {
	file, err := store.Save(ctx, tenantID, category, filename, r)
	if err != nil {
		return nil, err
	}
	if previous != "" && previous != file.Path {
		if err := store.DeleteByPath(ctx, tenantID, previous); err != nil {
			logger.Warn("Failed to remove replaced file", zap.String("path", previous), zap.Error(err))
		}
	}
	return file, nil
}

var _ FileStore = (*storage.LocalStorage)(nil)
