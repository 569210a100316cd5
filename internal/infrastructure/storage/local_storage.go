// Package storage keeps uploaded files on local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

var (
	ErrInvalidCategory     = shared.NewDomainError("INVALID_CATEGORY", "Upload category must be lowercase letters, digits, '-' or '_'")
	ErrUnsupportedFileType = shared.NewDomainError("UNSUPPORTED_FILE_TYPE", "File extension is not allowed")
	ErrFileTooLarge        = shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the maximum upload size")
	ErrInvalidImage        = shared.NewDomainError("INVALID_IMAGE", "Image could not be decoded")
	ErrInvalidFileName     = shared.NewDomainError("INVALID_FILE_NAME", "File name is not valid")
	ErrInvalidTenant       = shared.NewDomainError("INVALID_TENANT", "Uploads require a tenant")
)

const thumbnailDir = "thumbnails"

var (
	categoryPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
)

// StoredFile describes a file written by LocalStorage. Paths are relative to the root.
type StoredFile struct {
	Category      string `json:"category"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	URL           string `json:"url"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	Size          int64  `json:"size"`
	ContentType   string `json:"content_type"`
}

// LocalStorage stores uploads as <root>/<tenant>/<category>/<uuid><ext>. Every
// operation is scoped to the tenant directory.
type LocalStorage struct {
	root           string
	publicURL      string
	maxSize        int64
	allowed        map[string]bool
	thumbnailWidth int
	logger         *zap.Logger
}

// NewLocalStorage creates the root directory when missing
func NewLocalStorage(cfg config.StorageConfig, logger *zap.Logger) (*LocalStorage, error) {
	if cfg.RootDir == "" {
		return nil, errors.New("storage root dir is required")
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	width := cfg.ThumbnailWidth
	if width <= 0 {
		width = 200
	}

	return &LocalStorage{
		root:           cfg.RootDir,
		publicURL:      strings.TrimSuffix(cfg.PublicURL, "/"),
		maxSize:        cfg.MaxFileSize,
		allowed:        allowed,
		thumbnailWidth: width,
		logger:         logger,
	}, nil
}

// Root returns the directory files are stored under
func (s *LocalStorage) Root() string {
	return s.root
}

// Save writes r under the tenant's category. Images also get a JPEG thumbnail.
func (s *LocalStorage) Save(ctx context.Context, tenantID uuid.UUID, category, filename string, r io.Reader) (*StoredFile, error) {
	if tenantID == uuid.Nil {
		return nil, ErrInvalidTenant
	}
	if !categoryPattern.MatchString(category) {
		return nil, ErrInvalidCategory
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || (len(s.allowed) > 0 && !s.allowed[ext]) {
		return nil, ErrUnsupportedFileType
	}

	reader := r
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := uuid.NewString() + ext
	dir := path.Join(tenantID.String(), category)
	rel := path.Join(dir, name)
	if err := s.write(rel, data); err != nil {
		return nil, err
	}

	file := &StoredFile{
		Category:    category,
		Name:        name,
		Path:        rel,
		URL:         s.url(rel),
		Size:        int64(len(data)),
		ContentType: http.DetectContentType(data),
	}

	if imageExtensions[ext] {
		thumbRel, err := s.createThumbnail(dir, name, data)
		if err != nil {
			_ = os.Remove(s.abs(rel))
			return nil, err
		}
		file.ThumbnailPath = thumbRel
		file.ThumbnailURL = s.url(thumbRel)
	}

	s.logger.Debug("Stored upload",
		zap.String("path", rel),
		zap.Int64("size", file.Size),
	)
	return file, nil
}

// Delete removes a file of the tenant and its thumbnail
func (s *LocalStorage) Delete(_ context.Context, tenantID uuid.UUID, category, name string) error {
	if tenantID == uuid.Nil {
		return ErrInvalidTenant
	}
	if !categoryPattern.MatchString(category) {
		return ErrInvalidCategory
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrInvalidFileName
	}

	dir := path.Join(tenantID.String(), category)
	rel := path.Join(dir, name)
	if err := os.Remove(s.abs(rel)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	thumb := path.Join(dir, thumbnailDir, thumbnailName(name))
	if err := os.Remove(s.abs(thumb)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to delete thumbnail", zap.String("path", thumb), zap.Error(err))
	}
	return nil
}

// DeleteByPath removes a file given the relative path returned by Save. The
// path must belong to the tenant.
func (s *LocalStorage) DeleteByPath(ctx context.Context, tenantID uuid.UUID, rel string) error {
	if rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[0] != tenantID.String() {
		return ErrInvalidFileName
	}
	return s.Delete(ctx, tenantID, parts[1], parts[2])
}

func (s *LocalStorage) createThumbnail(dir, name string, data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	thumbnail := imaging.Resize(img, s.thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	rel := path.Join(dir, thumbnailDir, thumbnailName(name))
	if err := s.write(rel, buf.Bytes()); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *LocalStorage) write(rel string, data []byte) error {
	abs := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	return nil
}

func (s *LocalStorage) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *LocalStorage) url(rel string) string {
	return s.publicURL + "/" + rel
}

// thumbnailName swaps the extension for .jpg
func thumbnailName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
