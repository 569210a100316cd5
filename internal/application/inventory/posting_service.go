package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/inventory"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PostingService applies stock postings. It is the only writer of stock rows
// and movements; documents that move goods call it inside their own transaction.
type PostingService struct {
	stockRepo    inventory.StockRepository
	movementRepo inventory.MovementRepository
	txManager    shared.TransactionManager
	idempotency  shared.IdempotencyStore
	idemTTL      time.Duration
	metrics      *telemetry.Metrics
	logger       *zap.Logger
}

// PostingOption configures a PostingService
type PostingOption func(*PostingService)

// WithIdempotency enables Idempotency-Key handling with the given store and key TTL
func WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) PostingOption {
	return func(s *PostingService) {
		s.idempotency = store
		s.idemTTL = ttl
	}
}

// WithMetrics records posting outcomes
func WithMetrics(m *telemetry.Metrics) PostingOption {
	return func(s *PostingService) {
		s.metrics = m
	}
}

// NewPostingService creates a new PostingService
func NewPostingService(
	stockRepo inventory.StockRepository,
	movementRepo inventory.MovementRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
	opts ...PostingOption,
) *PostingService {
	s := &PostingService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		txManager:    txManager,
		idemTTL:      24 * time.Hour,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Post applies every line of posting in one transaction. When ctx already
// carries a transaction the posting joins it.
func (s *PostingService) Post(ctx context.Context, tenantID uuid.UUID, posting inventory.Posting) (movements []*inventory.StockMovement, err error) {
	source := posting.Reference.Type
	if source == "" {
		source = "MANUAL"
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "PostingService", "Post",
		attribute.String("posting.source", source),
		attribute.Int("posting.lines", len(posting.Lines)),
	)
	defer func() {
		telemetry.EndSpan(span, err)
		s.metrics.ObservePosting(source, err)
	}()

	if err := posting.Validate(); err != nil {
		return nil, err
	}

	// lock rows in a stable order so concurrent postings cannot deadlock
	lines := slices.Clone(posting.Lines)
	slices.SortStableFunc(lines, func(a, b inventory.StockLine) int {
		if c := bytes.Compare(a.WarehouseID[:], b.WarehouseID[:]); c != 0 {
			return c
		}
		return bytes.Compare(a.ProductID[:], b.ProductID[:])
	})

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		movements = make([]*inventory.StockMovement, 0, len(lines))
		for _, line := range lines {
			movement, err := s.applyLine(ctx, tenantID, posting, line)
			if err != nil {
				return err
			}
			movements = append(movements, movement)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Stock posting rejected",
			zap.String("tenant_id", tenantID.String()),
			zap.String("source", source),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Stock posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("source", source),
		zap.Int("lines", len(movements)))
	return movements, nil
}

func (s *PostingService) applyLine(ctx context.Context, tenantID uuid.UUID, posting inventory.Posting, line inventory.StockLine) (*inventory.StockMovement, error) {
	stock, err := s.stockRepo.FindForUpdate(ctx, tenantID, line.WarehouseID, line.ProductID)
	if errors.Is(err, shared.ErrNotFound) {
		stock, err = inventory.NewStock(tenantID, line.WarehouseID, line.ProductID)
	}
	if err != nil {
		return nil, err
	}

	movement, err := posting.ApplyLine(stock, line)
	if err != nil {
		return nil, err
	}
	if err := s.stockRepo.Save(ctx, stock); err != nil {
		return nil, err
	}
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// Once runs fn at most once per Idempotency-Key found in ctx. Keys are scoped
// by tenant and operation. A failed fn releases the key so the client can retry.
func (s *PostingService) Once(ctx context.Context, tenantID uuid.UUID, operation string, fn func(ctx context.Context) error) error {
	key := shared.IdempotencyKeyFromContext(ctx)
	if key == "" || s.idempotency == nil {
		return fn(ctx)
	}

	scoped := fmt.Sprintf("%s:%s:%s", tenantID, operation, key)
	acquired, err := s.idempotency.Acquire(ctx, scoped, s.idemTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire idempotency key: %w", err)
	}
	if !acquired {
		s.logger.Info("Duplicate request rejected",
			zap.String("operation", operation),
			zap.String("idempotency_key", key))
		return shared.ErrDuplicateRequest
	}

	if err := fn(ctx); err != nil {
		if rerr := s.idempotency.Release(context.WithoutCancel(ctx), scoped); rerr != nil {
			s.logger.Warn("Failed to release idempotency key", zap.String("key", scoped), zap.Error(rerr))
		}
		return err
	}
	return nil
}
