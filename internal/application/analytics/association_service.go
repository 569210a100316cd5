// Package analytics serves market-basket association rules mined from sales orders.
package analytics

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/analytics"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/catalog"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/config"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/export"
	"github.com/kainnovads/apukainnovabe-sub001/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName = "AssociationService"
	// nameBatchSize is how many product IDs one lookup query resolves
	nameBatchSize = 200
)

// ResultCache stores mining results between requests
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Option configures an AssociationService
type Option func(*AssociationService)

// WithCache caches results for ttl
func WithCache(cache ResultCache, ttl time.Duration) Option {
	return func(s *AssociationService) {
		s.cache = cache
		s.ttl = ttl
	}
}

// WithMetrics records run durations and rule counts
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *AssociationService) {
		s.metrics = m
	}
}

// AssociationService mines association rules over every sales order of a tenant
type AssociationService struct {
	baskets     analytics.BasketRepository
	products    catalog.ProductRepository
	defaults    analytics.Thresholds
	concurrency int
	cache       ResultCache
	ttl         time.Duration
	metrics     *telemetry.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssociationService creates a new AssociationService. Zero thresholds in cfg
// fall back to support 0.25 and confidence 0.6.
func NewAssociationService(
	baskets analytics.BasketRepository,
	products catalog.ProductRepository,
	cfg config.MiningConfig,
	logger *zap.Logger,
	opts ...Option,
) *AssociationService {
	defaults := analytics.DefaultThresholds()
	if cfg.MinSupport > 0 {
		defaults.MinSupport = cfg.MinSupport
	}
	if cfg.MinConfidence > 0 {
		defaults.MinConfidence = cfg.MinConfidence
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	s := &AssociationService{
		baskets:     baskets,
		products:    products,
		defaults:    defaults,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the association rules for the tenant. Cached results are
// served unless q.Refresh is set.
func (s *AssociationService) Rules(ctx context.Context, tenantID uuid.UUID, q AssociationQuery) (result *AssociationResponse, err error) {
	thresholds := s.thresholds(q)
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "Rules",
		attribute.String("tenant_id", tenantID.String()),
		attribute.Float64("min_support", thresholds.MinSupport),
		attribute.Float64("min_confidence", thresholds.MinConfidence),
		attribute.Bool("refresh", q.Refresh),
	)
	start := time.Now()
	defer func() {
		telemetry.EndSpan(span, err)
		if err == nil {
			s.metrics.ObserveMining(time.Since(start), result.Cached, len(result.Rules))
		}
	}()

	key := cacheKey(tenantID, thresholds)
	if s.cache != nil && !q.Refresh {
		var cached AssociationResponse
		hit, cerr := s.cache.Get(ctx, key, &cached)
		if cerr != nil {
			s.logger.Warn("Association cache read failed", zap.String("key", key), zap.Error(cerr))
		}
		if hit {
			cached.Cached = true
			return &cached, nil
		}
	}

	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("association_mining", map[string]string{
		telemetry.ProfilingLabelTenantID: tenantID.String(),
	}), func(ctx context.Context) {
		result, err = s.mine(ctx, tenantID, thresholds)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, key, result, s.ttl); cerr != nil {
			s.logger.Warn("Association cache write failed", zap.String("key", key), zap.Error(cerr))
		}
	}
	s.logger.Info("Association rules mined",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("transactions", result.Transactions),
		zap.Int("rules", len(result.Rules)),
		zap.Duration("took", time.Since(start)))
	return result, nil
}

// Export writes the rules as an xlsx workbook
func (s *AssociationService) Export(ctx context.Context, tenantID uuid.UUID, q AssociationQuery, w io.Writer) error {
	result, err := s.Rules(ctx, tenantID, q)
	if err != nil {
		return err
	}

	rows := make([][]any, len(result.Rules))
	for i, r := range result.Rules {
		rows[i] = []any{
			strings.Join(names(r.Antecedent), ", "),
			strings.Join(names(r.Consequent), ", "),
			r.Support,
			r.Confidence,
			r.Lift,
		}
	}
	summary := [][]any{
		{"Transactions", result.Transactions},
		{"Frequent itemsets", result.FrequentItemsets},
		{"Min support", result.MinSupport},
		{"Min confidence", result.MinConfidence},
		{"Generated at", result.GeneratedAt.Format(time.RFC3339)},
	}
	return export.WriteXLSX(w,
		export.Sheet{
			Name:    "Rules",
			Headers: []string{"Antecedent", "Consequent", "Support", "Confidence", "Lift"},
			Rows:    rows,
		},
		export.Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows:    summary,
		},
	)
}

func (s *AssociationService) mine(ctx context.Context, tenantID uuid.UUID, thresholds analytics.Thresholds) (*AssociationResponse, error) {
	lines, err := s.baskets.OrderLines(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}
	transactions := analytics.GroupTransactions(lines)

	itemsets, rules, err := analytics.Mine(transactions, thresholds)
	if err != nil {
		return nil, err
	}

	productNames, err := s.resolveNames(ctx, tenantID, rules)
	if err != nil {
		return nil, err
	}

	result := &AssociationResponse{
		Transactions:     len(transactions),
		FrequentItemsets: len(itemsets),
		MinSupport:       thresholds.MinSupport,
		MinConfidence:    thresholds.MinConfidence,
		Rules:            make([]RuleResponse, len(rules)),
		GeneratedAt:      s.now(),
	}
	for i, r := range rules {
		result.Rules[i] = RuleResponse{
			Antecedent: items(r.Antecedent, productNames),
			Consequent: items(r.Consequent, productNames),
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
		}
	}
	return result, nil
}

// resolveNames looks up product names for every item in rules, in parallel batches
func (s *AssociationService) resolveNames(ctx context.Context, tenantID uuid.UUID, rules []analytics.Rule[string]) (map[string]string, error) {
	seen := make(map[string]bool)
	var ids []uuid.UUID
	for _, r := range rules {
		for _, side := range [][]string{r.Antecedent, r.Consequent} {
			for _, item := range side {
				if seen[item] {
					continue
				}
				seen[item] = true
				if id, err := uuid.Parse(item); err == nil {
					ids = append(ids, id)
				}
			}
		}
	}

	var mu sync.Mutex
	productNames := make(map[string]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for start := 0; start < len(ids); start += nameBatchSize {
		batch := ids[start:min(start+nameBatchSize, len(ids))]
		g.Go(func() error {
			products, err := s.products.FindByIDs(gctx, tenantID, batch)
			if err != nil {
				return fmt.Errorf("failed to resolve product names: %w", err)
			}
			mu.Lock()
			for _, p := range products {
				productNames[p.ID.String()] = p.Name
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return productNames, nil
}

func (s *AssociationService) thresholds(q AssociationQuery) analytics.Thresholds {
	t := s.defaults
	if q.MinSupport != nil {
		t.MinSupport = *q.MinSupport
	}
	if q.MinConfidence != nil {
		t.MinConfidence = *q.MinConfidence
	}
	return t
}

// items maps product IDs to response items; unknown products keep their ID as name
func items(ids []string, productNames map[string]string) []ItemResponse {
	out := make([]ItemResponse, len(ids))
	for i, raw := range ids {
		id, _ := uuid.Parse(raw)
		name, ok := productNames[raw]
		if !ok {
			name = raw
		}
		out[i] = ItemResponse{ProductID: id, Name: name}
	}
	return out
}

func cacheKey(tenantID uuid.UUID, t analytics.Thresholds) string {
	return "associations:" + tenantID.String() + ":" +
		strconv.FormatFloat(t.MinSupport, 'f', -1, 64) + ":" +
		strconv.FormatFloat(t.MinConfidence, 'f', -1, 64)
}
