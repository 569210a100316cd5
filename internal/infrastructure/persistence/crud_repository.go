package persistence

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// FilterFunc narrows a query by one filter value
type FilterFunc func(db *gorm.DB, value any) *gorm.DB

// Eq filters column by equality
func Eq(column string) FilterFunc {
	return func(db *gorm.DB, value any) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// Gte filters column to values on or after value
func Gte(column string) FilterFunc {
	return func(db *gorm.DB, value any) *gorm.DB {
		return db.Where(column+" >= ?", value)
	}
}

// Lte filters column to values on or before value
func Lte(column string) FilterFunc {
	return func(db *gorm.DB, value any) *gorm.DB {
		return db.Where(column+" <= ?", value)
	}
}

// TableSpec describes how a table is searched, filtered and sorted
type TableSpec struct {
	// CodeColumn backs ExistsByCode
	CodeColumn    string
	SearchColumns []string
	Filters       map[string]FilterFunc
	SortFields    map[string]bool
	DefaultSort   string
	Preloads      []string
}

// GormCrudRepository implements shared.CrudRepository for one tenant-scoped table
type GormCrudRepository[T any] struct {
	db   *gorm.DB
	spec TableSpec
}

// NewGormCrudRepository creates a repository for T described by spec
func NewGormCrudRepository[T any](db *gorm.DB, spec TableSpec) *GormCrudRepository[T] {
	if spec.DefaultSort == "" {
		spec.DefaultSort = "created_at"
	}
	if spec.SortFields == nil {
		spec.SortFields = CommonSortFields
	}
	installVersionTracking(db)
	return &GormCrudRepository[T]{db: db, spec: spec}
}

// conn returns the connection for ctx, joining any open transaction
func (r *GormCrudRepository[T]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db)
}

// FindByIDForTenant finds an entity by ID within a tenant
func (r *GormCrudRepository[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	query := r.preload(r.conn(ctx))
	if err := query.Where("tenant_id = ? AND id = ?", tenantID, id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllForTenant lists entities of a tenant
func (r *GormCrudRepository[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.conn(ctx).Model(new(T)).Where("tenant_id = ?", tenantID)
	query = r.applyFilter(r.preload(query), filter)

	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountForTenant counts entities of a tenant matching the filter
func (r *GormCrudRepository[T]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(new(T)).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether the code is taken within the tenant
func (r *GormCrudRepository[T]) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	if r.spec.CodeColumn == "" {
		return false, fmt.Errorf("no code column configured for %T", *new(T))
	}
	var count int64
	if err := r.conn(ctx).Model(new(T)).
		Where("tenant_id = ? AND "+r.spec.CodeColumn+" = ?", tenantID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an entity without touching its associations.
// Stale aggregates fail with shared.ErrConcurrencyConflict.
func (r *GormCrudRepository[T]) Save(ctx context.Context, entity *T) error {
	return translateError(saveEntity(r.conn(ctx), entity))
}

// DeleteForTenant deletes an entity within a tenant
func (r *GormCrudRepository[T]) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.conn(ctx).Delete(new(T), "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCrudRepository[T]) preload(query *gorm.DB) *gorm.DB {
	for _, p := range r.spec.Preloads {
		query = query.Preload(p)
	}
	return query
}

// applyFilter applies filter options, ordering and pagination to the query.
// A PageSize of zero or less returns every matching row.
func (r *GormCrudRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, r.spec.SortFields, r.spec.DefaultSort)
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		page := max(filter.Page, 1)
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies search and filter values only
func (r *GormCrudRepository[T]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && len(r.spec.SearchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		conds := make([]string, len(r.spec.SearchColumns))
		args := make([]any, len(r.spec.SearchColumns))
		for i, col := range r.spec.SearchColumns {
			conds[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	for _, key := range slices.Sorted(maps.Keys(filter.Filters)) {
		if fn, ok := r.spec.Filters[key]; ok {
			query = fn(query, filter.Filters[key])
		}
	}

	return query
}

var _ shared.CrudRepository[struct{}] = (*GormCrudRepository[struct{}])(nil)

// saveWithChildren saves parent and replaces the child rows keyed by foreignKey
func saveWithChildren[C any](db *gorm.DB, parent any, foreignKey string, parentID uuid.UUID, children []C) error {
	return translateError(db.Transaction(func(tx *gorm.DB) error {
		if err := saveEntity(tx, parent); err != nil {
			return err
		}
		if err := tx.Where(foreignKey+" = ?", parentID).Delete(new(C)).Error; err != nil {
			return err
		}
		if len(children) == 0 {
			return nil
		}
		return tx.Create(&children).Error
	}))
}

// translateError maps constraint violations reported by gorm to domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInUse
	}
	return err
}
