package persistence

import (
	"reflect"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const trackVersionsCallback = "erp:track_versions"

// versioned is implemented by aggregates embedding shared.BaseAggregateRoot
type versioned interface {
	GetVersion() int
	IncrementVersion()
	StoredVersion() int
	MarkStored()
}

// installVersionTracking registers a query callback that records the version
// of every loaded aggregate. It is a no-op when already installed.
func installVersionTracking(db *gorm.DB) {
	if db.Callback().Query().Get(trackVersionsCallback) != nil {
		return
	}
	_ = db.Callback().Query().After("gorm:after_query").Register(trackVersionsCallback, trackVersions)
}

func trackVersions(db *gorm.DB) {
	if db.Error != nil || db.Statement == nil {
		return
	}
	markStored(db.Statement.ReflectValue)
}

func markStored(v reflect.Value) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			markStored(v.Index(i))
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			markStored(v.Elem())
		}
	case reflect.Struct:
		if !v.CanAddr() {
			return
		}
		if agg, ok := v.Addr().Interface().(versioned); ok {
			agg.MarkStored()
		}
	}
}

// saveEntity inserts or updates entity without its associations. A loaded
// aggregate is only updated while the row still carries the version it was
// loaded with; otherwise shared.ErrConcurrencyConflict is returned.
func saveEntity(db *gorm.DB, entity any) error {
	agg, ok := entity.(versioned)
	if !ok || agg.StoredVersion() == 0 {
		if err := db.Omit(clause.Associations).Save(entity).Error; err != nil {
			return err
		}
		if ok {
			agg.MarkStored()
		}
		return nil
	}

	expected := agg.StoredVersion()
	if agg.GetVersion() <= expected {
		agg.IncrementVersion()
	}
	result := db.Model(entity).
		Select("*").
		Omit(clause.Associations).
		Where("version = ?", expected).
		Updates(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	agg.MarkStored()
	return nil
}
