package persistence

import (
	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/hr"
	"gorm.io/gorm"
)

// NewGormEmployeeRepository creates the employee repository
func NewGormEmployeeRepository(db *gorm.DB) *GormCrudRepository[hr.Employee] {
	return NewGormCrudRepository[hr.Employee](db, TableSpec{
		CodeColumn:    "code",
		SearchColumns: []string{"code", "full_name", "email", "position"},
		Filters: map[string]FilterFunc{
			"status":     Eq("status"),
			"department": Eq("department"),
		},
		SortFields:  EmployeeSortFields,
		DefaultSort: "code",
	})
}

var _ hr.EmployeeRepository = (*GormCrudRepository[hr.Employee])(nil)
