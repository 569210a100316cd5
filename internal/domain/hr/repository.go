package hr

import "github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"

// EmployeeRepository persists employees; filters: status, department
type EmployeeRepository interface {
	shared.CrudRepository[Employee]
}
