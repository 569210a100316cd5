package handler

import (
	"github.com/gin-gonic/gin"
	hrapp "github.com/kainnovads/apukainnovabe-sub001/internal/application/hr"
)

// HRHandler serves employees
type HRHandler struct {
	BaseHandler
	employees *hrapp.EmployeeService
}

// NewHRHandler creates a new HRHandler
func NewHRHandler(employees *hrapp.EmployeeService) *HRHandler {
	return &HRHandler{employees: employees}
}


// CreateEmployee godoc
// @ID           createEmployee
// @Summary      Create an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        request body hrapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /hr/employees [post]
func (h *HRHandler) CreateEmployee(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req hrapp.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	employee, err := h.employees.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// GetEmployee godoc
// @ID           getEmployee
// @Summary      Get an employee
// @Tags         hr
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /hr/employees/{id} [get]
func (h *HRHandler) GetEmployee(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "employee")
	if !ok {
		return
	}
	employee, err := h.employees.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// ListEmployees godoc
// @ID           listEmployees
// @Summary      List employees
// @Tags         hr
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        filter query hrapp.EmployeeListFilter false "Filter"
// @Success      200 {object} APIResponse[[]hrapp.EmployeeResponse]
// @Router       /hr/employees [get]
func (h *HRHandler) ListEmployees(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter hrapp.EmployeeListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.employees.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateEmployee godoc
// @ID           updateEmployee
// @Summary      Update an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body hrapp.UpdateEmployeeRequest true "Changes"
// @Success      200 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /hr/employees/{id} [put]
func (h *HRHandler) UpdateEmployee(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "employee")
	if !ok {
		return
	}
	var req hrapp.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	employee, err := h.employees.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// DeleteEmployee godoc
// @ID           deleteEmployee
// @Summary      Delete an employee
// @Tags         hr
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /hr/employees/{id} [delete]
func (h *HRHandler) DeleteEmployee(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "employee")
	if !ok {
		return
	}
	if err := h.employees.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TerminateEmployee godoc
// @ID           terminateEmployee
// @Summary      Terminate an employee
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant ID"
// @Param        id path string true "Employee ID" format(uuid)
// @Param        request body hrapp.TerminateEmployeeRequest true "Request"
// @Success      200 {object} APIResponse[hrapp.EmployeeResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /hr/employees/{id}/terminate [post]
func (h *HRHandler) TerminateEmployee(c *gin.Context) {
	tenantID, id, ok := h.tenantAndID(c, "employee")
	if !ok {
		return
	}
	var req hrapp.TerminateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	employee, err := h.employees.Terminate(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}
