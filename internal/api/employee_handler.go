package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/crud-suite/internal/api/shared"
	"github.com/phrazzld/crud-suite/internal/service"
)

// EmployeeHandler serves shop staff records.
type EmployeeHandler struct {
	employees service.EmployeeService
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employees service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for EmployeeHandler")
	}
	return &EmployeeHandler{
		employees: employees,
		logger:    logger.With(slog.String("component", "employee_handler")),
	}
}

func employeeInput(req EmployeeRequest) service.EmployeeInput {
	in := service.EmployeeInput{FullName: req.FullName, Position: req.Position, Email: req.Email}
	if req.HiredAt != nil {
		in.HiredAt = *req.HiredAt
	}
	return in
}

// Create handles POST /employees.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Parse and validate the request body
	var req EmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employees.Create(r.Context(), employeeInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create employee")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, employee)
}

// Get handles GET /employees/{id}.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	employee, err := h.employees.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get employee")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employee)
}

// List handles GET /employees.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	// Pagination comes from the limit and offset query parameters
	page, err := pageFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	employees, err := h.employees.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list employees")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employees)
}

// Update handles PUT /employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	// Parse and validate the request body
	var req EmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	employee, err := h.employees.Update(r.Context(), id, employeeInput(req))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update employee")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, employee)
}

// Delete handles DELETE /employees/{id}.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employees.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete employee")
		return
	}
	shared.RespondNoContent(w)
}
