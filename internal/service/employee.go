package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/target/hr-console/internal/domain/model"
	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/ports"
)

const (
	employeesPath   = "employees"
	departmentsPath = "departments"
)

// EmployeeServiceOptions groups dependencies for EmployeeService.
type EmployeeServiceOptions struct {
	Gateway ports.Gateway // Required
	Logger  *slog.Logger  // Optional
}

// EmployeeService is the employee registry backed by the HR service.
type EmployeeService struct {
	gw     ports.Gateway
	logger *slog.Logger
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(opts EmployeeServiceOptions) *EmployeeService {
	if opts.Gateway == nil {
		panic("service: Gateway is required")
	}
	return &EmployeeService{gw: opts.Gateway, logger: componentLogger(opts.Logger, "employee_service")}
}

// List returns every employee.
func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	var out []model.Employee
	if err := s.gw.Get(ctx, employeesPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// Find returns the employee with id from the current list.
func (s *EmployeeService) Find(ctx context.Context, id model.ID) (model.Employee, error) {
	list, err := s.List(ctx)
	if err != nil {
		return model.Employee{}, err
	}
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Employee{}, apperrors.NotFoundf("Employee %s not found.", id)
}

// Create validates req and registers a new employee.
func (s *EmployeeService) Create(ctx context.Context, req model.EmployeeRequest) (model.Employee, error) {
	if err := req.Validate(); err != nil {
		return model.Employee{}, err
	}
	var out model.Employee
	if err := s.gw.Post(ctx, employeesPath, req, &out); err != nil {
		return model.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	s.logger.InfoContext(ctx, "employee created", "id", out.ID)
	return out, nil
}

// Update validates req and replaces the employee with id.
func (s *EmployeeService) Update(ctx context.Context, id model.ID, req model.EmployeeRequest) (model.Employee, error) {
	if id.IsZero() {
		return model.Employee{}, apperrors.Validation("Employee id is required.")
	}
	if err := req.Validate(); err != nil {
		return model.Employee{}, err
	}
	var out model.Employee
	if err := s.gw.Put(ctx, itemPath(employeesPath, id), req, &out); err != nil {
		return model.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	if out.ID.IsZero() {
		out = employeeFromRequest(id, req)
	}
	return out, nil
}

// Delete removes the employee with id.
func (s *EmployeeService) Delete(ctx context.Context, id model.ID) error {
	if id.IsZero() {
		return apperrors.Validation("Employee id is required.")
	}
	if err := s.gw.Delete(ctx, itemPath(employeesPath, id)); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	s.logger.InfoContext(ctx, "employee deleted", "id", id)
	return nil
}

func employeeFromRequest(id model.ID, req model.EmployeeRequest) model.Employee {
	return model.Employee{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Position:   req.Position,
		Email:      req.Email,
	}
}

// DepartmentService lists departments for the employee form.
type DepartmentService struct {
	gw ports.Gateway
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(gw ports.Gateway) *DepartmentService {
	if gw == nil {
		panic("service: Gateway is required")
	}
	return &DepartmentService{gw: gw}
}

// List returns every department.
func (s *DepartmentService) List(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	if err := s.gw.Get(ctx, departmentsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return out, nil
}

func itemPath(collection string, id model.ID) string {
	return collection + "/" + url.PathEscape(id.String())
}

func componentLogger(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}
