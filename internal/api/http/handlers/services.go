package handlers

import (
	"context"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

// EmployeeLister is the service slice used by EmployeesHandler.
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// DepartmentCreator is the service slice used by DepartmentsHandler.
type DepartmentCreator interface {
	AddDepartment(ctx context.Context, name string) (*domain.Department, error)
}
