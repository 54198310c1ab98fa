package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

// EmployeeRepository manages persistence for employees.
type EmployeeRepository interface {
	List(ctx context.Context) ([]domain.Employee, error)
	ListDetailed(ctx context.Context) ([]domain.EmployeeDetail, error)
	ListByManager(ctx context.Context, managerID int64) ([]domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.DepartmentEmployee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error)
	UpdateRole(ctx context.Context, id, roleID int64) (*domain.Employee, error)
	UpdateManager(ctx context.Context, id int64, managerID *int64) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) (*domain.Employee, error)
}

type employeeRepository struct {
	db dbtx
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(db dbtx) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, role_id, manager_id`

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`
	return r.queryEmployees(ctx, query)
}

func (r *employeeRepository) ListByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE manager_id = $1 ORDER BY id`
	return r.queryEmployees(ctx, query, managerID)
}

func (r *employeeRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.DepartmentEmployee, error) {
	const query = `
        SELECT e.id, e.first_name, e.last_name, e.role_id, e.manager_id, r.title
        FROM employees e
        JOIN roles r ON e.role_id = r.id
        WHERE r.department_id = $1
        ORDER BY e.id`
	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentEmployee
	for rows.Next() {
		var emp domain.DepartmentEmployee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.RoleID, &emp.ManagerID, &emp.Title); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) ListDetailed(ctx context.Context) ([]domain.EmployeeDetail, error) {
	const query = `
        SELECT e.id, e.first_name, e.last_name, e.role_id, e.manager_id,
               r.title, d.name, r.salary::float8,
               m.first_name || ' ' || m.last_name AS manager
        FROM employees e
        JOIN roles r ON r.id = e.role_id
        JOIN departments d ON d.id = r.department_id
        LEFT JOIN employees m ON m.id = e.manager_id
        ORDER BY e.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmployeeDetail
	for rows.Next() {
		var emp domain.EmployeeDetail
		if err := rows.Scan(
			&emp.ID,
			&emp.FirstName,
			&emp.LastName,
			&emp.RoleID,
			&emp.ManagerID,
			&emp.Title,
			&emp.Department,
			&emp.Salary,
			&emp.Manager,
		); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepository) Create(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error) {
	const query = `
        INSERT INTO employees (first_name, last_name, role_id, manager_id)
        VALUES ($1,$2,$3,$4)
        RETURNING ` + employeeColumns
	emp, err := scanEmployee(r.db.QueryRow(ctx, query, firstName, lastName, roleID, managerID))
	if err == nil && emp == nil {
		return nil, pgx.ErrNoRows
	}
	return emp, err
}

// UpdateRole returns the updated row, or nil when no employee has the id.
func (r *employeeRepository) UpdateRole(ctx context.Context, id, roleID int64) (*domain.Employee, error) {
	const query = `UPDATE employees SET role_id = $1 WHERE id = $2 RETURNING ` + employeeColumns
	return scanEmployee(r.db.QueryRow(ctx, query, roleID, id))
}

// UpdateManager sets or clears (nil) the manager.
func (r *employeeRepository) UpdateManager(ctx context.Context, id int64, managerID *int64) (*domain.Employee, error) {
	const query = `UPDATE employees SET manager_id = $1 WHERE id = $2 RETURNING ` + employeeColumns
	return scanEmployee(r.db.QueryRow(ctx, query, managerID, id))
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepository) queryEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.RoleID, &emp.ManagerID); err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.RoleID, &emp.ManagerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}
