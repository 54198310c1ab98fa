package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, name string) (*domain.Department, error)
	Delete(ctx context.Context, id int64) (*domain.Department, error)
	TotalBudget(ctx context.Context, id int64) (*float64, error)
}

type departmentRepository struct {
	db dbtx
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(db dbtx) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT id, name FROM departments ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

// GetByID returns nil when no department has the id.
func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `SELECT id, name FROM departments WHERE id=$1`
	return scanDepartment(r.db.QueryRow(ctx, query, id))
}

func (r *departmentRepository) Create(ctx context.Context, name string) (*domain.Department, error) {
	const query = `
        INSERT INTO departments (name)
        VALUES ($1)
        RETURNING id, name`
	var dept domain.Department
	if err := r.db.QueryRow(ctx, query, name).Scan(&dept.ID, &dept.Name); err != nil {
		return nil, err
	}
	return &dept, nil
}

// Delete returns the removed row, or nil when nothing matched.
func (r *departmentRepository) Delete(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `DELETE FROM departments WHERE id=$1 RETURNING id, name`
	return scanDepartment(r.db.QueryRow(ctx, query, id))
}

// TotalBudget sums the salaries of the roles held by the department's
// employees. The result is nil when the department has no employees.
func (r *departmentRepository) TotalBudget(ctx context.Context, id int64) (*float64, error) {
	const query = `
        SELECT SUM(r.salary)::float8 AS total_budget
        FROM employees e
        JOIN roles r ON e.role_id = r.id
        WHERE r.department_id = $1`
	var total *float64
	if err := r.db.QueryRow(ctx, query, id).Scan(&total); err != nil {
		return nil, err
	}
	return total, nil
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var dept domain.Department
	if err := row.Scan(&dept.ID, &dept.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}
