package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

// RoleRepository manages persistence for roles.
type RoleRepository interface {
	List(ctx context.Context) ([]domain.Role, error)
	ListDetailed(ctx context.Context) ([]domain.RoleDetail, error)
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	Create(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error)
	Delete(ctx context.Context, id int64) (*domain.Role, error)
}

type roleRepository struct {
	db dbtx
}

// NewRoleRepository constructs repository.
func NewRoleRepository(db dbtx) RoleRepository {
	return &roleRepository{db: db}
}

const roleColumns = `id, title, salary::float8, department_id`

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	const query = `SELECT ` + roleColumns + ` FROM roles ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Title, &role.Salary, &role.DepartmentID); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

func (r *roleRepository) ListDetailed(ctx context.Context) ([]domain.RoleDetail, error) {
	const query = `
        SELECT r.id, r.title, r.salary::float8, r.department_id, d.name
        FROM roles r
        JOIN departments d ON d.id = r.department_id
        ORDER BY r.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleDetail
	for rows.Next() {
		var role domain.RoleDetail
		if err := rows.Scan(&role.ID, &role.Title, &role.Salary, &role.DepartmentID, &role.Department); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `SELECT ` + roleColumns + ` FROM roles WHERE id=$1`
	return scanRole(r.db.QueryRow(ctx, query, id))
}

// Create inserts without checking that the department exists; the foreign
// key constraint is the only guard.
func (r *roleRepository) Create(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error) {
	const query = `
        INSERT INTO roles (title, salary, department_id)
        VALUES ($1,$2,$3)
        RETURNING ` + roleColumns
	role, err := scanRole(r.db.QueryRow(ctx, query, title, salary, departmentID))
	if err == nil && role == nil {
		return nil, pgx.ErrNoRows
	}
	return role, err
}

func (r *roleRepository) Delete(ctx context.Context, id int64) (*domain.Role, error) {
	const query = `DELETE FROM roles WHERE id=$1 RETURNING ` + roleColumns
	return scanRole(r.db.QueryRow(ctx, query, id))
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Title, &role.Salary, &role.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}
