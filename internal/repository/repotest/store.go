// Package repotest provides in-memory repository implementations that mirror
// the PostgreSQL schema's constraints closely enough for service, CLI and HTTP
// tests.
package repotest

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository"
)

// Store holds the three tables. The zero value is not usable; call NewStore.
type Store struct {
	mu sync.Mutex

	departments map[int64]domain.Department
	roles       map[int64]domain.Role
	employees   map[int64]domain.Employee
	seq         struct{ dept, role, emp int64 }

	err   error
	calls []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		departments: make(map[int64]domain.Department),
		roles:       make(map[int64]domain.Role),
		employees:   make(map[int64]domain.Employee),
	}
}

// FailWith makes every subsequent call return err. Pass nil to clear.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls lists the repository methods invoked so far, e.g. "roles.Create".
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Store) Departments() repository.DepartmentRepository { return departmentRepo{s} }
func (s *Store) Roles() repository.RoleRepository             { return roleRepo{s} }
func (s *Store) Employees() repository.EmployeeRepository     { return employeeRepo{s} }

// enter locks the store and records the call. Callers must unlock.
func (s *Store) enter(name string) error {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	return s.err
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "violates foreign key constraint"}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func checkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23514", ConstraintName: constraint, Message: "violates check constraint"}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type departmentRepo struct{ s *Store }

func (r departmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	s := r.s
	if err := s.enter("departments.List"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var out []domain.Department
	for _, id := range sortedKeys(s.departments) {
		out = append(out, s.departments[id])
	}
	return out, nil
}

func (r departmentRepo) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	s := r.s
	if err := s.enter("departments.GetByID"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	dept, ok := s.departments[id]
	if !ok {
		return nil, nil
	}
	return &dept, nil
}

func (r departmentRepo) Create(ctx context.Context, name string) (*domain.Department, error) {
	s := r.s
	if err := s.enter("departments.Create"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	for _, d := range s.departments {
		if d.Name == name {
			return nil, uniqueViolation("departments_name_key")
		}
	}
	s.seq.dept++
	dept := domain.Department{ID: s.seq.dept, Name: name}
	s.departments[dept.ID] = dept
	return &dept, nil
}

func (r departmentRepo) Delete(ctx context.Context, id int64) (*domain.Department, error) {
	s := r.s
	if err := s.enter("departments.Delete"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	dept, ok := s.departments[id]
	if !ok {
		return nil, nil
	}
	for _, role := range s.roles {
		if role.DepartmentID == id {
			return nil, fkViolation("roles_department_id_fkey")
		}
	}
	delete(s.departments, id)
	return &dept, nil
}

func (r departmentRepo) TotalBudget(ctx context.Context, id int64) (*float64, error) {
	s := r.s
	if err := s.enter("departments.TotalBudget"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var total float64
	found := false
	for _, emp := range s.employees {
		role := s.roles[emp.RoleID]
		if role.DepartmentID == id {
			total += role.Salary
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	return &total, nil
}

type roleRepo struct{ s *Store }

func (r roleRepo) List(ctx context.Context) ([]domain.Role, error) {
	s := r.s
	if err := s.enter("roles.List"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var out []domain.Role
	for _, id := range sortedKeys(s.roles) {
		out = append(out, s.roles[id])
	}
	return out, nil
}

func (r roleRepo) ListDetailed(ctx context.Context) ([]domain.RoleDetail, error) {
	s := r.s
	if err := s.enter("roles.ListDetailed"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var out []domain.RoleDetail
	for _, id := range sortedKeys(s.roles) {
		role := s.roles[id]
		out = append(out, domain.RoleDetail{Role: role, Department: s.departments[role.DepartmentID].Name})
	}
	return out, nil
}

func (r roleRepo) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	s := r.s
	if err := s.enter("roles.GetByID"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	role, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r roleRepo) Create(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error) {
	s := r.s
	if err := s.enter("roles.Create"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	if salary <= 0 {
		return nil, checkViolation("roles_salary_check")
	}
	if _, ok := s.departments[departmentID]; !ok {
		return nil, fkViolation("roles_department_id_fkey")
	}
	s.seq.role++
	role := domain.Role{ID: s.seq.role, Title: title, Salary: salary, DepartmentID: departmentID}
	s.roles[role.ID] = role
	return &role, nil
}

func (r roleRepo) Delete(ctx context.Context, id int64) (*domain.Role, error) {
	s := r.s
	if err := s.enter("roles.Delete"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	role, ok := s.roles[id]
	if !ok {
		return nil, nil
	}
	for _, emp := range s.employees {
		if emp.RoleID == id {
			return nil, fkViolation("employees_role_id_fkey")
		}
	}
	delete(s.roles, id)
	return &role, nil
}

type employeeRepo struct{ s *Store }

func (r employeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.List"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	return s.filterEmployees(func(domain.Employee) bool { return true }), nil
}

func (r employeeRepo) ListDetailed(ctx context.Context) ([]domain.EmployeeDetail, error) {
	s := r.s
	if err := s.enter("employees.ListDetailed"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var out []domain.EmployeeDetail
	for _, id := range sortedKeys(s.employees) {
		emp := s.employees[id]
		role := s.roles[emp.RoleID]
		detail := domain.EmployeeDetail{
			Employee:   emp,
			Title:      role.Title,
			Department: s.departments[role.DepartmentID].Name,
			Salary:     role.Salary,
		}
		if emp.ManagerID != nil {
			if mgr, ok := s.employees[*emp.ManagerID]; ok {
				name := mgr.FullName()
				detail.Manager = &name
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (r employeeRepo) ListByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.ListByManager"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	return s.filterEmployees(func(e domain.Employee) bool {
		return e.ManagerID != nil && *e.ManagerID == managerID
	}), nil
}

func (r employeeRepo) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.DepartmentEmployee, error) {
	s := r.s
	if err := s.enter("employees.ListByDepartment"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	var out []domain.DepartmentEmployee
	for _, id := range sortedKeys(s.employees) {
		emp := s.employees[id]
		role := s.roles[emp.RoleID]
		if role.DepartmentID == departmentID {
			out = append(out, domain.DepartmentEmployee{Employee: emp, Title: role.Title})
		}
	}
	return out, nil
}

func (r employeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.GetByID"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

func (r employeeRepo) Create(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.Create"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID]; !ok {
		return nil, fkViolation("employees_role_id_fkey")
	}
	if managerID != nil {
		if _, ok := s.employees[*managerID]; !ok {
			return nil, fkViolation("employees_manager_id_fkey")
		}
	}
	s.seq.emp++
	emp := domain.Employee{ID: s.seq.emp, FirstName: firstName, LastName: lastName, RoleID: roleID, ManagerID: copyID(managerID)}
	s.employees[emp.ID] = emp
	return &emp, nil
}

func (r employeeRepo) UpdateRole(ctx context.Context, id, roleID int64) (*domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.UpdateRole"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	if _, ok := s.roles[roleID]; !ok {
		return nil, fkViolation("employees_role_id_fkey")
	}
	emp.RoleID = roleID
	s.employees[id] = emp
	return &emp, nil
}

func (r employeeRepo) UpdateManager(ctx context.Context, id int64, managerID *int64) (*domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.UpdateManager"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	if managerID != nil {
		if _, ok := s.employees[*managerID]; !ok {
			return nil, fkViolation("employees_manager_id_fkey")
		}
	}
	emp.ManagerID = copyID(managerID)
	s.employees[id] = emp
	return &emp, nil
}

func (r employeeRepo) Delete(ctx context.Context, id int64) (*domain.Employee, error) {
	s := r.s
	if err := s.enter("employees.Delete"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	delete(s.employees, id)
	// ON DELETE SET NULL
	for otherID, other := range s.employees {
		if other.ManagerID != nil && *other.ManagerID == id {
			other.ManagerID = nil
			s.employees[otherID] = other
		}
	}
	return &emp, nil
}

func (s *Store) filterEmployees(keep func(domain.Employee) bool) []domain.Employee {
	var out []domain.Employee
	for _, id := range sortedKeys(s.employees) {
		if emp := s.employees[id]; keep(emp) {
			out = append(out, emp)
		}
	}
	return out
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
