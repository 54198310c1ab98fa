package service

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/events"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository"
	apperrors "github.com/O-KenneDevWorks/Employee-Manager/pkg/util/errorutil"
)

// OrgService exposes department, role and employee operations to the CLI and
// HTTP transports. It validates input shape only; whether referenced rows
// exist is decided by the store.
type OrgService struct {
	departments repository.DepartmentRepository
	roles       repository.RoleRepository
	employees   repository.EmployeeRepository
	dispatcher  events.Dispatcher
	validate    *validator.Validate
	logger      *zap.Logger
}

// OrgDependencies encapsulates what the service needs.
type OrgDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	RoleRepo       repository.RoleRepository
	EmployeeRepo   repository.EmployeeRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewOrgService constructs the service.
func NewOrgService(deps OrgDependencies) *OrgService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrgService{
		departments: deps.DepartmentRepo,
		roles:       deps.RoleRepo,
		employees:   deps.EmployeeRepo,
		dispatcher:  deps.Dispatcher,
		validate:    newValidator(),
		logger:      logger,
	}
}

type departmentInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type roleInput struct {
	Title        string  `json:"title" validate:"required,max=100"`
	Salary       float64 `json:"salary" validate:"gt=0,lte=9999999999.99"`
	DepartmentID int64   `json:"department_id" validate:"gt=0"`
}

type employeeInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	RoleID    int64  `json:"role_id" validate:"gt=0"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,gt=0"`
}

type idInput struct {
	ID int64 `json:"id" validate:"gt=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// check runs struct validation and converts failures to a validation
// DomainError keyed by field name.
func (s *OrgService) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return apperrors.NewValidationError("invalid input", details)
}

func (s *OrgService) checkID(id int64) error {
	return s.check(idInput{ID: id})
}

func (s *OrgService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("entity_id", event.EntityID),
			zap.Error(err))
	}
}

// ListDepartments returns every department ordered by id.
func (s *OrgService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return depts, nil
}

// GetDepartment fetches a department or returns NOT_FOUND.
func (s *OrgService) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if dept == nil {
		return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
	}
	return dept, nil
}

// AddDepartment inserts a department. Store failures are logged before being
// returned.
func (s *OrgService) AddDepartment(ctx context.Context, name string) (*domain.Department, error) {
	input := departmentInput{Name: strings.TrimSpace(name)}
	if err := s.check(input); err != nil {
		return nil, err
	}
	dept, err := s.departments.Create(ctx, input.Name)
	if err != nil {
		s.logger.Error("failed to add department", zap.String("name", input.Name), zap.Error(err))
		return nil, apperrors.FromStoreError(err)
	}
	s.publish(ctx, events.New(events.EventDepartmentAdded, dept.ID, events.DepartmentPayload{Name: dept.Name}))
	return dept, nil
}

// DeleteDepartment removes a department. A nil result means nothing matched.
func (s *OrgService) DeleteDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	dept, err := s.departments.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if dept != nil {
		s.publish(ctx, events.New(events.EventDepartmentDeleted, dept.ID, events.DepartmentPayload{Name: dept.Name}))
	}
	return dept, nil
}

// DepartmentBudget sums the salaries of the department's employees. Nil
// means the department has no employees.
func (s *OrgService) DepartmentBudget(ctx context.Context, id int64) (*float64, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	total, err := s.departments.TotalBudget(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return total, nil
}

func (s *OrgService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return roles, nil
}

// ListRoleDetails returns roles joined with their department name.
func (s *OrgService) ListRoleDetails(ctx context.Context) ([]domain.RoleDetail, error) {
	roles, err := s.roles.ListDetailed(ctx)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return roles, nil
}

func (s *OrgService) GetRole(ctx context.Context, id int64) (*domain.Role, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if role == nil {
		return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
	}
	return role, nil
}

// AddRole inserts a role. The department is not looked up first.
func (s *OrgService) AddRole(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error) {
	input := roleInput{Title: strings.TrimSpace(title), Salary: salary, DepartmentID: departmentID}
	if err := s.check(input); err != nil {
		return nil, err
	}
	role, err := s.roles.Create(ctx, input.Title, input.Salary, input.DepartmentID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	s.publish(ctx, events.New(events.EventRoleAdded, role.ID, events.RolePayload{
		Title:        role.Title,
		Salary:       role.Salary,
		DepartmentID: role.DepartmentID,
	}))
	return role, nil
}

func (s *OrgService) DeleteRole(ctx context.Context, id int64) (*domain.Role, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	role, err := s.roles.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if role != nil {
		s.publish(ctx, events.New(events.EventRoleDeleted, role.ID, events.RolePayload{
			Title:        role.Title,
			Salary:       role.Salary,
			DepartmentID: role.DepartmentID,
		}))
	}
	return role, nil
}

func (s *OrgService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	emps, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return emps, nil
}

// ListEmployeeDetails returns employees with title, department, salary and
// manager name.
func (s *OrgService) ListEmployeeDetails(ctx context.Context) ([]domain.EmployeeDetail, error) {
	emps, err := s.employees.ListDetailed(ctx)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return emps, nil
}

func (s *OrgService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if emp == nil {
		return nil, apperrors.NewNotFound("employee", map[string]any{"id": id})
	}
	return emp, nil
}

// EmployeesByManager returns the direct reports of managerID.
func (s *OrgService) EmployeesByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	if err := s.checkID(managerID); err != nil {
		return nil, err
	}
	emps, err := s.employees.ListByManager(ctx, managerID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return emps, nil
}

// EmployeesByDepartment returns employees whose role belongs to the
// department.
func (s *OrgService) EmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.DepartmentEmployee, error) {
	if err := s.checkID(departmentID); err != nil {
		return nil, err
	}
	emps, err := s.employees.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	return emps, nil
}

// AddEmployee inserts an employee. managerID may be nil.
func (s *OrgService) AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error) {
	input := employeeInput{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		RoleID:    roleID,
		ManagerID: managerID,
	}
	if err := s.check(input); err != nil {
		return nil, err
	}
	emp, err := s.employees.Create(ctx, input.FirstName, input.LastName, input.RoleID, input.ManagerID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	s.publish(ctx, events.New(events.EventEmployeeAdded, emp.ID, events.EmployeePayload{
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		RoleID:    emp.RoleID,
		ManagerID: emp.ManagerID,
	}))
	return emp, nil
}

// UpdateEmployeeRole changes the employee's role. Nil means no such employee.
func (s *OrgService) UpdateEmployeeRole(ctx context.Context, id, roleID int64) (*domain.Employee, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	if err := s.check(struct {
		RoleID int64 `json:"role_id" validate:"gt=0"`
	}{roleID}); err != nil {
		return nil, err
	}
	emp, err := s.employees.UpdateRole(ctx, id, roleID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if emp != nil {
		s.publish(ctx, events.New(events.EventEmployeeRoleUpdated, emp.ID, events.EmployeeRoleUpdatedPayload{RoleID: emp.RoleID}))
	}
	return emp, nil
}

// UpdateEmployeeManager sets or, with a nil managerID, clears the manager.
func (s *OrgService) UpdateEmployeeManager(ctx context.Context, id int64, managerID *int64) (*domain.Employee, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	if managerID != nil {
		if err := s.check(struct {
			ManagerID int64 `json:"manager_id" validate:"gt=0,nefield=ID"`
			ID        int64 `json:"id"`
		}{*managerID, id}); err != nil {
			return nil, err
		}
	}
	emp, err := s.employees.UpdateManager(ctx, id, managerID)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if emp != nil {
		s.publish(ctx, events.New(events.EventEmployeeManagerUpdated, emp.ID, events.EmployeeManagerUpdatedPayload{ManagerID: emp.ManagerID}))
	}
	return emp, nil
}

func (s *OrgService) DeleteEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	emp, err := s.employees.Delete(ctx, id)
	if err != nil {
		return nil, apperrors.FromStoreError(err)
	}
	if emp != nil {
		s.publish(ctx, events.New(events.EventEmployeeDeleted, emp.ID, events.EmployeePayload{
			FirstName: emp.FirstName,
			LastName:  emp.LastName,
			RoleID:    emp.RoleID,
			ManagerID: emp.ManagerID,
		}))
	}
	return emp, nil
}
