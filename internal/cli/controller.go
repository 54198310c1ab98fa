// Package cli implements the interactive menu: a loop that shows the fixed
// action list, collects and validates parameters, and calls the org service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
	apperrors "github.com/O-KenneDevWorks/Employee-Manager/pkg/util/errorutil"
)

// Org is the service surface the menu drives.
type Org interface {
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	AddDepartment(ctx context.Context, name string) (*domain.Department, error)
	DeleteDepartment(ctx context.Context, id int64) (*domain.Department, error)
	DepartmentBudget(ctx context.Context, id int64) (*float64, error)

	ListRoles(ctx context.Context) ([]domain.Role, error)
	ListRoleDetails(ctx context.Context) ([]domain.RoleDetail, error)
	AddRole(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error)
	DeleteRole(ctx context.Context, id int64) (*domain.Role, error)

	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	ListEmployeeDetails(ctx context.Context) ([]domain.EmployeeDetail, error)
	EmployeesByManager(ctx context.Context, managerID int64) ([]domain.Employee, error)
	EmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.DepartmentEmployee, error)
	AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error)
	UpdateEmployeeRole(ctx context.Context, id, roleID int64) (*domain.Employee, error)
	UpdateEmployeeManager(ctx context.Context, id int64, managerID *int64) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// Controller runs the menu loop.
type Controller struct {
	org    Org
	prompt Prompter
	out    io.Writer
	logger *zap.Logger
}

func NewController(org Org, prompt Prompter, out io.Writer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{org: org, prompt: prompt, out: out, logger: logger}
}

// Run shows the menu until exit is chosen, input ends or ctx is cancelled.
// A failing action is reported and the menu comes back.
func (c *Controller) Run(ctx context.Context) error {
	labels := menuLabels()
	for {
		if ctx.Err() != nil {
			return nil
		}
		choice, err := c.prompt.Select(ctx, "Select an action", labels)
		if err != nil {
			if endOfInput(err) {
				return nil
			}
			return err
		}
		item := menu[choice]
		if item.run == nil {
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		}
		if err := item.run(c, ctx); err != nil {
			if endOfInput(err) {
				return nil
			}
			c.report(item.label, err)
		}
		fmt.Fprintln(c.out)
	}
}

// endOfInput reports errors that end the session normally: input ran out,
// the user aborted, or ctx was cancelled (ctrl+c).
func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled)
}

// report prints a failed action. Validation and conflict errors are the
// user's to fix; anything else is also logged.
func (c *Controller) report(action string, err error) {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Code != apperrors.CodeInternal {
		warnColor.Fprintf(c.out, "Could not %s: %s%s\n", action, domainErr.Message, formatDetails(domainErr.Details))
		return
	}
	c.logger.Error("menu action failed", zap.String("action", action), zap.Error(err))
	errorColor.Fprintf(c.out, "Error while trying to %s: %v\n", action, err)
}

func formatDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(details))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
