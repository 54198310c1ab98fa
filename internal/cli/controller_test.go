package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository/repotest"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/service"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type session struct {
	store *repotest.Store
	svc   *service.OrgService
	out   *bytes.Buffer
	logs  *observer.ObservedLogs
}

func newSession(t *testing.T) *session {
	t.Helper()
	store := repotest.NewStore()
	return &session{
		store: store,
		svc: service.NewOrgService(service.OrgDependencies{
			DepartmentRepo: store.Departments(),
			RoleRepo:       store.Roles(),
			EmployeeRepo:   store.Employees(),
		}),
		out: &bytes.Buffer{},
	}
}

// run feeds the scripted lines to a fresh controller and returns its output.
func (s *session) run(t *testing.T, lines ...string) string {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	s.logs = logs
	s.out.Reset()
	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	ctrl := NewController(s.svc, NewLinePrompter(input, s.out), s.out, zap.New(core))
	require.NoError(t, ctrl.Run(context.Background()))
	return s.out.String()
}

func (s *session) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	eng, err := s.svc.AddDepartment(ctx, "Engineering")
	require.NoError(t, err)
	_, err = s.svc.AddDepartment(ctx, "Legal")
	require.NoError(t, err)
	dev, err := s.svc.AddRole(ctx, "Developer", 100000, eng.ID)
	require.NoError(t, err)
	lead, err := s.svc.AddRole(ctx, "Lead", 150000, eng.ID)
	require.NoError(t, err)
	boss, err := s.svc.AddEmployee(ctx, "Ada", "Lovelace", lead.ID, nil)
	require.NoError(t, err)
	_, err = s.svc.AddEmployee(ctx, "Alan", "Turing", dev.ID, &boss.ID)
	require.NoError(t, err)
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestMenuListsActionsInOrder(t *testing.T) {
	out := newSession(t).run(t, "15")

	assert.Contains(t, out, " 1) view all departments")
	assert.Contains(t, out, " 6) view total department budget")
	assert.Contains(t, out, "11) update an employee manager")
	assert.Contains(t, out, "15) exit")
	assert.Contains(t, out, "Goodbye!")
}

func TestInvalidMenuChoiceAsksAgain(t *testing.T) {
	out := newSession(t).run(t, "0", "abc", "15")

	assert.Equal(t, 2, strings.Count(out, "Please enter a number between 1 and 15."))
	assert.Contains(t, out, "Goodbye!")
}

func TestEndOfInputStopsLoop(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "1")

	assert.Contains(t, out, "No departments found.")
	assert.NotContains(t, out, "Goodbye!")
}

func TestAddDepartmentThenView(t *testing.T) {
	s := newSession(t)
	out := s.run(t, "7", "  ", "Engineering", "1", "15")

	assert.Contains(t, out, "This field is required.")
	assert.Contains(t, out, "Department 'Engineering' added with ID 1.")
	assert.Contains(t, out, "Engineering")

	depts, err := s.svc.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 1)
}

func TestAddRoleRejectsMissingDepartmentBeforeInsert(t *testing.T) {
	s := newSession(t)
	_, err := s.svc.AddDepartment(context.Background(), "Engineering")
	require.NoError(t, err)

	out := s.run(t, "8", "Developer", "lots", "-5", "95000", "42", "n", "1", "15")

	assert.Contains(t, out, "Please enter a positive number no greater than 9999999999.99.")
	assert.Contains(t, out, "No department with ID 42. Create a new department?")
	assert.Contains(t, out, "Please enter an existing department ID.")
	assert.Contains(t, out, "Role 'Developer' added with ID 1, salary 95000.00, in department ID 1.")
	assert.Equal(t, 1, countCalls(s.store.Calls(), "roles.Create"))
}

func TestAddRoleCreatesDepartmentInline(t *testing.T) {
	s := newSession(t)

	out := s.run(t, "8", "Researcher", "70000", "3", "y", "Research", "2", "15")

	assert.Contains(t, out, "Department 'Research' added with ID 1.")
	assert.Contains(t, out, "Role 'Researcher' added with ID 1, salary 70000.00, in department ID 1.")
	assert.Contains(t, out, "Research")

	roles, err := s.svc.ListRoleDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Research", roles[0].Department)
}

func TestAddEmployeeValidatesRoleAndManager(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "9", "Grace", "Hopper", "x", "9", "1", "7", "abc", "1", "15")

	assert.Contains(t, out, "Please enter a valid ID (a positive whole number).")
	assert.Contains(t, out, "No role with ID 9. Please try again.")
	assert.Contains(t, out, "No employee with ID 7. Please try again.")
	assert.Contains(t, out, "Please enter a valid ID or leave blank.")
	assert.Contains(t, out, "Employee 'Grace Hopper' added with ID 3, role ID 1 and manager ID 1.")
}

func TestAddEmployeeWithoutManager(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "9", "Linus", "Torvalds", "2", "", "15")
	assert.Contains(t, out, "Employee 'Linus Torvalds' added with ID 3, role ID 2 and manager none.")
}

func TestViewEmployeesJoined(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "3", "15")
	for _, want := range []string{"First Name", "Ada", "Lovelace", "Lead", "Engineering", "150000.00", "Ada Lovelace", "null"} {
		assert.Contains(t, out, want)
	}
}

func TestViewEmployeesByManager(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "4", "99", "1", "4", "2", "15")

	assert.Contains(t, out, "No employee with ID 99. Please try again.")
	assert.Contains(t, out, "Turing")
	assert.Contains(t, out, "Alan Turing has no direct reports.")
}

func TestViewEmployeesByDepartment(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "5", "1", "5", "2", "15")

	assert.Contains(t, out, "Developer")
	assert.Contains(t, out, "No employees in department 'Legal'.")
}

func TestViewDepartmentBudget(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "6", "1", "6", "2", "15")

	assert.Contains(t, out, "Total utilized budget for department 'Engineering' (ID 1) is: 250000.00")
	assert.Contains(t, out, "Department 'Legal' has no employees; no budget is utilized.")
}

func TestUpdateEmployeeRole(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "10", "5", "2", "7", "2", "15")

	assert.Contains(t, out, "No employee with ID 5. Please try again.")
	assert.Contains(t, out, "No role with ID 7. Please try again.")
	assert.Contains(t, out, "Employee 'Alan Turing' now holds role 'Lead' (ID 2).")
}

func TestUpdateEmployeeManager(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "11", "1", "1", "2", "11", "2", "", "15")

	assert.Contains(t, out, "An employee cannot be their own manager.")
	assert.Contains(t, out, "Employee 'Ada Lovelace' now has manager ID 2.")
	assert.Contains(t, out, "Employee 'Alan Turing' now has manager none.")
}

func TestDeletes(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t,
		"12", "77",
		"12", "1",
		"14", "1",
		"13", "9",
		"12", "2",
		"15")

	assert.Contains(t, out, "No department with ID 77; nothing deleted.")
	assert.Contains(t, out, "Could not delete a department: referenced record missing or still in use (constraint=roles_department_id_fkey)")
	assert.Contains(t, out, "Employee 'Ada Lovelace' (ID 1) deleted.")
	assert.Contains(t, out, "No role with ID 9; nothing deleted.")
	assert.Contains(t, out, "Department 'Legal' (ID 2) deleted.")

	emp, err := s.svc.GetEmployee(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, emp.ManagerID)
}

func TestStoreFailureEndsActionNotLoop(t *testing.T) {
	s := newSession(t)
	s.store.FailWith(errors.New("connection refused"))

	out := s.run(t, "1", "15")

	assert.Contains(t, out, "Error while trying to view all departments")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 1, s.logs.FilterMessage("menu action failed").Len())
}

func TestCancelledContextStopsLoop(t *testing.T) {
	s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := NewController(s.svc, NewLinePrompter(strings.NewReader("1\n"), s.out), s.out, nil)
	require.NoError(t, ctrl.Run(ctx))
	assert.Empty(t, s.store.Calls())
}

func TestCancelWhileWaitingForInputEndsSession(t *testing.T) {
	s := newSession(t)
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := NewController(s.svc, NewLinePrompter(r, io.Discard), io.Discard, nil)

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	_, err := io.WriteString(w, "7\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run kept waiting for input after cancel")
	}
	assert.Zero(t, countCalls(s.store.Calls(), "departments.Create"))
}

func TestAddRoleRejectsSalaryOutOfRange(t *testing.T) {
	s := newSession(t)
	_, err := s.svc.AddDepartment(context.Background(), "Engineering")
	require.NoError(t, err)

	out := s.run(t, "8", "Dev", "inf", "NaN", "1e11", "10000000000", "9999999999.99", "1", "15")

	assert.Equal(t, 4, strings.Count(out, "Please enter a positive number no greater than 9999999999.99."))
	assert.Contains(t, out, "Role 'Dev' added with ID 1, salary 9999999999.99, in department ID 1.")
	assert.Equal(t, 1, countCalls(s.store.Calls(), "roles.Create"))
}

func TestDeleteAsksAgainForNonPositiveID(t *testing.T) {
	s := newSession(t)
	s.seed(t)

	out := s.run(t, "12", "0", "-3", "77", "15")

	assert.Equal(t, 2, strings.Count(out, "Please enter a valid ID (a positive whole number)."))
	assert.Contains(t, out, "No department with ID 77; nothing deleted.")
	assert.NotContains(t, out, "Could not delete")
}
