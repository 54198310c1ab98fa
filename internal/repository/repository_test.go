package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/persistence"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository"
)

// openTestPool connects to EMPMGR_TEST_DSN, applies the schema and empties
// every table. Tests skip when the variable is unset.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("EMPMGR_TEST_DSN")
	if dsn == "" {
		t.Skip("EMPMGR_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE employees, roles, departments RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type fixture struct {
	depts repository.DepartmentRepository
	roles repository.RoleRepository
	emps  repository.EmployeeRepository
}

func newFixture(t *testing.T) fixture {
	pool := openTestPool(t)
	return fixture{
		depts: repository.NewDepartmentRepository(pool),
		roles: repository.NewRoleRepository(pool),
		emps:  repository.NewEmployeeRepository(pool),
	}
}

func ptr(v int64) *int64 { return &v }

func TestDepartmentCreateThenList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.depts.Create(ctx, "Engineering")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Positive(t, created.ID)

	list, err := f.depts.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]domain.Department{*created}, list); diff != "" {
		t.Fatalf("departments mismatch (-want +got):\n%s", diff)
	}
}

func TestDepartmentDeleteMissingReturnsNil(t *testing.T) {
	f := newFixture(t)

	deleted, err := f.depts.Delete(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestRoleWithMissingDepartmentReachesStore(t *testing.T) {
	f := newFixture(t)

	_, err := f.roles.Create(context.Background(), "Ghost", 1000, 4242)
	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)
}

func TestTotalBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	eng, err := f.depts.Create(ctx, "Engineering")
	require.NoError(t, err)
	empty, err := f.depts.Create(ctx, "Legal")
	require.NoError(t, err)

	dev, err := f.roles.Create(ctx, "Developer", 120000, eng.ID)
	require.NoError(t, err)
	lead, err := f.roles.Create(ctx, "Lead", 150000.50, eng.ID)
	require.NoError(t, err)
	_, err = f.roles.Create(ctx, "Counsel", 99000, empty.ID)
	require.NoError(t, err)

	_, err = f.emps.Create(ctx, "Ada", "Lovelace", lead.ID, nil)
	require.NoError(t, err)
	_, err = f.emps.Create(ctx, "Alan", "Turing", dev.ID, nil)
	require.NoError(t, err)
	_, err = f.emps.Create(ctx, "Grace", "Hopper", dev.ID, nil)
	require.NoError(t, err)

	total, err := f.depts.TotalBudget(ctx, eng.ID)
	require.NoError(t, err)
	require.NotNil(t, total)
	assert.InDelta(t, 390000.50, *total, 0.001)

	none, err := f.depts.TotalBudget(ctx, empty.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestListByManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.depts.Create(ctx, "Sales")
	require.NoError(t, err)
	role, err := f.roles.Create(ctx, "Rep", 50000, dept.ID)
	require.NoError(t, err)

	boss, err := f.emps.Create(ctx, "Bo", "Ss", role.ID, nil)
	require.NoError(t, err)
	a, err := f.emps.Create(ctx, "A", "One", role.ID, ptr(boss.ID))
	require.NoError(t, err)
	b, err := f.emps.Create(ctx, "B", "Two", role.ID, ptr(boss.ID))
	require.NoError(t, err)
	_, err = f.emps.Create(ctx, "C", "Three", role.ID, ptr(a.ID))
	require.NoError(t, err)

	reports, err := f.emps.ListByManager(ctx, boss.ID)
	require.NoError(t, err)
	if diff := cmp.Diff([]domain.Employee{*a, *b}, reports); diff != "" {
		t.Fatalf("reports mismatch (-want +got):\n%s", diff)
	}

	none, err := f.emps.ListByManager(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListByDepartmentAndDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.depts.Create(ctx, "Finance")
	require.NoError(t, err)
	other, err := f.depts.Create(ctx, "Ops")
	require.NoError(t, err)
	analyst, err := f.roles.Create(ctx, "Analyst", 70000, dept.ID)
	require.NoError(t, err)
	opsRole, err := f.roles.Create(ctx, "Operator", 40000, other.ID)
	require.NoError(t, err)

	mgr, err := f.emps.Create(ctx, "Mia", "Grant", analyst.ID, nil)
	require.NoError(t, err)
	_, err = f.emps.Create(ctx, "Otto", "Ops", opsRole.ID, ptr(mgr.ID))
	require.NoError(t, err)

	inDept, err := f.emps.ListByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	require.Len(t, inDept, 1)
	assert.Equal(t, "Analyst", inDept[0].Title)
	assert.Equal(t, mgr.ID, inDept[0].ID)

	details, err := f.emps.ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Nil(t, details[0].Manager)
	require.NotNil(t, details[1].Manager)
	assert.Equal(t, "Mia Grant", *details[1].Manager)
	assert.Equal(t, "Ops", details[1].Department)
	assert.InDelta(t, 40000, details[1].Salary, 0.001)

	roles, err := f.roles.ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Finance", roles[0].Department)
}

func TestDeletePolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.depts.Create(ctx, "R&D")
	require.NoError(t, err)
	role, err := f.roles.Create(ctx, "Scientist", 90000, dept.ID)
	require.NoError(t, err)
	mgr, err := f.emps.Create(ctx, "Marie", "Curie", role.ID, nil)
	require.NoError(t, err)
	report, err := f.emps.Create(ctx, "Pierre", "Curie", role.ID, ptr(mgr.ID))
	require.NoError(t, err)

	var pgErr *pgconn.PgError
	_, err = f.depts.Delete(ctx, dept.ID)
	require.True(t, errors.As(err, &pgErr), "department with roles must be restricted")
	assert.Equal(t, "23503", pgErr.Code)

	_, err = f.roles.Delete(ctx, role.ID)
	require.True(t, errors.As(err, &pgErr), "role with employees must be restricted")

	deleted, err := f.emps.Delete(ctx, mgr.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	orphan, err := f.emps.GetByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	assert.Nil(t, orphan.ManagerID)
}

func TestEmployeeUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.depts.Create(ctx, "Support")
	require.NoError(t, err)
	r1, err := f.roles.Create(ctx, "Agent", 30000, dept.ID)
	require.NoError(t, err)
	r2, err := f.roles.Create(ctx, "Senior Agent", 45000, dept.ID)
	require.NoError(t, err)
	a, err := f.emps.Create(ctx, "Sam", "Lee", r1.ID, nil)
	require.NoError(t, err)
	b, err := f.emps.Create(ctx, "Kim", "Park", r1.ID, nil)
	require.NoError(t, err)

	updated, err := f.emps.UpdateRole(ctx, a.ID, r2.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, r2.ID, updated.RoleID)

	updated, err = f.emps.UpdateManager(ctx, a.ID, ptr(b.ID))
	require.NoError(t, err)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, b.ID, *updated.ManagerID)

	updated, err = f.emps.UpdateManager(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.ManagerID)

	missing, err := f.emps.UpdateRole(ctx, 9999, r2.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
