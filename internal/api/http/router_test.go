package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/O-KenneDevWorks/Employee-Manager/internal/api/http"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/api/http/handlers"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/observability"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository/repotest"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/service"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app     *fiber.App
	store   *repotest.Store
	svc     *service.OrgService
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, checks map[string]handlers.Pinger) testServer {
	t.Helper()
	store := repotest.NewStore()
	svc := service.NewOrgService(service.OrgDependencies{
		DepartmentRepo: store.Departments(),
		RoleRepo:       store.Roles(),
		EmployeeRepo:   store.Employees(),
	})
	metrics := observability.NewMetrics()
	app := httptransport.NewApp(httptransport.AppConfig{
		Name:    "empmgr-test",
		Logger:  zap.NewNop(),
		Metrics: metrics,
	}, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler("empmgr", "test", checks),
		Employees:   handlers.NewEmployeesHandler(svc),
		Departments: handlers.NewDepartmentsHandler(svc),
	})
	return testServer{app: app, store: store, svc: svc, metrics: metrics}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func TestGetEmployeesEmptyIsArray(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var got []map[string]any
	decode(t, resp, &got)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetEmployees(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()
	dept, err := srv.svc.AddDepartment(ctx, "Eng")
	require.NoError(t, err)
	role, err := srv.svc.AddRole(ctx, "Dev", 100, dept.ID)
	require.NoError(t, err)
	boss, err := srv.svc.AddEmployee(ctx, "Ada", "Lovelace", role.ID, nil)
	require.NoError(t, err)
	_, err = srv.svc.AddEmployee(ctx, "Alan", "Turing", role.ID, &boss.ID)
	require.NoError(t, err)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []struct {
		ID        int64  `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		RoleID    int64  `json:"role_id"`
		ManagerID *int64 `json:"manager_id"`
	}
	decode(t, resp, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0].FirstName)
	assert.Nil(t, got[0].ManagerID)
	require.NotNil(t, got[1].ManagerID)
	assert.Equal(t, boss.ID, *got[1].ManagerID)
}

func TestGetEmployeesStoreFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.store.FailWith(errors.New("connection refused"))

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/employees", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "INTERNAL_ERROR", body["error"]["code"])
	assert.Equal(t, "Server error", body["error"]["message"])
	assert.Equal(t, int64(1), srv.metrics.Snapshot().Errors["/employees|GET|INTERNAL_ERROR"])
}

func TestPostDepartment(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/department", strings.NewReader(`{"name":"Legal"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decode(t, resp, &got)
	assert.Positive(t, got.ID)
	assert.Equal(t, "Legal", got.Name)

	list, err := srv.svc.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, got.ID, list[0].ID)
}

func TestPostDepartmentBadRequests(t *testing.T) {
	srv := newTestServer(t, nil)

	cases := map[string]string{
		"malformed": `{"name":`,
		"empty":     `{"name":""}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/department", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			resp, err := srv.app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]map[string]any
			decode(t, resp, &body)
			assert.Equal(t, "VALIDATION_FAILED", body["error"]["code"])
		})
	}
	assert.Empty(t, srv.store.Calls())
}

func TestPostDepartmentStoreFailure(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.store.FailWith(errors.New("disk full"))

	req := httptest.NewRequest(http.MethodPost, "/department", strings.NewReader(`{"name":"Ops"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "Server error", body["error"]["message"])
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/roles", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, map[string]handlers.Pinger{
		"postgres": stubPinger{},
		"redis":    stubPinger{err: errors.New("dial tcp: refused")},
	})

	resp, err := srv.app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]map[string]any
	decode(t, resp, &body)
	details, ok := body["error"]["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "dial tcp: refused", details["redis"])
}
