package dto

import "github.com/O-KenneDevWorks/Employee-Manager/internal/domain"

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentResponse is the JSON shape of a department row.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeResponse is the JSON shape of an employee row.
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    int64  `json:"role_id"`
	ManagerID *int64 `json:"manager_id"`
}

func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name}
}

func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		RoleID:    e.RoleID,
		ManagerID: e.ManagerID,
	}
}

// NewEmployeeResponses maps a slice, returning an empty (not nil) slice so
// the JSON body is always an array.
func NewEmployeeResponses(emps []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		out = append(out, NewEmployeeResponse(e))
	}
	return out
}
