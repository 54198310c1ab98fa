package domain

// Role is a job title with a fixed salary, scoped to one department.
type Role struct {
	ID           int64
	Title        string
	Salary       float64
	DepartmentID int64
}

// RoleDetail is a role joined with the name of its department.
type RoleDetail struct {
	Role
	Department string
}
