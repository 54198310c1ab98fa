package domain

// Employee is a named individual holding one role and optionally reporting to
// another employee.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	RoleID    int64
	ManagerID *int64
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// DepartmentEmployee is an employee row carrying the title of the role that
// placed it in the department.
type DepartmentEmployee struct {
	Employee
	Title string
}

// EmployeeDetail is the fully joined employee view: role title, department,
// salary and manager name.
type EmployeeDetail struct {
	Employee
	Title      string
	Department string
	Salary     float64
	Manager    *string
}
