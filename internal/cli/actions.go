package cli

import (
	"context"
	"fmt"
)

type menuItem struct {
	label string
	run   func(*Controller, context.Context) error
}

// menu is shown in this order. The nil action exits.
var menu = []menuItem{
	{"view all departments", (*Controller).viewDepartments},
	{"view all roles", (*Controller).viewRoles},
	{"view all employees", (*Controller).viewEmployees},
	{"view employees by manager", (*Controller).viewEmployeesByManager},
	{"view employees by department", (*Controller).viewEmployeesByDepartment},
	{"view total department budget", (*Controller).viewDepartmentBudget},
	{"add a department", (*Controller).addDepartment},
	{"add a role", (*Controller).addRole},
	{"add an employee", (*Controller).addEmployee},
	{"update an employee role", (*Controller).updateEmployeeRole},
	{"update an employee manager", (*Controller).updateEmployeeManager},
	{"delete a department", (*Controller).deleteDepartment},
	{"delete a role", (*Controller).deleteRole},
	{"delete an employee", (*Controller).deleteEmployee},
	{"exit", nil},
}

func menuLabels() []string {
	labels := make([]string, len(menu))
	for i, item := range menu {
		labels[i] = item.label
	}
	return labels
}

func (c *Controller) viewDepartments(ctx context.Context) error {
	depts, err := c.org.ListDepartments(ctx)
	if err != nil {
		return err
	}
	if len(depts) == 0 {
		fmt.Fprintln(c.out, "No departments found.")
		return nil
	}
	renderTable(c.out, []string{"ID", "Name"}, departmentRows(depts))
	return nil
}

func (c *Controller) viewRoles(ctx context.Context) error {
	roles, err := c.org.ListRoleDetails(ctx)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		fmt.Fprintln(c.out, "No roles found.")
		return nil
	}
	renderTable(c.out, []string{"ID", "Title", "Department", "Salary"}, roleRows(roles))
	return nil
}

func (c *Controller) viewEmployees(ctx context.Context) error {
	emps, err := c.org.ListEmployeeDetails(ctx)
	if err != nil {
		return err
	}
	if len(emps) == 0 {
		fmt.Fprintln(c.out, "No employees found.")
		return nil
	}
	renderTable(c.out,
		[]string{"ID", "First Name", "Last Name", "Title", "Department", "Salary", "Manager"},
		employeeDetailRows(emps))
	return nil
}

func (c *Controller) viewEmployeesByManager(ctx context.Context) error {
	managerID, name, err := c.askExisting(ctx, "Enter the manager ID:", "employee", c.findEmployee)
	if err != nil {
		return err
	}
	emps, err := c.org.EmployeesByManager(ctx, managerID)
	if err != nil {
		return err
	}
	if len(emps) == 0 {
		fmt.Fprintf(c.out, "%s has no direct reports.\n", name)
		return nil
	}
	renderTable(c.out, []string{"ID", "First Name", "Last Name", "Role ID", "Manager ID"}, employeeRows(emps))
	return nil
}

func (c *Controller) viewEmployeesByDepartment(ctx context.Context) error {
	deptID, name, err := c.askExisting(ctx, "Enter the department ID:", "department", c.findDepartment)
	if err != nil {
		return err
	}
	emps, err := c.org.EmployeesByDepartment(ctx, deptID)
	if err != nil {
		return err
	}
	if len(emps) == 0 {
		fmt.Fprintf(c.out, "No employees in department '%s'.\n", name)
		return nil
	}
	renderTable(c.out, []string{"ID", "First Name", "Last Name", "Title"}, departmentEmployeeRows(emps))
	return nil
}

func (c *Controller) viewDepartmentBudget(ctx context.Context) error {
	deptID, name, err := c.askExisting(ctx, "Enter the department ID:", "department", c.findDepartment)
	if err != nil {
		return err
	}
	total, err := c.org.DepartmentBudget(ctx, deptID)
	if err != nil {
		return err
	}
	if total == nil {
		fmt.Fprintf(c.out, "Department '%s' has no employees; no budget is utilized.\n", name)
		return nil
	}
	fmt.Fprintf(c.out, "Total utilized budget for department '%s' (ID %d) is: %s\n", name, deptID, money(*total))
	return nil
}

func (c *Controller) addDepartment(ctx context.Context) error {
	name, err := c.askText(ctx, "Enter the name of the department:")
	if err != nil {
		return err
	}
	dept, err := c.org.AddDepartment(ctx, name)
	if err != nil {
		return err
	}
	successColor.Fprintf(c.out, "Department '%s' added with ID %s.\n", dept.Name, identifierColor.Sprint(dept.ID))
	return nil
}

func (c *Controller) addRole(ctx context.Context) error {
	title, err := c.askText(ctx, "Enter the role title:")
	if err != nil {
		return err
	}
	salary, err := c.askSalary(ctx, "Enter the salary for the role:")
	if err != nil {
		return err
	}
	deptID, err := c.askRoleDepartment(ctx)
	if err != nil {
		return err
	}
	role, err := c.org.AddRole(ctx, title, salary, deptID)
	if err != nil {
		return err
	}
	successColor.Fprintf(c.out, "Role '%s' added with ID %s, salary %s, in department ID %d.\n",
		role.Title, identifierColor.Sprint(role.ID), money(role.Salary), role.DepartmentID)
	return nil
}

// askRoleDepartment asks for the department of a new role. An unknown id
// offers to create the department on the spot; declining asks again.
func (c *Controller) askRoleDepartment(ctx context.Context) (int64, error) {
	for {
		deptID, err := c.askID(ctx, "Enter the department ID for the role:")
		if err != nil {
			return 0, err
		}
		_, ok, err := c.findDepartment(ctx, deptID)
		if err != nil {
			return 0, err
		}
		if ok {
			return deptID, nil
		}
		create, err := c.prompt.Confirm(ctx, fmt.Sprintf("No department with ID %d. Create a new department?", deptID))
		if err != nil {
			return 0, err
		}
		if !create {
			warnColor.Fprintln(c.out, "Please enter an existing department ID.")
			continue
		}
		name, err := c.askText(ctx, "Enter the name of the new department:")
		if err != nil {
			return 0, err
		}
		dept, err := c.org.AddDepartment(ctx, name)
		if err != nil {
			return 0, err
		}
		successColor.Fprintf(c.out, "Department '%s' added with ID %s.\n", dept.Name, identifierColor.Sprint(dept.ID))
		return dept.ID, nil
	}
}

func (c *Controller) addEmployee(ctx context.Context) error {
	first, err := c.askText(ctx, "Enter the employee's first name:")
	if err != nil {
		return err
	}
	last, err := c.askText(ctx, "Enter the employee's last name:")
	if err != nil {
		return err
	}
	roleID, _, err := c.askExisting(ctx, "Enter the role ID for the employee:", "role", c.findRole)
	if err != nil {
		return err
	}
	managerID, err := c.askManager(ctx, "Enter the manager ID for the employee (leave blank if none):", 0)
	if err != nil {
		return err
	}
	emp, err := c.org.AddEmployee(ctx, first, last, roleID, managerID)
	if err != nil {
		return err
	}
	successColor.Fprintf(c.out, "Employee '%s' added with ID %s, role ID %d and manager %s.\n",
		emp.FullName(), identifierColor.Sprint(emp.ID), emp.RoleID, describeManager(emp.ManagerID))
	return nil
}

// askManager accepts a blank answer (no manager) or the id of an existing
// employee other than self.
func (c *Controller) askManager(ctx context.Context, label string, self int64) (*int64, error) {
	for {
		managerID, err := c.askOptionalID(ctx, label)
		if err != nil || managerID == nil {
			return nil, err
		}
		if *managerID == self {
			warnColor.Fprintln(c.out, "An employee cannot be their own manager.")
			continue
		}
		_, ok, err := c.findEmployee(ctx, *managerID)
		if err != nil {
			return nil, err
		}
		if ok {
			return managerID, nil
		}
		warnColor.Fprintf(c.out, "No employee with ID %d. Please try again.\n", *managerID)
	}
}

func describeManager(managerID *int64) string {
	if managerID == nil {
		return "none"
	}
	return fmt.Sprintf("ID %d", *managerID)
}

func (c *Controller) updateEmployeeRole(ctx context.Context) error {
	empID, name, err := c.askExisting(ctx, "Enter the employee ID to update:", "employee", c.findEmployee)
	if err != nil {
		return err
	}
	roleID, title, err := c.askExisting(ctx, "Enter the new role ID for the employee:", "role", c.findRole)
	if err != nil {
		return err
	}
	emp, err := c.org.UpdateEmployeeRole(ctx, empID, roleID)
	if err != nil {
		return err
	}
	if emp == nil {
		warnColor.Fprintf(c.out, "Employee ID %d no longer exists; nothing updated.\n", empID)
		return nil
	}
	successColor.Fprintf(c.out, "Employee '%s' now holds role '%s' (ID %d).\n", name, title, roleID)
	return nil
}

func (c *Controller) updateEmployeeManager(ctx context.Context) error {
	empID, name, err := c.askExisting(ctx, "Enter the employee ID to update:", "employee", c.findEmployee)
	if err != nil {
		return err
	}
	managerID, err := c.askManager(ctx, "Enter the new manager ID (leave blank if none):", empID)
	if err != nil {
		return err
	}
	emp, err := c.org.UpdateEmployeeManager(ctx, empID, managerID)
	if err != nil {
		return err
	}
	if emp == nil {
		warnColor.Fprintf(c.out, "Employee ID %d no longer exists; nothing updated.\n", empID)
		return nil
	}
	successColor.Fprintf(c.out, "Employee '%s' now has manager %s.\n", name, describeManager(emp.ManagerID))
	return nil
}

func (c *Controller) deleteDepartment(ctx context.Context) error {
	deptID, err := c.askID(ctx, "Enter the department ID to delete:")
	if err != nil {
		return err
	}
	dept, err := c.org.DeleteDepartment(ctx, deptID)
	if err != nil {
		return err
	}
	if dept == nil {
		warnColor.Fprintf(c.out, "No department with ID %d; nothing deleted.\n", deptID)
		return nil
	}
	successColor.Fprintf(c.out, "Department '%s' (ID %d) deleted.\n", dept.Name, dept.ID)
	return nil
}

func (c *Controller) deleteRole(ctx context.Context) error {
	roleID, err := c.askID(ctx, "Enter the role ID to delete:")
	if err != nil {
		return err
	}
	role, err := c.org.DeleteRole(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		warnColor.Fprintf(c.out, "No role with ID %d; nothing deleted.\n", roleID)
		return nil
	}
	successColor.Fprintf(c.out, "Role '%s' (ID %d) deleted.\n", role.Title, role.ID)
	return nil
}

func (c *Controller) deleteEmployee(ctx context.Context) error {
	empID, err := c.askID(ctx, "Enter the employee ID to delete:")
	if err != nil {
		return err
	}
	emp, err := c.org.DeleteEmployee(ctx, empID)
	if err != nil {
		return err
	}
	if emp == nil {
		warnColor.Fprintf(c.out, "No employee with ID %d; nothing deleted.\n", empID)
		return nil
	}
	successColor.Fprintf(c.out, "Employee '%s' (ID %d) deleted.\n", emp.FullName(), emp.ID)
	return nil
}
