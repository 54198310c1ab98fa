package cli

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, _ = io.WriteString(w, t.Render()+"\n")
}

func fmtID(v int64) string { return strconv.FormatInt(v, 10) }

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func optionalName(name *string) string {
	if name == nil {
		return "null"
	}
	return *name
}

func departmentRows(depts []domain.Department) [][]string {
	rows := make([][]string, 0, len(depts))
	for _, d := range depts {
		rows = append(rows, []string{fmtID(d.ID), d.Name})
	}
	return rows
}

func roleRows(roles []domain.RoleDetail) [][]string {
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, []string{fmtID(r.ID), r.Title, r.Department, money(r.Salary)})
	}
	return rows
}

func employeeDetailRows(emps []domain.EmployeeDetail) [][]string {
	rows := make([][]string, 0, len(emps))
	for _, e := range emps {
		rows = append(rows, []string{
			fmtID(e.ID), e.FirstName, e.LastName, e.Title, e.Department, money(e.Salary), optionalName(e.Manager),
		})
	}
	return rows
}

func employeeRows(emps []domain.Employee) [][]string {
	rows := make([][]string, 0, len(emps))
	for _, e := range emps {
		manager := "null"
		if e.ManagerID != nil {
			manager = fmtID(*e.ManagerID)
		}
		rows = append(rows, []string{fmtID(e.ID), e.FirstName, e.LastName, fmtID(e.RoleID), manager})
	}
	return rows
}

func departmentEmployeeRows(emps []domain.DepartmentEmployee) [][]string {
	rows := make([][]string, 0, len(emps))
	for _, e := range emps {
		rows = append(rows, []string{fmtID(e.ID), e.FirstName, e.LastName, e.Title})
	}
	return rows
}
