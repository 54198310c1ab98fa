package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/api/dto"
)

// EmployeesHandler exposes employee endpoints.
type EmployeesHandler struct {
	org EmployeeLister
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(org EmployeeLister) *EmployeesHandler {
	return &EmployeesHandler{org: org}
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	emps, err := h.org.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponses(emps))
}
