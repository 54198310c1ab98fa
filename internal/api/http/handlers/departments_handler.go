package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/api/dto"
)

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	org DepartmentCreator
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(org DepartmentCreator) *DepartmentsHandler {
	return &DepartmentsHandler{org: org}
}

// Create handles POST /department.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	dept, err := h.org.AddDepartment(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(*dept))
}
