package server

import (
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/labstack/echo/v4"
)

// EmployeeHandler maps the /employees routes onto the employee service. It adds no validation
// and no error mapping: service errors go to echo's error handler as they are.
type EmployeeHandler struct {
	staff employees.Service
}

func NewEmployeeHandler(staff employees.Service) *EmployeeHandler {
	return &EmployeeHandler{staff: staff}
}

func (h *EmployeeHandler) register(grp *echo.Group) {
	grp.POST("", h.Create)
	grp.GET("", h.List)
	grp.GET("/:id", h.Get)
	grp.GET("/department/:department", h.ListByDepartment)
	grp.PUT("/:id", h.Update)
	grp.DELETE("/:id", h.Delete)
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	employee, err := bindEmployee(c)
	if err != nil {
		return err
	}

	created, err := h.staff.CreateEmployee(c.Request().Context(), employee)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, created)
}

func (h *EmployeeHandler) List(c echo.Context) error {
	all, err := h.staff.GetAllEmployees(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, nonNil(all))
}

// Get answers 200 with an empty body when the employee does not exist.
func (h *EmployeeHandler) Get(c echo.Context) error {
	employee, err := h.staff.GetEmployeeByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return writeOptional(c, employee)
}

func (h *EmployeeHandler) ListByDepartment(c echo.Context) error {
	staff, err := h.staff.GetEmployeesByDepartment(c.Request().Context(), c.Param("department"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, nonNil(staff))
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	employee, err := bindEmployee(c)
	if err != nil {
		return err
	}

	updated, err := h.staff.UpdateEmployee(c.Request().Context(), c.Param("id"), employee)
	if err != nil {
		return err
	}

	return writeOptional(c, updated)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.staff.DeleteEmployee(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

// bindEmployee decodes the request body only, so path parameters never leak into the payload.
func bindEmployee(c echo.Context) (models.Employee, error) {
	var employee models.Employee
	if err := (&echo.DefaultBinder{}).BindBody(c, &employee); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

func writeOptional(c echo.Context, employee *models.Employee) error {
	if employee == nil {
		return c.NoContent(http.StatusOK)
	}

	return c.JSON(http.StatusOK, employee)
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil(list []models.Employee) []models.Employee {
	if list == nil {
		return []models.Employee{}
	}

	return list
}
