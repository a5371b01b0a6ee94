package directory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetdesk/pkg/response"
)

type EmployeeHandler struct {
	service EmployeeService
}

func NewEmployeeHandler(service EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/employees", h.listEmployees)
	router.GET("/employees/:id", h.getEmployee)
}

// @Summary      List all employees
// @Tags         employees
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Employee} "Employees retrieved"
// @Router       /employees [get]
func (h *EmployeeHandler) listEmployees(c *gin.Context) {
	employees := h.service.ListEmployees(c.Request.Context())
	response.SendAPIResponse(c, http.StatusOK, true, "employees listed", employees)
}

// @Summary      Get employee by ID
// @Tags         employees
// @Produce      json
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  response.APIResponse{data=Employee} "Employee retrieved"
// @Failure      404  {object}  response.APIResponse "Employee not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.service.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "employee not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "employee fetched", employee)
}
