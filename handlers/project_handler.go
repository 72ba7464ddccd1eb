package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// ProjectHandler serves construction projects, their expenses and the
// category list.
type ProjectHandler struct {
	projectService ProjectServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects godoc
// @Summary List my projects
// @Tags projects
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /projects [get]
// @Security BearerAuth
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var page types.Page
	if !bindQueryOrError(c, &page) {
		return
	}

	projects, total, err := h.projectService.ListProjects(c.Request.Context(), getUserIDFromContext(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(projects, page, total))
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body types.ProjectCreate true "Project"
// @Success 201 {object} types.Project
// @Failure 400 {object} types.ErrorResponse
// @Router /projects [post]
// @Security BearerAuth
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req types.ProjectCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} types.Project
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id} [get]
// @Security BearerAuth
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body types.ProjectUpdate true "Changed fields"
// @Success 200 {object} types.Project
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id} [put]
// @Security BearerAuth
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req types.ProjectUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Archive a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id} [delete]
// @Security BearerAuth
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Request.Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary godoc
// @Summary Project budget summary
// @Description Budget, total expenses, remaining budget and spend per category
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} types.ProjectSummary
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id}/summary [get]
// @Security BearerAuth
func (h *ProjectHandler) Summary(c *gin.Context) {
	summary, err := h.projectService.Summary(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListExpenses godoc
// @Summary List project expenses
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} types.ConstructionExpense
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id}/expenses [get]
// @Security BearerAuth
func (h *ProjectHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.projectService.ListExpenses(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// AddExpense godoc
// @Summary Record a project expense
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body types.ExpenseCreate true "Expense"
// @Success 201 {object} types.ConstructionExpense
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id}/expenses [post]
// @Security BearerAuth
func (h *ProjectHandler) AddExpense(c *gin.Context) {
	var req types.ExpenseCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	expense, err := h.projectService.AddExpense(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// AssignSupervisor godoc
// @Summary Assign a supervising engineer
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body types.AssignSupervisorRequest true "Supervisor"
// @Success 200 {object} types.Project
// @Failure 400 {object} types.ErrorResponse "Supervisor not available"
// @Failure 404 {object} types.ErrorResponse
// @Router /projects/{id}/supervisor [put]
// @Security BearerAuth
func (h *ProjectHandler) AssignSupervisor(c *gin.Context) {
	var req types.AssignSupervisorRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	project, err := h.projectService.AssignSupervisor(c.Request.Context(), getUserIDFromContext(c), c.Param("id"), req.SupervisorID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListCategories godoc
// @Summary List construction categories
// @Tags projects
// @Produce json
// @Success 200 {array} types.ConstructionCategory
// @Router /construction-categories [get]
func (h *ProjectHandler) ListCategories(c *gin.Context) {
	categories, err := h.projectService.ListCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
