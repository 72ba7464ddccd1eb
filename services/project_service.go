package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
	"github.com/shopspring/decimal"
)

// ProjectService manages a user's construction projects. Projects of other
// users, and soft deleted ones, are reported as not found.
type ProjectService struct {
	projects    store.ProjectStore
	supervisors store.SupervisorStore
}

func NewProjectService(projects store.ProjectStore, supervisors store.SupervisorStore) *ProjectService {
	return &ProjectService{projects: projects, supervisors: supervisors}
}

func (s *ProjectService) ListProjects(ctx context.Context, userID string, page types.Page) ([]*types.Project, int, error) {
	return s.projects.ListProjects(ctx, userID, page.Normalize())
}

func (s *ProjectService) CreateProject(ctx context.Context, userID string, in *types.ProjectCreate) (*types.Project, error) {
	if err := valueobjects.CheckAmount("budget", in.Budget, valueobjects.NonNegative); err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperrors.ValidationFailed("end date is before start date", "")
	}
	return s.projects.CreateProject(ctx, userID, in)
}

func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (*types.Project, error) {
	project, err := s.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID || !project.IsActive {
		return nil, apperrors.NotFound("Project", projectID)
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, update *types.ProjectUpdate) (*types.Project, error) {
	if update.Status != nil && !update.Status.IsValid() {
		return nil, apperrors.ValidationFailed("invalid project status", string(*update.Status))
	}
	if update.Budget != nil {
		if err := valueobjects.CheckAmount("budget", *update.Budget, valueobjects.NonNegative); err != nil {
			return nil, err
		}
	}
	if _, err := s.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.UpdateProject(ctx, projectID, update)
}

func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.GetProject(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projects.DeactivateProject(ctx, projectID)
}

// Summary totals the project's expenses against its budget.
func (s *ProjectService) Summary(ctx context.Context, userID, projectID string) (*types.ProjectSummary, error) {
	project, err := s.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.projects.ExpenseTotals(ctx, projectID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, c := range byCategory {
		total = total.Add(c.Total)
	}
	if byCategory == nil {
		byCategory = []types.CategoryTotal{}
	}
	return &types.ProjectSummary{
		Project:       project,
		TotalExpenses: total,
		Remaining:     project.Budget.Sub(total),
		ByCategory:    byCategory,
	}, nil
}

func (s *ProjectService) ListExpenses(ctx context.Context, userID, projectID string) ([]*types.ConstructionExpense, error) {
	if _, err := s.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.ListExpenses(ctx, projectID)
}

func (s *ProjectService) AddExpense(ctx context.Context, userID, projectID string, in *types.ExpenseCreate) (*types.ConstructionExpense, error) {
	if err := valueobjects.CheckAmount("amount", in.Amount, valueobjects.Positive); err != nil {
		return nil, err
	}
	if _, err := s.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.projects.AddExpense(ctx, projectID, in)
}

func (s *ProjectService) ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error) {
	return s.projects.ListCategories(ctx)
}

// AssignSupervisor links an active supervisor to the project.
func (s *ProjectService) AssignSupervisor(ctx context.Context, userID, projectID, supervisorID string) (*types.Project, error) {
	project, err := s.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	supervisor, err := s.supervisors.GetSupervisor(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if !supervisor.IsActive {
		return nil, apperrors.ValidationFailed("supervisor is not available", supervisorID)
	}
	if err := s.projects.AssignSupervisor(ctx, projectID, supervisorID); err != nil {
		return nil, err
	}
	project.SupervisorID = &supervisor.ID
	return project, nil
}
