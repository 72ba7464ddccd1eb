package postgres

import (
	"context"
	"time"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.ProjectStore = (*ProjectStore)(nil)

const projectColumns = `pr.id, pr.user_id, pr.name, COALESCE(pr.description, ''), COALESCE(pr.location, ''),
	pr.status, pr.budget, pr.supervisor_id, pr.start_date, pr.end_date, pr.is_active, pr.created_at, pr.updated_at`

type ProjectStore struct {
	db DBTX
}

func NewProjectStore(db DBTX) *ProjectStore {
	return &ProjectStore{db: db}
}

func projectScanTargets(p *types.Project) []any {
	return []any{&p.ID, &p.UserID, &p.Name, &p.Description, &p.Location,
		&p.Status, &p.Budget, &p.SupervisorID, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt}
}

func scanProject(row pgx.Row) (*types.Project, error) {
	p := &types.Project{}
	if err := row.Scan(projectScanTargets(p)...); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectStore) CreateProject(ctx context.Context, userID string, in *types.ProjectCreate) (*types.Project, error) {
	query := `
		INSERT INTO projects AS pr (user_id, name, description, location, status, budget, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	p, err := scanProject(s.db.QueryRow(ctx, query, userID, in.Name, in.Description, in.Location,
		string(types.ProjectStatusPlanning), in.Budget, in.StartDate, in.EndDate))
	if err != nil {
		return nil, mapError(err, "Project", in.Name)
	}
	return p, nil
}

// GetProject returns active projects only.
func (s *ProjectStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	p, err := scanProject(s.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects pr WHERE pr.id = $1 AND pr.is_active`, id))
	if err != nil {
		return nil, mapError(err, "Project", id)
	}
	return p, nil
}

func (s *ProjectStore) ListProjects(ctx context.Context, userID string, page types.Page) ([]*types.Project, int, error) {
	page = page.Normalize()
	query := `
		SELECT ` + projectColumns + `, COUNT(*) OVER ()
		FROM projects pr
		WHERE pr.user_id = $1 AND pr.is_active
		ORDER BY pr.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Project", userID)
	}
	defer rows.Close()

	projects := make([]*types.Project, 0)
	total := 0
	for rows.Next() {
		p := &types.Project{}
		if err := rows.Scan(append(projectScanTargets(p), &total)...); err != nil {
			return nil, 0, mapError(err, "Project", userID)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Project", userID)
	}
	return projects, total, nil
}

func (s *ProjectStore) UpdateProject(ctx context.Context, id string, u *types.ProjectUpdate) (*types.Project, error) {
	var status *string
	if u.Status != nil {
		v := string(*u.Status)
		status = &v
	}

	query := `
		UPDATE projects AS pr
		SET name        = COALESCE($2, pr.name),
		    description = COALESCE($3, pr.description),
		    location    = COALESCE($4, pr.location),
		    status      = COALESCE($5, pr.status),
		    budget      = COALESCE($6, pr.budget),
		    start_date  = COALESCE($7, pr.start_date),
		    end_date    = COALESCE($8, pr.end_date),
		    updated_at  = NOW()
		WHERE pr.id = $1 AND pr.is_active
		RETURNING ` + projectColumns

	p, err := scanProject(s.db.QueryRow(ctx, query, id,
		u.Name, u.Description, u.Location, status, u.Budget, u.StartDate, u.EndDate))
	if err != nil {
		return nil, mapError(err, "Project", id)
	}
	return p, nil
}

func (s *ProjectStore) DeactivateProject(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE projects SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return mapError(err, "Project", id)
	}
	return notFoundIfNoRows(tag, "Project", id)
}

func (s *ProjectStore) AssignSupervisor(ctx context.Context, id, supervisorID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE projects SET supervisor_id = $2, updated_at = NOW() WHERE id = $1 AND is_active`, id, supervisorID)
	if err != nil {
		return mapError(err, "Project", id)
	}
	return notFoundIfNoRows(tag, "Project", id)
}

// CountActiveProjects counts live projects that are not completed.
func (s *ProjectStore) CountActiveProjects(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE user_id = $1 AND is_active AND status <> 'completed'`, userID).Scan(&n)
	if err != nil {
		return 0, mapError(err, "Project", userID)
	}
	return n, nil
}

func (s *ProjectStore) ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(name_ar, ''), COALESCE(description, '')
		FROM construction_categories
		ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "Category", "list")
	}
	defer rows.Close()

	categories := make([]*types.ConstructionCategory, 0)
	for rows.Next() {
		c := &types.ConstructionCategory{}
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAr, &c.Description); err != nil {
			return nil, mapError(err, "Category", "list")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Category", "list")
	}
	return categories, nil
}

func (s *ProjectStore) AddExpense(ctx context.Context, projectID string, in *types.ExpenseCreate) (*types.ConstructionExpense, error) {
	expenseDate := time.Now().UTC()
	if in.ExpenseDate != nil {
		expenseDate = *in.ExpenseDate
	}

	e := &types.ConstructionExpense{}
	err := s.db.QueryRow(ctx, `
		INSERT INTO construction_expenses (project_id, category_id, description, amount, expense_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, project_id, category_id, description, amount, expense_date, created_at`,
		projectID, in.CategoryID, in.Description, in.Amount, expenseDate,
	).Scan(&e.ID, &e.ProjectID, &e.CategoryID, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
	if err != nil {
		return nil, mapError(err, "Expense", projectID)
	}
	return e, nil
}

func (s *ProjectStore) ListExpenses(ctx context.Context, projectID string) ([]*types.ConstructionExpense, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, project_id, category_id, description, amount, expense_date, created_at
		FROM construction_expenses
		WHERE project_id = $1
		ORDER BY expense_date DESC, created_at DESC`, projectID)
	if err != nil {
		return nil, mapError(err, "Expense", projectID)
	}
	defer rows.Close()

	expenses := make([]*types.ConstructionExpense, 0)
	for rows.Next() {
		e := &types.ConstructionExpense{}
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.CategoryID, &e.Description, &e.Amount, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, mapError(err, "Expense", projectID)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Expense", projectID)
	}
	return expenses, nil
}

// ExpenseTotals sums a project's expenses per category in one statement.
func (s *ProjectStore) ExpenseTotals(ctx context.Context, projectID string) ([]types.CategoryTotal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.name, SUM(e.amount)
		FROM construction_expenses e
		JOIN construction_categories c ON c.id = e.category_id
		WHERE e.project_id = $1
		GROUP BY c.id, c.name
		ORDER BY c.name`, projectID)
	if err != nil {
		return nil, mapError(err, "Expense", projectID)
	}
	defer rows.Close()

	totals := make([]types.CategoryTotal, 0)
	for rows.Next() {
		var t types.CategoryTotal
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &t.Total); err != nil {
			return nil, mapError(err, "Expense", projectID)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Expense", projectID)
	}
	return totals, nil
}
