package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a construction project a user tracks budget and spend for.
type Project struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Location     string          `json:"location,omitempty"`
	Status       ProjectStatus   `json:"status"`
	Budget       decimal.Decimal `json:"budget"`
	SupervisorID *string         `json:"supervisor_id,omitempty"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProjectCreate struct {
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"max=4000"`
	Location    string          `json:"location" binding:"max=300"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
}

type ProjectUpdate struct {
	Name        *string          `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=4000"`
	Location    *string          `json:"location,omitempty" binding:"omitempty,max=300"`
	Status      *ProjectStatus   `json:"status,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisor_id" binding:"required,uuid"`
}

type ConstructionCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameAr      string `json:"name_ar,omitempty"`
	Description string `json:"description,omitempty"`
}

type ConstructionExpense struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ExpenseCreate struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time      `json:"expense_date,omitempty"`
}

// CategoryTotal is the spend of one category within a project.
type CategoryTotal struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

type ProjectSummary struct {
	Project       *Project        `json:"project"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Remaining     decimal.Decimal `json:"remaining"`
	ByCategory    []CategoryTotal `json:"by_category"`
}
