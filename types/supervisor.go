package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supervisor is an engineer's public profile offered for project supervision.
type Supervisor struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	Phone           string          `json:"phone,omitempty"`
	City            string          `json:"city,omitempty"`
	YearsExperience int             `json:"years_experience"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type SupervisorUpsert struct {
	FullName        string          `json:"full_name" binding:"required,min=2,max=120"`
	Specialization  string          `json:"specialization" binding:"required,max=120"`
	Phone           string          `json:"phone" binding:"max=32"`
	City            string          `json:"city" binding:"max=100"`
	YearsExperience int             `json:"years_experience" binding:"min=0,max=70"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	IsActive        *bool           `json:"is_active,omitempty"`
}

type SupervisorFilter struct {
	City           string `form:"city"`
	Specialization string `form:"specialization"`
	Page
}
