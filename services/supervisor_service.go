package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

type SupervisorService struct {
	supervisors store.SupervisorStore
}

func NewSupervisorService(supervisors store.SupervisorStore) *SupervisorService {
	return &SupervisorService{supervisors: supervisors}
}

func (s *SupervisorService) ListSupervisors(ctx context.Context, filter types.SupervisorFilter) ([]*types.Supervisor, int, error) {
	filter.Page = filter.Page.Normalize()
	return s.supervisors.ListSupervisors(ctx, filter)
}

func (s *SupervisorService) GetSupervisor(ctx context.Context, id string) (*types.Supervisor, error) {
	sup, err := s.supervisors.GetSupervisor(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sup.IsActive {
		return nil, apperrors.NotFound("Supervisor", id)
	}
	return sup, nil
}

// UpsertProfile creates or replaces the engineer's supervisor profile.
func (s *SupervisorService) UpsertProfile(ctx context.Context, userID string, in *types.SupervisorUpsert) (*types.Supervisor, error) {
	if in.HourlyRate.IsNegative() {
		return nil, apperrors.ValidationFailed("hourly rate must not be negative", in.HourlyRate.String())
	}
	return s.supervisors.UpsertSupervisor(ctx, userID, in)
}
