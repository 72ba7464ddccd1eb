package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.SupervisorStore = (*SupervisorStore)(nil)

const supervisorColumns = `sv.id, sv.user_id, sv.full_name, COALESCE(sv.specialization, ''), COALESCE(sv.phone, ''),
	COALESCE(sv.city, ''), sv.years_experience, sv.hourly_rate, sv.is_active, sv.created_at, sv.updated_at`

type SupervisorStore struct {
	db DBTX
}

func NewSupervisorStore(db DBTX) *SupervisorStore {
	return &SupervisorStore{db: db}
}

func supervisorScanTargets(sv *types.Supervisor) []any {
	return []any{&sv.ID, &sv.UserID, &sv.FullName, &sv.Specialization, &sv.Phone,
		&sv.City, &sv.YearsExperience, &sv.HourlyRate, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt}
}

func scanSupervisor(row pgx.Row) (*types.Supervisor, error) {
	sv := &types.Supervisor{}
	if err := row.Scan(supervisorScanTargets(sv)...); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *SupervisorStore) GetSupervisor(ctx context.Context, id string) (*types.Supervisor, error) {
	sv, err := scanSupervisor(s.db.QueryRow(ctx, `SELECT `+supervisorColumns+` FROM supervisors sv WHERE sv.id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Supervisor", id)
	}
	return sv, nil
}

// ListSupervisors lists active supervisors, most experienced first.
func (s *SupervisorStore) ListSupervisors(ctx context.Context, filter types.SupervisorFilter) ([]*types.Supervisor, int, error) {
	page := filter.Page.Normalize()
	query := `
		SELECT ` + supervisorColumns + `, COUNT(*) OVER ()
		FROM supervisors sv
		WHERE sv.is_active
		  AND ($1 = '' OR sv.city = $1)
		  AND ($2 = '' OR sv.specialization = $2)
		ORDER BY sv.years_experience DESC, sv.full_name
		LIMIT $3 OFFSET $4`

	rows, err := s.db.Query(ctx, query, filter.City, filter.Specialization, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Supervisor", "list")
	}
	defer rows.Close()

	supervisors := make([]*types.Supervisor, 0)
	total := 0
	for rows.Next() {
		sv := &types.Supervisor{}
		if err := rows.Scan(append(supervisorScanTargets(sv), &total)...); err != nil {
			return nil, 0, mapError(err, "Supervisor", "list")
		}
		supervisors = append(supervisors, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Supervisor", "list")
	}
	return supervisors, total, nil
}

// UpsertSupervisor creates or replaces the profile keyed by user_id.
func (s *SupervisorStore) UpsertSupervisor(ctx context.Context, userID string, in *types.SupervisorUpsert) (*types.Supervisor, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	query := `
		INSERT INTO supervisors AS sv (user_id, full_name, specialization, phone, city, years_experience, hourly_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name        = EXCLUDED.full_name,
		    specialization   = EXCLUDED.specialization,
		    phone            = EXCLUDED.phone,
		    city             = EXCLUDED.city,
		    years_experience = EXCLUDED.years_experience,
		    hourly_rate      = EXCLUDED.hourly_rate,
		    is_active        = EXCLUDED.is_active,
		    updated_at       = NOW()
		RETURNING ` + supervisorColumns

	sv, err := scanSupervisor(s.db.QueryRow(ctx, query, userID, in.FullName, in.Specialization, in.Phone, in.City,
		in.YearsExperience, in.HourlyRate, active))
	if err != nil {
		return nil, mapError(err, "Supervisor", userID)
	}
	return sv, nil
}
