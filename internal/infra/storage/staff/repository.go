package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий мастеров и их правил доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListWithRules получает активных мастеров тенанта вместе с правилами.
// Порядок мастеров - порядок в списке тенанта (position), он же порядок выбора мастера
// в режиме "любой свободный".
func (r *Repository) ListWithRules(ctx context.Context, filter Filter) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "tenant_id", "name", "active").
		From("staff_members").
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "active": true}).
		OrderBy("position ASC, id ASC")

	if len(filter.StaffIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": filter.StaffIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	byID := make(map[string]*domain.StaffMember)
	for rows.Next() {
		m := &domain.StaffMember{CustomSchedule: make(map[string][]domain.TimeRange)}
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Active); err != nil {
			return nil, fmt.Errorf("%w: ListWithRules - scan staff: %v", ErrScanRow, err)
		}
		members = append(members, m)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithRules - rows error: %v", ErrScanRow, err)
	}

	if len(members) == 0 {
		return members, nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	if err := r.loadWorkingHours(ctx, executor, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadBreaks(ctx, executor, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadCustomSchedule(ctx, executor, ids, filter.From, filter.To, byID); err != nil {
		return nil, err
	}
	if err := r.loadTimeOff(ctx, executor, ids, filter.From, filter.To, byID); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) loadWorkingHours(ctx context.Context, executor DBExecutor, ids []string, byID map[string]*domain.StaffMember) error {
	query, args, err := psqlbuilder.Select("staff_id", "day_of_week", "start_time", "end_time").
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, day_of_week ASC, id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID string
		var wh domain.WorkingHours
		var day int
		if err := rows.Scan(&staffID, &day, &wh.Start, &wh.End); err != nil {
			return fmt.Errorf("%w: loadWorkingHours - scan row: %v", ErrScanRow, err)
		}
		wh.DayOfWeek = time.Weekday(day)
		if m, ok := byID[staffID]; ok {
			m.WorkingHours = append(m.WorkingHours, wh)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadWorkingHours - rows error: %v", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) loadBreaks(ctx context.Context, executor DBExecutor, ids []string, byID map[string]*domain.StaffMember) error {
	query, args, err := psqlbuilder.Select("staff_id", "day_of_week", "start_time", "end_time").
		From("staff_breaks").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, day_of_week ASC, start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID string
		var br domain.Break
		var day int
		if err := rows.Scan(&staffID, &day, &br.Start, &br.End); err != nil {
			return fmt.Errorf("%w: loadBreaks - scan row: %v", ErrScanRow, err)
		}
		br.DayOfWeek = time.Weekday(day)
		if m, ok := byID[staffID]; ok {
			m.Breaks = append(m.Breaks, br)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBreaks - rows error: %v", ErrScanRow, err)
	}
	return nil
}

// loadCustomSchedule загружает расписание на даты периода.
// Строка без времени означает выходной: ключ даты присутствует с пустым списком.
func (r *Repository) loadCustomSchedule(ctx context.Context, executor DBExecutor, ids []string, from, to types.Date, byID map[string]*domain.StaffMember) error {
	selectBuilder := psqlbuilder.Select("staff_id", "date", "start_time", "end_time").
		From("staff_custom_schedule").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, date ASC, start_time ASC NULLS FIRST")

	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from})
	}
	if !to.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadCustomSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadCustomSchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID string
		var date types.Date
		var tr domain.TimeRange
		if err := rows.Scan(&staffID, &date, &tr.Start, &tr.End); err != nil {
			return fmt.Errorf("%w: loadCustomSchedule - scan row: %v", ErrScanRow, err)
		}

		m, ok := byID[staffID]
		if !ok {
			continue
		}

		key := date.String()
		if _, exists := m.CustomSchedule[key]; !exists {
			m.CustomSchedule[key] = []domain.TimeRange{}
		}
		if tr.Start.IsZero() || tr.End.IsZero() {
			continue
		}
		m.CustomSchedule[key] = append(m.CustomSchedule[key], tr)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadCustomSchedule - rows error: %v", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) loadTimeOff(ctx context.Context, executor DBExecutor, ids []string, from, to types.Date, byID map[string]*domain.StaffMember) error {
	selectBuilder := psqlbuilder.Select("staff_id", "start_date", "end_date", "reason").
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, start_date ASC")

	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_date": from})
	}
	if !to.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID string
		var off domain.TimeOff
		if err := rows.Scan(&staffID, &off.Start, &off.End, &off.Reason); err != nil {
			return fmt.Errorf("%w: loadTimeOff - scan row: %v", ErrScanRow, err)
		}
		if m, ok := byID[staffID]; ok {
			m.TimeOff = append(m.TimeOff, off)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadTimeOff - rows error: %v", ErrScanRow, err)
	}
	return nil
}
