package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/compawny/scheduling-service/internal/domain"
	"github.com/compawny/scheduling-service/pkg/psqlbuilder"
	"github.com/compawny/scheduling-service/pkg/txmanager"
)

// appointmentColumns is the column set of every SELECT in this
// repository, in scan order.
var appointmentColumns = []string{
	"id",
	"pet_id",
	"caregiver_id",
	"start_time",
	"duration_minutes",
	"status",
	"total_price",
	"notes",
	"deleted",
	"created_at",
	"updated_at",
}

// sortColumns whitelists the fields the paginated listing may order by.
var sortColumns = map[string]string{
	domain.SortByStartTime: "start_time",
	domain.SortByCreatedAt: "created_at",
	domain.SortByStatus:    "status",
}

// Repository persists appointments. Every read excludes soft-deleted
// rows explicitly; there is no implicit filtering anywhere.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment and fills in the generated id and
// the store-maintained timestamps.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"pet_id",
			"caregiver_id",
			"start_time",
			"duration_minutes",
			"status",
			"total_price",
			"notes",
		).
		Values(
			appt.PetID,
			appt.CaregiverID,
			appt.StartTime,
			appt.DurationInMinutes,
			appt.Status,
			appt.TotalPrice,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID loads a non-deleted appointment by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id, "deleted": false}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// Update persists the mutable fields of a Scheduled appointment: start
// time, duration, notes and the recomputed price.
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", appt.StartTime).
		Set("duration_minutes", appt.DurationInMinutes).
		Set("notes", appt.Notes).
		Set("total_price", appt.TotalPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID, "deleted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus persists a lifecycle transition, guarded by the status
// the transition was computed from. The WHERE clause carries the
// expected current status so a transition racing against a committed
// concurrent one matches zero rows instead of overwriting it.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from, "deleted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// GetActiveByCaregiver returns the caregiver's non-deleted appointments
// whose status is not terminal, i.e. the set the conflict detector must
// scan. Inside a transaction the rows are locked with FOR UPDATE so a
// concurrent booking for the same caregiver cannot slip between the
// scan and the subsequent insert.
func (r *Repository) GetActiveByCaregiver(ctx context.Context, caregiverID int64) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"caregiver_id": caregiverID, "deleted": false}).
		Where(squirrel.NotEq{"status": statusStrings(domain.TerminalStatuses)}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCaregiver - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCaregiver - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListUpcomingByCaregiver returns the caregiver's non-deleted Scheduled
// appointments starting at or after the given instant, ascending by
// start time.
func (r *Repository) ListUpcomingByCaregiver(ctx context.Context, caregiverID int64, from time.Time) ([]*domain.Appointment, error) {
	return r.listUpcoming(ctx, squirrel.Eq{"caregiver_id": caregiverID}, from, "ListUpcomingByCaregiver")
}

// ListUpcomingByPet returns the pet's non-deleted Scheduled
// appointments starting at or after the given instant, ascending by
// start time.
func (r *Repository) ListUpcomingByPet(ctx context.Context, petID int64, from time.Time) ([]*domain.Appointment, error) {
	return r.listUpcoming(ctx, squirrel.Eq{"pet_id": petID}, from, "ListUpcomingByPet")
}

func (r *Repository) listUpcoming(ctx context.Context, owner squirrel.Eq, from time.Time, op string) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(owner).
		Where(squirrel.Eq{"status": domain.StatusScheduled, "deleted": false}).
		Where(squirrel.GtOrEq{"start_time": from}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List returns one page of non-deleted appointments plus the total
// count, ordered by the whitelisted sort field.
func (r *Repository) List(ctx context.Context, params domain.ListParams) ([]*domain.Appointment, int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	column, ok := sortColumns[params.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidSortField, params.SortBy)
	}
	direction := "ASC"
	if params.Direction == domain.SortDesc {
		direction = "DESC"
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"deleted": false}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"deleted": false}).
		OrderBy(fmt.Sprintf("%s %s, id ASC", column, direction)).
		Limit(uint64(params.PageSize)).
		Offset(uint64(params.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.PetID,
		&appt.CaregiverID,
		&appt.StartTime,
		&appt.DurationInMinutes,
		&appt.Status,
		&appt.TotalPrice,
		&appt.Notes,
		&appt.Deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if !appt.Status.IsValid() {
		return nil, fmt.Errorf("unknown appointment status %q", appt.Status)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
