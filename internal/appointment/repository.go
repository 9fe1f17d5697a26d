package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
)

// Guard runs inside the booking transaction, after the (specialist, date) pair
// has been locked and its occupying intervals loaded. Returning an error
// aborts the write. This is what keeps concurrent bookings of the same slot
// from both succeeding.
type Guard func(occupied []availability.Interval) error

type Repository interface {
	// Create inserts the appointment after the guard approves it. The guard
	// sees every pending or confirmed interval of the specialist's day.
	Create(ctx context.Context, a *Appointment, guard Guard) error

	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)

	// UpdateTime moves the appointment to a new date or window after the
	// guard approves it. The appointment's own interval is excluded from what
	// the guard sees.
	UpdateTime(ctx context.Context, a *Appointment, guard Guard) error

	UpdateStatus(ctx context.Context, id string, status Status) error

	// OccupiedIntervals returns the pending and confirmed intervals of a
	// specialist's day. excludeID, when non-empty, drops that appointment.
	OccupiedIntervals(ctx context.Context, specialistID string, date time.Time, excludeID string) ([]availability.Interval, error)

	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const dateLayout = "2006-01-02"

var appointmentColumns = []string{
	"a.id", "a.client_id", "c.name", "a.specialist_id", "s.name",
	"a.offering_id", "o.name", "a.date", "a.start_min", "a.end_min",
	"a.status", "a.notes", "a.created_at",
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var startMin, endMin int
	var status string
	err := row.Scan(
		&a.ID, &a.ClientID, &a.ClientName, &a.SpecialistID, &a.SpecialistName,
		&a.OfferingID, &a.OfferingName, &a.Date, &startMin, &endMin,
		&status, &a.Notes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan appointment failed: %w", err)
	}
	a.Start = availability.TimeOfDay(startMin)
	a.End = availability.TimeOfDay(endMin)
	a.Status = Status(status)
	return &a, nil
}

func mapFKViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "appointments_client_id_fkey":
			return ErrClientGone
		case "appointments_offering_id_fkey":
			return ErrOfferingGone
		case "appointments_specialist_id_fkey":
			return ErrSpecialistGone
		}
	}
	return nil
}

// lockDay serializes writers touching the same specialist's day. The advisory
// lock is transaction-scoped and released on commit or rollback.
func lockDay(ctx context.Context, tx pgx.Tx, specialistID string, date time.Time) error {
	key := specialistID + ":" + date.Format(dateLayout)
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("lock booking day failed: %w", err)
	}
	return nil
}

func occupiedIntervals(ctx context.Context, q querier, specialistID string, date time.Time, excludeID string) ([]availability.Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("start_min", "end_min").
		From("public.appointments").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.Eq{"date": date.Format(dateLayout)}).
		Where(squirrel.Eq{"status": []string{string(StatusPending), string(StatusConfirmed)}})
	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build occupied intervals query failed: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("occupied intervals failed: %w", err)
	}
	defer rows.Close()

	var occupied []availability.Interval
	for rows.Next() {
		var startMin, endMin int
		if err := rows.Scan(&startMin, &endMin); err != nil {
			return nil, fmt.Errorf("scan occupied interval failed: %w", err)
		}
		occupied = append(occupied, availability.Interval{
			Start: availability.TimeOfDay(startMin),
			End:   availability.TimeOfDay(endMin),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupied intervals failed: %w", err)
	}
	return occupied, nil
}

func (r *pgxRepository) OccupiedIntervals(ctx context.Context, specialistID string, date time.Time, excludeID string) ([]availability.Interval, error) {
	return occupiedIntervals(ctx, r.pool, specialistID, date, excludeID)
}

func (r *pgxRepository) Create(ctx context.Context, a *Appointment, guard Guard) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockDay(ctx, tx, a.SpecialistID, a.Date); err != nil {
		return err
	}

	occupied, err := occupiedIntervals(ctx, tx, a.SpecialistID, a.Date, "")
	if err != nil {
		return err
	}
	if err := guard(occupied); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.appointments").
		Columns("client_id", "specialist_id", "offering_id", "date", "start_min", "end_min", "status", "notes").
		Values(a.ClientID, a.SpecialistID, a.OfferingID, a.Date.Format(dateLayout),
			a.Start.Minutes(), a.End.Minutes(), string(a.Status), a.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create appointment query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if mapped := mapFKViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create appointment failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateTime(ctx context.Context, a *Appointment, guard Guard) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockDay(ctx, tx, a.SpecialistID, a.Date); err != nil {
		return err
	}

	occupied, err := occupiedIntervals(ctx, tx, a.SpecialistID, a.Date, a.ID)
	if err != nil {
		return err
	}
	if err := guard(occupied); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("date", a.Date.Format(dateLayout)).
		Set("start_min", a.Start.Minutes()).
		Set("end_min", a.End.Minutes()).
		Set("notes", a.Notes).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update appointment query failed: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update appointment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(appointmentColumns...).
		From("public.appointments a").
		Join("public.clients c ON c.id = a.client_id").
		Join("public.specialists s ON s.id = a.specialist_id").
		Join("public.offerings o ON o.id = a.offering_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get appointment query failed: %w", err)
	}

	return scanAppointment(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{}, appointmentColumns...)
	query := psql.Select(append(cols, "count(*) OVER() as total_count")...).
		From("public.appointments a").
		Join("public.clients c ON c.id = a.client_id").
		Join("public.specialists s ON s.id = a.specialist_id").
		Join("public.offerings o ON o.id = a.offering_id")

	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"a.client_id": filter.ClientID})
	}
	if filter.SpecialistID != "" {
		query = query.Where(squirrel.Eq{"a.specialist_id": filter.SpecialistID})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"o.category_id": filter.CategoryID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": string(filter.Status)})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"a.date": filter.DateFrom.Format(dateLayout)})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"a.date": filter.DateTo.Format(dateLayout)})
	}

	query = query.OrderBy("a.date ASC", "a.start_min ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize > 0 {
		query = query.
			Limit(uint64(filter.PageSize)).
			Offset(uint64((filter.Page - 1) * filter.PageSize))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list appointments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments failed: %w", err)
	}
	defer rows.Close()

	var appointments []*Appointment
	var total int
	for rows.Next() {
		var a Appointment
		var startMin, endMin int
		var status string
		err := rows.Scan(
			&a.ID, &a.ClientID, &a.ClientName, &a.SpecialistID, &a.SpecialistName,
			&a.OfferingID, &a.OfferingName, &a.Date, &startMin, &endMin,
			&status, &a.Notes, &a.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan appointment failed: %w", err)
		}
		a.Start = availability.TimeOfDay(startMin)
		a.End = availability.TimeOfDay(endMin)
		a.Status = Status(status)
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate appointments failed: %w", err)
	}

	return appointments, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.appointments").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update appointment status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete appointment query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete appointment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
