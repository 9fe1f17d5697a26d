package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	// GetDay returns the entry for (specialist, weekday), or ErrNotFound.
	GetDay(ctx context.Context, specialistID string, dayOfWeek int) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.schedules").
		Columns("specialist_id", "day_of_week", "start_min", "end_min").
		Values(e.SpecialistID, e.DayOfWeek, e.Start.Minutes(), e.End.Minutes()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create schedule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrDuplicateDay
			case pgerrcode.ForeignKeyViolation:
				return ErrSpecialistGone
			}
		}
		return fmt.Errorf("create schedule failed: %w", err)
	}
	return nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var startMin, endMin int
	err := row.Scan(&e.ID, &e.SpecialistID, &e.SpecialistName, &e.DayOfWeek, &startMin, &endMin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan schedule failed: %w", err)
	}
	e.Start, e.End = availability.TimeOfDay(startMin), availability.TimeOfDay(endMin)
	return &e, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"sc.id", "sc.specialist_id", "s.name", "sc.day_of_week", "sc.start_min", "sc.end_min",
	).
		From("public.schedules sc").
		Join("public.specialists s ON sc.specialist_id = s.id").
		Where(squirrel.Eq{"sc.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule query failed: %w", err)
	}

	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetDay(ctx context.Context, specialistID string, dayOfWeek int) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"sc.id", "sc.specialist_id", "s.name", "sc.day_of_week", "sc.start_min", "sc.end_min",
	).
		From("public.schedules sc").
		Join("public.specialists s ON sc.specialist_id = s.id").
		Where(squirrel.Eq{"sc.specialist_id": specialistID, "sc.day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule day query failed: %w", err)
	}

	return scanEntry(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"sc.id", "sc.specialist_id", "s.name", "sc.day_of_week", "sc.start_min", "sc.end_min",
	).
		From("public.schedules sc").
		Join("public.specialists s ON sc.specialist_id = s.id")

	if filter.SpecialistID != "" {
		query = query.Where(squirrel.Eq{"sc.specialist_id": filter.SpecialistID})
	}
	if filter.DayOfWeek != nil {
		query = query.Where(squirrel.Eq{"sc.day_of_week": *filter.DayOfWeek})
	}

	query = query.OrderBy("sc.day_of_week ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list schedules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.schedules").
		Set("day_of_week", e.DayOfWeek).
		Set("start_min", e.Start.Minutes()).
		Set("end_min", e.End.Minutes()).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update schedule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateDay
		}
		return fmt.Errorf("update schedule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete schedule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete schedule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
