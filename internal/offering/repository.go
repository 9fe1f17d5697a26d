package offering

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, o *Offering) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var offeringColumns = []string{
	"o.id", "o.name", "o.description", "o.price", "o.duration_minutes",
	"o.specialist_id", "s.name", "o.category_id", "c.name",
	"o.is_active", "o.created_at",
}

func scanOffering(row pgx.Row) (*Offering, error) {
	var o Offering
	err := row.Scan(
		&o.ID, &o.Name, &o.Description, &o.Price, &o.DurationMinutes,
		&o.SpecialistID, &o.SpecialistName, &o.CategoryID, &o.CategoryName,
		&o.IsActive, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan offering failed: %w", err)
	}
	return &o, nil
}

func mapFKViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		switch pgErr.ConstraintName {
		case "offerings_category_id_fkey":
			return ErrCategoryGone
		case "offerings_specialist_id_fkey":
			return ErrSpecialistGone
		}
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.offerings").
		Columns("name", "description", "price", "duration_minutes", "specialist_id", "category_id", "is_active").
		Values(o.Name, o.Description, o.Price, o.DurationMinutes, o.SpecialistID, o.CategoryID, o.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create offering query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		if mapped := mapFKViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create offering failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(offeringColumns...).
		From("public.offerings o").
		Join("public.specialists s ON s.id = o.specialist_id").
		LeftJoin("public.categories c ON c.id = o.category_id").
		Where(squirrel.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get offering query failed: %w", err)
	}

	return scanOffering(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{}, offeringColumns...)
	query := psql.Select(append(cols, "count(*) OVER() as total_count")...).
		From("public.offerings o").
		Join("public.specialists s ON s.id = o.specialist_id").
		LeftJoin("public.categories c ON c.id = o.category_id").
		Where(squirrel.Eq{"o.is_active": true})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"o.name": like},
			squirrel.ILike{"o.description": like},
		})
	}
	if filter.SpecialistID != "" {
		query = query.Where(squirrel.Eq{"o.specialist_id": filter.SpecialistID})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"o.category_id": filter.CategoryID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"s.city": filter.City})
	}

	query = query.OrderBy("o.name ASC")

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
		return nil, 0, fmt.Errorf("build list offerings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offerings failed: %w", err)
	}
	defer rows.Close()

	var offerings []*Offering
	var total int
	for rows.Next() {
		var o Offering
		err := rows.Scan(
			&o.ID, &o.Name, &o.Description, &o.Price, &o.DurationMinutes,
			&o.SpecialistID, &o.SpecialistName, &o.CategoryID, &o.CategoryName,
			&o.IsActive, &o.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan offering failed: %w", err)
		}
		offerings = append(offerings, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate offerings failed: %w", err)
	}

	return offerings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.offerings").
		Set("name", o.Name).
		Set("description", o.Description).
		Set("price", o.Price).
		Set("duration_minutes", o.DurationMinutes).
		Set("category_id", o.CategoryID).
		Set("is_active", o.IsActive).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update offering query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapFKViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update offering failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete offering query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete offering failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
