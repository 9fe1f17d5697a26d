package specialist

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Specialist) error
	GetByID(ctx context.Context, id string) (*Specialist, error)
	GetByUserID(ctx context.Context, userID string) (*Specialist, error)
	List(ctx context.Context, filter Filter) ([]*Specialist, int, error)
	Update(ctx context.Context, s *Specialist) error
	SetPhotoPath(ctx context.Context, id string, path *string) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var specialistColumns = []string{
	"id", "user_id", "name", "specialization", "description",
	"city", "photo_path", "is_active", "created_at",
}

func scanSpecialist(row pgx.Row) (*Specialist, error) {
	var s Specialist
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Specialization, &s.Description,
		&s.City, &s.PhotoPath, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan specialist failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Specialist) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.specialists").
		Columns("user_id", "name", "specialization", "description", "city", "is_active").
		Values(s.UserID, s.Name, s.Specialization, s.Description, s.City, s.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create specialist query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("create specialist failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Specialist, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(specialistColumns...).
		From("public.specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get specialist query failed: %w", err)
	}

	return scanSpecialist(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Specialist, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(specialistColumns...).
		From("public.specialists").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get specialist query failed: %w", err)
	}

	return scanSpecialist(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Specialist, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{}, specialistColumns...)
	query := psql.Select(append(cols, "count(*) OVER() as total_count")...).
		From("public.specialists").
		Where(squirrel.Eq{"is_active": true})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"specialization": like},
		})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"city": filter.City})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.offerings o WHERE o.specialist_id = specialists.id AND o.category_id = ? AND o.is_active)",
			filter.CategoryID,
		))
	}

	query = query.OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list specialists query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list specialists failed: %w", err)
	}
	defer rows.Close()

	var specialists []*Specialist
	var total int

	for rows.Next() {
		var s Specialist
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Specialization, &s.Description,
			&s.City, &s.PhotoPath, &s.IsActive, &s.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan specialist failed: %w", err)
		}
		specialists = append(specialists, &s)
	}

	return specialists, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Specialist) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.specialists").
		Set("name", s.Name).
		Set("specialization", s.Specialization).
		Set("description", s.Description).
		Set("city", s.City).
		Set("is_active", s.IsActive).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update specialist query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update specialist failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetPhotoPath(ctx context.Context, id string, path *string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.specialists").
		Set("photo_path", path).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set photo query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete specialist query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete specialist failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
