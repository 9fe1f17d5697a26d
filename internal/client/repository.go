package client

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
	Create(ctx context.Context, cl *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByUserID(ctx context.Context, userID string) (*Client, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, cl *Client) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var clientColumns = []string{
	"id", "user_id", "name", "phone", "email", "city", "telegram_id", "created_at",
}

func scanClient(row pgx.Row) (*Client, error) {
	var cl Client
	err := row.Scan(
		&cl.ID, &cl.UserID, &cl.Name, &cl.Phone, &cl.Email,
		&cl.City, &cl.TelegramID, &cl.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan client failed: %w", err)
	}
	return &cl, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "clients_telegram_id_key":
			return ErrTelegramIDTaken
		case "clients_user_id_key":
			return ErrProfileExists
		}
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clients").
		Columns("user_id", "name", "phone", "email", "city", "telegram_id").
		Values(cl.UserID, cl.Name, cl.Phone, cl.Email, cl.City, cl.TelegramID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create client query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cl.ID, &cl.CreatedAt); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create client failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Client, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (r *pgxRepository) GetByTelegramID(ctx context.Context, telegramID string) (*Client, error) {
	return r.getBy(ctx, squirrel.Eq{"telegram_id": telegramID})
}

func (r *pgxRepository) getBy(ctx context.Context, cond squirrel.Eq) (*Client, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(clientColumns...).
		From("public.clients").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client query failed: %w", err)
	}

	return scanClient(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{}, clientColumns...)
	query := psql.Select(append(cols, "count(*) OVER() as total_count")...).
		From("public.clients")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"phone": like},
			squirrel.ILike{"email": like},
		})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"city": filter.City})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list clients query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients failed: %w", err)
	}
	defer rows.Close()

	var clients []*Client
	var total int
	for rows.Next() {
		var cl Client
		err := rows.Scan(
			&cl.ID, &cl.UserID, &cl.Name, &cl.Phone, &cl.Email,
			&cl.City, &cl.TelegramID, &cl.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client failed: %w", err)
		}
		clients = append(clients, &cl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients failed: %w", err)
	}

	return clients, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Client) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clients").
		Set("name", cl.Name).
		Set("phone", cl.Phone).
		Set("email", cl.Email).
		Set("city", cl.City).
		Set("telegram_id", cl.TelegramID).
		Where(squirrel.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update client query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update client failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete client query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete client failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
