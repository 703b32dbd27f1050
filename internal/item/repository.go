package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, filter Filter) ([]*Item, int, error)
	Update(ctx context.Context, it *Item) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"i.id", "i.name", "i.description", "i.available",
		"i.owner_id", "u.name",
		"i.created_at", "i.updated_at",
	).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	var it Item
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available,
		&it.OwnerID, &it.OwnerName,
		&it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &it, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Item, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"i.id", "i.name", "i.description", "i.available",
		"i.owner_id", "u.name",
		"i.created_at", "i.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"i.owner_id": filter.OwnerID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Where(squirrel.Eq{"i.available": true}).
			Where(squirrel.Or{
				squirrel.ILike{"i.name": pattern},
				squirrel.ILike{"i.description": pattern},
			})
	}

	query = query.OrderBy("i.created_at ASC", "i.id ASC")

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
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	var total int

	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Available,
			&it.OwnerID, &it.OwnerName,
			&it.CreatedAt, &it.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &it)
	}

	return items, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
