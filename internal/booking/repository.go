package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shareloop/item-loan-backend/internal/pkg/paging"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// List returns the bookings matching the criteria, ordered by start
	// time descending (ties broken by id descending), plus the total
	// match count. Pagination is consumed only through the page's
	// derived index and size.
	List(ctx context.Context, criteria Criteria, page paging.Page) ([]*Booking, int, error)

	// UpdateStatus persists a status transition. The update is
	// conditional on the row still being WAITING, so two concurrent
	// decisions on the same booking cannot both win; the loser gets
	// ErrInvalidStatus.
	UpdateStatus(ctx context.Context, b *Booking) error

	// HasApprovedOverlap checks whether an APPROVED booking on the item
	// overlaps the given [start, end) window.
	HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error)
}

const joinedColumns = "b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name, " +
	"b.start_time, b.end_time, b.status, b.created_at, b.updated_at"

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(joinedColumns).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, criteria Criteria, page paging.Page) ([]*Booking, int, error) {
	conds, err := criteria.conditions()
	if err != nil {
		return nil, 0, err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(joinedColumns, "count(*) OVER() AS total_count").
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")

	for _, cond := range conds {
		query = query.Where(cond)
	}

	// Most recently starting first; id breaks ties so the order is
	// deterministic for equal start times.
	query = query.OrderBy("b.start_time DESC", "b.id DESC").
		Limit(uint64(page.Size())).
		Offset(uint64(page.Index() * page.Size()))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"status": StatusWaiting}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either the booking is gone or a concurrent decision got there
		// first; both mean this transition is no longer legal.
		return ErrInvalidStatus
	}
	return nil
}

func (r *pgxRepository) HasApprovedOverlap(ctx context.Context, itemID string, start, end time.Time) (bool, error) {
	// Overlap: NewStart < ExistingEnd AND NewEnd > ExistingStart.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
