package postgresrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/innatthecape/breakfast-svc/internal/dal/postgres"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
)

// OrderRepository implements the order store for PostgreSQL. Records live
// in breakfast_orders keyed by (date_partition, room_name_key); the
// canonical payload is a jsonb column so the conditional-presence shape is
// stored exactly as submitted.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// Get returns the record stored at (datePartition, roomNameKey), or nil if
// there is none.
func (r *OrderRepository) Get(ctx context.Context, datePartition, roomNameKey string) (*order.Record, error) {
	query, args, err := sq.Select("order_id", "payload", "created_at").
		From("breakfast_orders").
		Where(sq.Eq{"date_partition": datePartition, "room_name_key": roomNameKey}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		orderID     string
		payloadJSON []byte
		createdAt   float64
	)
	row := r.client.DB().QueryRowContext(ctx, query, args...)
	if err := row.Scan(&orderID, &payloadJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	var payload order.Payload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order payload: %w", err)
	}

	return &order.Record{
		DatePartition: datePartition,
		RoomNameKey:   roomNameKey,
		OrderID:       orderID,
		Payload:       payload,
		CreatedAt:     createdAt,
	}, nil
}

// Upsert writes the record, replacing any prior record with the same
// identity. The replace is a single atomic put by key, so two concurrent
// submissions for the same identity resolve to whichever write lands last.
func (r *OrderRepository) Upsert(ctx context.Context, rec order.Record) error {
	payloadJSON, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	query, args, err := sq.Insert("breakfast_orders").
		Columns("date_partition", "room_name_key", "order_id", "payload", "created_at").
		Values(rec.DatePartition, rec.RoomNameKey, rec.OrderID, payloadJSON, rec.CreatedAt).
		Suffix(`ON CONFLICT (date_partition, room_name_key) DO UPDATE SET
			order_id = EXCLUDED.order_id,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}

	return nil
}

// Delete removes the record at (datePartition, roomNameKey).
func (r *OrderRepository) Delete(ctx context.Context, datePartition, roomNameKey string) error {
	query, args, err := sq.Delete("breakfast_orders").
		Where(sq.Eq{"date_partition": datePartition, "room_name_key": roomNameKey}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

// QueryByPartition returns every record stored under one partition.
func (r *OrderRepository) QueryByPartition(ctx context.Context, datePartition string) ([]order.Record, error) {
	query, args, err := sq.Select("room_name_key", "order_id", "payload", "created_at").
		From("breakfast_orders").
		Where(sq.Eq{"date_partition": datePartition}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Record
	for rows.Next() {
		rec := order.Record{DatePartition: datePartition}
		var payloadJSON []byte
		if err := rows.Scan(&rec.RoomNameKey, &rec.OrderID, &payloadJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(payloadJSON, &rec.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order payload: %w", err)
		}
		result = append(result, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// PartitionCounts returns the number of records stored per partition key.
func (r *OrderRepository) PartitionCounts(ctx context.Context) (map[string]int, error) {
	query, args, err := sq.Select("date_partition", "COUNT(*)").
		From("breakfast_orders").
		GroupBy("date_partition").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count partitions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			partition string
			count     int
		)
		if err := rows.Scan(&partition, &count); err != nil {
			return nil, fmt.Errorf("failed to scan partition count: %w", err)
		}
		counts[partition] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}
