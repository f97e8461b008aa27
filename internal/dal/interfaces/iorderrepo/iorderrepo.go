package iorderrepo

import (
	"context"

	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
)

// IOrderRepository is an interface for the order store.
type IOrderRepository interface {
	// Get returns the record at (datePartition, roomNameKey), or nil if
	// none exists.
	Get(ctx context.Context, datePartition, roomNameKey string) (*order.Record, error)
	// Upsert writes the record, replacing any prior record with the same
	// identity in a single atomic put.
	Upsert(ctx context.Context, rec order.Record) error
	Delete(ctx context.Context, datePartition, roomNameKey string) error
	// QueryByPartition returns every record stored under one partition.
	QueryByPartition(ctx context.Context, datePartition string) ([]order.Record, error)
	// PartitionCounts returns the number of records per partition key.
	PartitionCounts(ctx context.Context) (map[string]int, error)
}
