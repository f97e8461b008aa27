package iauditrepo

import (
	"context"

	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
)

// IAuditRepository is an interface for the order-accepted event publisher.
type IAuditRepository interface {
	LogOrderAccepted(ctx context.Context, rec order.Record) error
}
