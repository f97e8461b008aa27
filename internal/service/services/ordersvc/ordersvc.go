package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/dal/interfaces/iauditrepo"
	"github.com/innatthecape/breakfast-svc/internal/dal/interfaces/iorderrepo"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
)

// OrderService is the order intake pipeline: token check, normalization,
// identity computation and the replace-by-key write.
type OrderService struct {
	authorizer authorizer
	orderRepo  iorderrepo.IOrderRepository
	auditRepo  iauditrepo.IAuditRepository
	now        func() time.Time
}

// authorizer validates a presented access token against the credential
// store. It is called fresh per submission; there is no in-process cache.
type authorizer interface {
	Authorize(ctx context.Context, token string) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithAuthorizer sets the token validator for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuthorizer(a authorizer) option {
	return func(s *OrderService) {
		s.authorizer = a
	}
}

// WithOrderRepository sets the order store repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithAuditRepository sets the order-accepted event publisher. It is
// optional; without it, accepted orders are simply not announced.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// SubmitOrder runs the intake pipeline for one submission. The token is
// checked first; only an authorized submission reaches normalization and
// storage. A malformed submission is never partially applied. A write
// failure is fatal to the whole request.
func (s *OrderService) SubmitOrder(ctx context.Context, sub order.Submission) (order.Record, error) {
	token, err := sub.Token()
	if err != nil {
		return order.Record{}, err
	}

	if err := s.authorizer.Authorize(ctx, token); err != nil {
		return order.Record{}, err
	}

	payload, err := sub.Normalize()
	if err != nil {
		return order.Record{}, err
	}

	rec := order.NewRecord(payload, s.now())

	// The pre-write read only drives logging; the write below replaces by
	// key either way, so a failed read is tolerated.
	existing, err := s.orderRepo.Get(ctx, rec.DatePartition, rec.RoomNameKey)
	switch {
	case err != nil:
		slog.Warn("Failed to check for existing order, proceeding with write",
			"date_partition", rec.DatePartition,
			"room_name_key", rec.RoomNameKey,
			"error", err,
		)
	case existing != nil:
		slog.Info("Replacing existing order",
			"date_partition", rec.DatePartition,
			"room_name_key", rec.RoomNameKey,
			"previous_order_id", existing.OrderID,
		)
	}

	if err := s.orderRepo.Upsert(ctx, rec); err != nil {
		return order.Record{}, fmt.Errorf("%w: %w", order.ErrStorageWrite, err)
	}

	slog.Info("Order saved", "order_id", rec.OrderID, "date_partition", rec.DatePartition)

	if s.auditRepo != nil {
		if err := s.auditRepo.LogOrderAccepted(ctx, rec); err != nil {
			slog.Error("Failed to log order accepted event", "order_id", rec.OrderID, "error", err)
		}
	}

	return rec, nil
}
