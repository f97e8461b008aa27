package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

type fakeAuthorizer struct {
	err    error
	tokens []string
	calls  int
}

func (f *fakeAuthorizer) Authorize(_ context.Context, token string) error {
	f.calls++
	f.tokens = append(f.tokens, token)

	return f.err
}

type fakeOrderRepo struct {
	records   map[string]order.Record
	getErr    error
	upsertErr error
	upserts   int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{records: make(map[string]order.Record)}
}

func (f *fakeOrderRepo) key(dp, rnk string) string { return dp + "|" + rnk }

func (f *fakeOrderRepo) Get(_ context.Context, dp, rnk string) (*order.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.records[f.key(dp, rnk)]
	if !ok {
		return nil, nil
	}

	return &rec, nil
}

func (f *fakeOrderRepo) Upsert(_ context.Context, rec order.Record) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.records[f.key(rec.DatePartition, rec.RoomNameKey)] = rec

	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, dp, rnk string) error {
	delete(f.records, f.key(dp, rnk))

	return nil
}

func (f *fakeOrderRepo) QueryByPartition(_ context.Context, dp string) ([]order.Record, error) {
	var out []order.Record
	for _, rec := range f.records {
		if rec.DatePartition == dp {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (f *fakeOrderRepo) PartitionCounts(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, rec := range f.records {
		counts[rec.DatePartition]++
	}

	return counts, nil
}

type fakeAuditRepo struct {
	err      error
	accepted []order.Record
}

func (f *fakeAuditRepo) LogOrderAccepted(_ context.Context, rec order.Record) error {
	f.accepted = append(f.accepted, rec)

	return f.err
}

func validSubmission() order.Submission {
	return order.Submission{
		URLParameters: &order.URLParameters{T: strPtr("abc")},
		Customer: &order.CustomerSection{
			FirstName:  strPtr("Jane"),
			RoomNumber: strPtr("12"),
		},
		Eggs: &order.EggsSection{
			Style:     strPtr("over"),
			OverStyle: strPtr("sunny"),
		},
		Pancakes: &order.PancakesSection{Selected: boolPtr(false)},
		Waffles:  &order.WafflesSection{Selected: boolPtr(false)},
		Sides: &order.SidesSection{
			Bacon:     boolPtr(true),
			HomeFries: boolPtr(false),
			Beans:     boolPtr(false),
			Toast: &order.ToastSection{
				Selected:  boolPtr(true),
				BreadType: strPtr("rye"),
			},
		},
		Drinks: &order.DrinksSection{
			Water:  boolPtr(true),
			Milk:   boolPtr(false),
			Juice:  &order.JuiceSection{Selected: boolPtr(false)},
			Coffee: boolPtr(true),
			Tea:    boolPtr(false),
		},
		Scheduling: &order.SchedulingSection{
			Date: strPtr("2025-08-05"),
			Time: strPtr("08:30"),
		},
		SpecialOptions: strPtr(" none "),
	}
}

func newService(auth *fakeAuthorizer, repo *fakeOrderRepo, audit *fakeAuditRepo, now time.Time) *OrderService {
	opts := []option{
		WithAuthorizer(auth),
		WithOrderRepository(repo),
	}
	if audit != nil {
		opts = append(opts, WithAuditRepository(audit))
	}

	s := MustNewOrderService(opts...)
	s.now = func() time.Time { return now }

	return s
}

func TestSubmitOrder(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	audit := &fakeAuditRepo{}
	now := time.Date(2025, 8, 4, 20, 15, 0, 0, time.UTC)
	svc := newService(auth, repo, audit, now)

	rec, err := svc.SubmitOrder(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, []string{"abc"}, auth.tokens)
	assert.Equal(t, "bk_2025-08-05", rec.DatePartition)
	assert.Equal(t, "12-Jane", rec.RoomNameKey)
	assert.Equal(t, "1754338500_12", rec.OrderID)
	assert.Equal(t, "none", rec.Payload.SpecialOptions)

	stored, err := repo.Get(context.Background(), rec.DatePartition, rec.RoomNameKey)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, rec, *stored)

	require.Len(t, audit.accepted, 1)
	assert.Equal(t, rec.OrderID, audit.accepted[0].OrderID)
}

func TestSubmitOrderReplacesByIdentity(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()

	first := newService(auth, repo, nil, time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC))
	_, err := first.SubmitOrder(context.Background(), validSubmission())
	require.NoError(t, err)

	// Same guest, same date, different choices an hour later.
	resub := validSubmission()
	resub.Eggs = &order.EggsSection{Style: strPtr("scrambled")}
	second := newService(auth, repo, nil, time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC))
	rec, err := second.SubmitOrder(context.Background(), resub)
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	stored, err := repo.Get(context.Background(), rec.DatePartition, rec.RoomNameKey)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "scrambled", stored.Payload.Eggs.Style)
	assert.Nil(t, stored.Payload.Eggs.OverStyle)
}

func TestSubmitOrderUnauthorized(t *testing.T) {
	auth := &fakeAuthorizer{err: credential.ErrUnauthorized}
	repo := newFakeOrderRepo()
	svc := newService(auth, repo, nil, time.Now())

	_, err := svc.SubmitOrder(context.Background(), validSubmission())
	assert.ErrorIs(t, err, credential.ErrUnauthorized)
	assert.Zero(t, repo.upserts)
}

func TestSubmitOrderMissingToken(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	svc := newService(auth, repo, nil, time.Now())

	sub := validSubmission()
	sub.URLParameters = nil

	_, err := svc.SubmitOrder(context.Background(), sub)
	assert.ErrorIs(t, err, order.ErrMalformedRequest)
	assert.Zero(t, auth.calls, "missing token must fail before the store is consulted")
	assert.Zero(t, repo.upserts)
}

func TestSubmitOrderMalformedWritesNothing(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	svc := newService(auth, repo, nil, time.Now())

	sub := validSubmission()
	sub.Scheduling = nil

	_, err := svc.SubmitOrder(context.Background(), sub)
	assert.ErrorIs(t, err, order.ErrMalformedRequest)
	assert.Equal(t, 1, auth.calls)
	assert.Zero(t, repo.upserts)
}

func TestSubmitOrderWriteFailure(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	repo.upsertErr = errors.New("connection reset")
	svc := newService(auth, repo, nil, time.Now())

	_, err := svc.SubmitOrder(context.Background(), validSubmission())
	assert.ErrorIs(t, err, order.ErrStorageWrite)
}

func TestSubmitOrderToleratesReadFailure(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	repo.getErr = errors.New("read timeout")
	svc := newService(auth, repo, nil, time.Now())

	rec, err := svc.SubmitOrder(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
	assert.NotEmpty(t, rec.OrderID)
}

func TestSubmitOrderAuditFailureIsNonFatal(t *testing.T) {
	auth := &fakeAuthorizer{}
	repo := newFakeOrderRepo()
	audit := &fakeAuditRepo{err: errors.New("broker down")}
	svc := newService(auth, repo, audit, time.Now())

	_, err := svc.SubmitOrder(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
}
