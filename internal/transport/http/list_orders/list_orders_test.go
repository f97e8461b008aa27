package listorders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
	"github.com/innatthecape/breakfast-svc/internal/service/services/reportsvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	day       reportsvc.DayOrders
	err       error
	today     string
	askedDate string
}

func (f *fakeService) OrdersForDate(_ context.Context, date string) (reportsvc.DayOrders, error) {
	f.askedDate = date

	return f.day, f.err
}

func (f *fakeService) TargetDate(string) string { return f.today }

func get(t *testing.T, svc service, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	ListOrders(w, req, svc)

	return w
}

func TestListOrders(t *testing.T) {
	svc := &fakeService{day: reportsvc.DayOrders{
		Date: "2025-08-05",
		Orders: []report.FormattedOrder{
			{OrderID: "1754338500_12", CustomerName: "Jane", RoomNumber: "12", ScheduledTime: "08:30"},
		},
		Total: 1,
	}}

	w := get(t, svc, "/api/orders?date=2025-08-05")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-08-05", svc.askedDate)

	var body reportsvc.DayOrders
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "Jane", body.Orders[0].CustomerName)
}

func TestListOrdersDefaultsToToday(t *testing.T) {
	svc := &fakeService{today: "2025-08-04"}

	w := get(t, svc, "/api/orders")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-08-04", svc.askedDate)
}

func TestListOrdersRejectsBadDate(t *testing.T) {
	svc := &fakeService{}

	w := get(t, svc, "/api/orders?date=08-05-2025")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Date must be in YYYY-MM-DD format"}`, w.Body.String())
	assert.Empty(t, svc.askedDate)
}

func TestListOrdersServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("scan failed")}

	w := get(t, svc, "/api/orders?date=2025-08-05")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get orders"}`, w.Body.String())
}
