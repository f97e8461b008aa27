package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/service/services/reportsvc"
	"github.com/innatthecape/breakfast-svc/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	OrdersForDate(ctx context.Context, date string) (reportsvc.DayOrders, error)
	TargetDate(target string) string
}

// ListOrders returns one day's formatted orders. Without a date parameter
// it serves today; the parameter must be YYYY-MM-DD.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = service.TargetDate("today")
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		respond.Error(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")

		return
	}

	day, err := service.OrdersForDate(r.Context(), date)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to get orders")
		slog.Error("Error getting orders", "date", date, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, day)
}
