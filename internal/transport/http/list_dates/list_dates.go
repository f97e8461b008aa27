package listdates

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
	"github.com/innatthecape/breakfast-svc/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	AvailableDates(ctx context.Context) ([]report.DateInfo, error)
}

type response struct {
	Dates      []report.DateInfo `json:"dates"`
	TotalDates int               `json:"totalDates"`
}

// ListDates returns every date with stored orders, newest first.
func ListDates(w http.ResponseWriter, r *http.Request, service service) {
	dates, err := service.AvailableDates(r.Context())
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Failed to get dates")
		slog.Error("Error getting dates", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, response{
		Dates:      dates,
		TotalDates: len(dates),
	})
}
