package listdates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	dates []report.DateInfo
	err   error
}

func (f *fakeService) AvailableDates(context.Context) ([]report.DateInfo, error) {
	return f.dates, f.err
}

func TestListDates(t *testing.T) {
	svc := &fakeService{dates: []report.DateInfo{
		{Date: "2025-08-05", DisplayName: "Tuesday, August 05, 2025", OrderCount: 2, DayOfWeek: "Tuesday", IsToday: true},
		{Date: "2025-08-04", DisplayName: "Monday, August 04, 2025", OrderCount: 1, DayOfWeek: "Monday"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/dates", nil)
	w := httptest.NewRecorder()
	ListDates(w, req, svc)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Dates      []report.DateInfo `json:"dates"`
		TotalDates int               `json:"totalDates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.TotalDates)
	require.Len(t, body.Dates, 2)
	assert.Equal(t, "2025-08-05", body.Dates[0].Date)
	assert.True(t, body.Dates[0].IsToday)
}

func TestListDatesServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("scan failed")}

	req := httptest.NewRequest(http.MethodGet, "/api/dates", nil)
	w := httptest.NewRecorder()
	ListDates(w, req, svc)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get dates"}`, w.Body.String())
}
