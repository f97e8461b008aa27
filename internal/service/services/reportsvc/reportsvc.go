package reportsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/innatthecape/breakfast-svc/internal/dal/interfaces/iorderrepo"
	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
)

// ReportService is the read side: it shapes stored orders for the staff
// app and produces the daily email report.
type ReportService struct {
	orderRepo  iorderrepo.IOrderRepository
	mailer     mailer
	recipients []string
	location   *time.Location
	now        func() time.Time
}

// mailer is the outbound mail dependency for the daily report.
type mailer interface {
	SendHTML(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// option is a function that configures the ReportService.
type option func(*ReportService)

// MustNewReportService creates a new ReportService.
func MustNewReportService(opts ...option) *ReportService {
	s := &ReportService{
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order store repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *ReportService) {
		s.orderRepo = repo
	}
}

// WithMailer sets the outbound mail client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailer(m mailer) option {
	return func(s *ReportService) {
		s.mailer = m
	}
}

// WithRecipients sets the staff addresses the daily report goes to.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRecipients(recipients []string) option {
	return func(s *ReportService) {
		s.recipients = recipients
	}
}

// WithLocation sets the property's timezone, used for "today"/"tomorrow".
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLocation(loc *time.Location) option {
	return func(s *ReportService) {
		s.location = loc
	}
}

// DayOrders is one day's worth of orders shaped for consumers.
type DayOrders struct {
	Date    string                  `json:"date"`
	Orders  []report.FormattedOrder `json:"orders"`
	Summary report.Summary          `json:"summary"`
	Total   int                     `json:"totalOrders"`
}

// OrdersForDate returns the formatted orders and summary for one delivery
// date, sorted by scheduled time. The date must already be validated by
// the caller; it is used verbatim to derive the partition key.
func (s *ReportService) OrdersForDate(ctx context.Context, date string) (DayOrders, error) {
	records, err := s.orderRepo.QueryByPartition(ctx, order.PartitionKey(date))
	if err != nil {
		return DayOrders{}, fmt.Errorf("failed to query orders for %s: %w", date, err)
	}

	formatted := make([]report.FormattedOrder, 0, len(records))
	for _, rec := range records {
		formatted = append(formatted, FormatOrder(rec))
	}

	sort.SliceStable(formatted, func(i, j int) bool {
		return sortTime(formatted[i].ScheduledTime) < sortTime(formatted[j].ScheduledTime)
	})

	return DayOrders{
		Date:    date,
		Orders:  formatted,
		Summary: Summarize(records),
		Total:   len(formatted),
	}, nil
}

// sortTime treats a missing scheduled time as end of day so those orders
// sort last.
func sortTime(t string) string {
	if t == "" {
		return "23:59"
	}

	return t
}

// AvailableDates lists every date that has stored orders, newest first.
// Partitions whose embedded date does not parse are skipped.
func (s *ReportService) AvailableDates(ctx context.Context) ([]report.DateInfo, error) {
	counts, err := s.orderRepo.PartitionCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	today := s.now().In(s.location).Format("2006-01-02")

	dates := make([]report.DateInfo, 0, len(counts))
	for partition, count := range counts {
		date := strings.TrimPrefix(partition, "bk_")
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		dates = append(dates, report.DateInfo{
			Date:        date,
			DisplayName: parsed.Format("Monday, January 02, 2006"),
			OrderCount:  count,
			DayOfWeek:   parsed.Format("Monday"),
			IsToday:     date == today,
		})
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date > dates[j].Date
	})

	return dates, nil
}
