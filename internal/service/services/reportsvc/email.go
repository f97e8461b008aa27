package reportsvc

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const emailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, sans-serif; color: #2c3e50;">
<h1>Breakfast Orders for {{.Date}}</h1>
<p>{{.Total}} order(s){{if .Summary.TimeRange}}, delivery between {{.Summary.TimeRange}}{{end}}.</p>

<h2>Orders</h2>
{{range .Orders}}
<div style="border: 1px solid #ddd; margin-bottom: 12px; padding: 10px;">
  <strong>{{.ScheduledTime}} &mdash; Room {{.RoomNumber}} ({{.CustomerName}})</strong>
  {{range .Items}}<div>{{.Description}}</div>{{end}}
  {{if .SpecialOptions}}<div style="color: #e67e22; font-style: italic;">Special: {{.SpecialOptions}}</div>{{end}}
</div>
{{end}}

<h2>Kitchen Totals</h2>
<table border="0" cellpadding="4">
{{range .Counts}}<tr><td>{{.Name}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
</body>
</html>`

var reportTemplate = template.Must(template.New("report").Parse(emailTemplate))

// countLine is one row of the kitchen totals table.
type countLine struct {
	Name  string
	Count int
}

type emailData struct {
	DayOrders
	Counts []countLine
}

// TargetDate resolves the report's delivery date in the property timezone.
// "tomorrow" and "today" are understood; anything else is taken as a
// literal YYYY-MM-DD date, and empty means today.
func (s *ReportService) TargetDate(target string) string {
	now := s.now().In(s.location)
	switch strings.ToLower(target) {
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case "today", "":
		return now.Format("2006-01-02")
	default:
		return target
	}
}

// SendDailyReport emails the day's orders to every configured staff
// address. A day with no orders sends nothing.
func (s *ReportService) SendDailyReport(ctx context.Context, date string) error {
	day, err := s.OrdersForDate(ctx, date)
	if err != nil {
		return err
	}

	if day.Total == 0 {
		slog.Info("No breakfast orders for date, skipping report", "date", date)

		return nil
	}

	htmlBody, err := renderHTML(day)
	if err != nil {
		return fmt.Errorf("failed to render report email: %w", err)
	}
	textBody := renderText(day)
	subject := fmt.Sprintf("Breakfast Orders for %s (%d orders)", date, day.Total)

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	g, sendCtx := errgroup.WithContext(sendCtx)
	g.SetLimit(3)

	for _, to := range s.recipients {
		to := to
		g.Go(func() error {
			return s.mailer.SendHTML(sendCtx, to, subject, textBody, htmlBody)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	slog.Info("Breakfast report sent", "date", date, "orders", day.Total, "recipients", len(s.recipients))

	return nil
}

func renderHTML(day DayOrders) (string, error) {
	data := emailData{DayOrders: day, Counts: sortedCounts(day)}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// renderText is the plain-text alternative for clients that refuse HTML.
func renderText(day DayOrders) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Breakfast Orders for %s\n", day.Date)
	fmt.Fprintf(&sb, "%d order(s)\n\n", day.Total)

	for _, o := range day.Orders {
		fmt.Fprintf(&sb, "%s - Room %s (%s)\n", o.ScheduledTime, o.RoomNumber, o.CustomerName)
		for _, item := range o.Items {
			fmt.Fprintf(&sb, "  - %s\n", item.Description)
		}
		if o.SpecialOptions != "" {
			fmt.Fprintf(&sb, "  Special: %s\n", o.SpecialOptions)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Kitchen Totals\n")
	for _, c := range sortedCounts(day) {
		fmt.Fprintf(&sb, "  %s: %d\n", c.Name, c.Count)
	}

	return sb.String()
}

func sortedCounts(day DayOrders) []countLine {
	counts := make([]countLine, 0, len(day.Summary.ItemCounts))
	for name, count := range day.Summary.ItemCounts {
		counts = append(counts, countLine{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}

		return counts[i].Name < counts[j].Name
	})

	return counts
}
