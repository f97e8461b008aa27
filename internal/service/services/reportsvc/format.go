package reportsvc

import (
	"fmt"
	"strings"

	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/innatthecape/breakfast-svc/internal/service/models/report"
)

// FormatOrder turns a stored record into the read-side shape. Item lines
// are derived only from sub-blocks that are actually present; an absent
// toppings or breadType block means "not selected", never a data error.
func FormatOrder(rec order.Record) report.FormattedOrder {
	p := rec.Payload

	return report.FormattedOrder{
		OrderID:        rec.OrderID,
		CustomerName:   p.Customer.FirstName,
		RoomNumber:     p.Customer.RoomNumber,
		ScheduledDate:  p.Scheduling.Date,
		ScheduledTime:  p.Scheduling.Time,
		CreatedAt:      rec.CreatedAt,
		SpecialOptions: p.SpecialOptions,
		Items:          itemLines(p),
	}
}

func itemLines(p order.Payload) []report.Item {
	var items []report.Item

	if p.Eggs.Style != "" {
		items = append(items, report.Item{
			Category:    "main",
			Name:        "Eggs",
			Description: eggsDescription(p.Eggs),
		})
	}

	if p.Pancakes.Selected {
		items = append(items, report.Item{
			Category:    "main",
			Name:        "Pancakes",
			Description: "Pancakes" + toppingsSuffix(p.Pancakes.Toppings),
		})
	}

	if p.Waffles.Selected {
		items = append(items, report.Item{
			Category:    "main",
			Name:        "Waffles",
			Description: "Waffles" + toppingsSuffix(p.Waffles.Options),
		})
	}

	if p.Sides.Bacon {
		items = append(items, report.Item{Category: "side", Name: "Bacon", Description: "Bacon"})
	}
	if p.Sides.HomeFries {
		items = append(items, report.Item{Category: "side", Name: "Home Fries", Description: "Home Fries"})
	}
	if p.Sides.Beans {
		items = append(items, report.Item{Category: "side", Name: "Beans", Description: "Beans"})
	}
	if p.Sides.Toast.Selected {
		items = append(items, report.Item{
			Category:    "side",
			Name:        "Toast",
			Description: fmt.Sprintf("Toast (%s)", breadType(p.Sides.Toast)),
		})
	}

	if p.Drinks.Coffee {
		items = append(items, report.Item{Category: "drink", Name: "Coffee", Description: "Coffee"})
	}
	if p.Drinks.Tea {
		items = append(items, report.Item{Category: "drink", Name: "Tea", Description: "Tea"})
	}
	if p.Drinks.Water {
		items = append(items, report.Item{Category: "drink", Name: "Water", Description: "Water"})
	}
	if p.Drinks.Milk {
		items = append(items, report.Item{Category: "drink", Name: "Milk", Description: "Milk"})
	}
	if p.Drinks.Juice.Selected {
		items = append(items, report.Item{
			Category:    "drink",
			Name:        "Juice",
			Description: fmt.Sprintf("Juice (%s)", juiceType(p.Drinks.Juice)),
		})
	}

	return items
}

func eggsDescription(e order.Eggs) string {
	if e.OverStyle != nil {
		return fmt.Sprintf("Eggs (%s %s)", e.Style, *e.OverStyle)
	}

	return fmt.Sprintf("Eggs (%s)", e.Style)
}

func toppingsSuffix(t *order.Toppings) string {
	if t == nil {
		return ""
	}

	var names []string
	if t.Berries {
		names = append(names, "berries")
	}
	if t.Bacon {
		names = append(names, "bacon")
	}
	if t.WhippedCream {
		names = append(names, "whipped cream")
	}

	if len(names) == 0 {
		return ""
	}

	return " with " + strings.Join(names, ", ")
}

func breadType(t order.Toast) string {
	if t.BreadType != nil {
		return *t.BreadType
	}

	return "regular"
}

func juiceType(j order.Juice) string {
	if j.JuiceType != nil {
		return *j.JuiceType
	}

	return "regular"
}

// Summarize aggregates one day's records: per-item counts plus the
// earliest and latest delivery times.
func Summarize(records []order.Record) report.Summary {
	counts := make(map[string]int)
	var times []string

	for _, rec := range records {
		p := rec.Payload

		if p.Eggs.Style != "" {
			counts[eggsDescription(p.Eggs)]++
		}
		if p.Pancakes.Selected {
			counts["Pancakes"]++
		}
		if p.Waffles.Selected {
			counts["Waffles"]++
		}
		if p.Sides.Bacon {
			counts["Bacon"]++
		}
		if p.Sides.HomeFries {
			counts["Home Fries"]++
		}
		if p.Sides.Beans {
			counts["Beans"]++
		}
		if p.Sides.Toast.Selected {
			counts[fmt.Sprintf("Toast (%s)", breadType(p.Sides.Toast))]++
		}
		if p.Drinks.Coffee {
			counts["Coffee"]++
		}
		if p.Drinks.Tea {
			counts["Tea"]++
		}
		if p.Drinks.Water {
			counts["Water"]++
		}
		if p.Drinks.Milk {
			counts["Milk"]++
		}
		if p.Drinks.Juice.Selected {
			counts[fmt.Sprintf("Juice (%s)", juiceType(p.Drinks.Juice))]++
		}

		if p.Scheduling.Time != "" {
			times = append(times, p.Scheduling.Time)
		}
	}

	summary := report.Summary{
		ItemCounts:  counts,
		TotalOrders: len(records),
	}

	for _, t := range times {
		if summary.EarliestTime == "" || t < summary.EarliestTime {
			summary.EarliestTime = t
		}
		if summary.LatestTime == "" || t > summary.LatestTime {
			summary.LatestTime = t
		}
	}

	if summary.EarliestTime != "" && summary.LatestTime != "" {
		summary.TimeRange = summary.EarliestTime + " - " + summary.LatestTime
	}

	return summary
}
