package reportsvc

import (
	"testing"

	"github.com/innatthecape/breakfast-svc/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func janeRecord() order.Record {
	sunny := "sunny"
	rye := "rye"

	return order.Record{
		DatePartition: "bk_2025-08-05",
		RoomNameKey:   "12-Jane",
		OrderID:       "1754338500_12",
		CreatedAt:     1754338500,
		Payload: order.Payload{
			Customer: order.Customer{FirstName: "Jane", RoomNumber: "12"},
			Eggs:     order.Eggs{Style: "over", OverStyle: &sunny},
			Pancakes: order.Pancakes{Selected: false},
			Waffles:  order.Waffles{Selected: false},
			Sides: order.Sides{
				Bacon: true,
				Toast: order.Toast{Selected: true, BreadType: &rye},
			},
			Drinks: order.Drinks{
				Water:  true,
				Coffee: true,
				Juice:  order.Juice{Selected: false},
			},
			Scheduling:     order.Scheduling{Date: "2025-08-05", Time: "08:30"},
			SpecialOptions: "none",
		},
	}
}

func descriptions(rec order.Record) []string {
	formatted := FormatOrder(rec)
	out := make([]string, 0, len(formatted.Items))
	for _, item := range formatted.Items {
		out = append(out, item.Description)
	}

	return out
}

func TestFormatOrder(t *testing.T) {
	f := FormatOrder(janeRecord())

	assert.Equal(t, "1754338500_12", f.OrderID)
	assert.Equal(t, "Jane", f.CustomerName)
	assert.Equal(t, "12", f.RoomNumber)
	assert.Equal(t, "2025-08-05", f.ScheduledDate)
	assert.Equal(t, "08:30", f.ScheduledTime)
	assert.Equal(t, "none", f.SpecialOptions)

	assert.Equal(t, []string{
		"Eggs (over sunny)",
		"Bacon",
		"Toast (rye)",
		"Coffee",
		"Water",
	}, descriptions(janeRecord()))
}

func TestItemLinesConditionalBlocks(t *testing.T) {
	t.Run("pancakes with toppings", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Pancakes = order.Pancakes{
			Selected: true,
			Toppings: &order.Toppings{Berries: true, WhippedCream: true},
		}

		assert.Contains(t, descriptions(rec), "Pancakes with berries, whipped cream")
	})

	t.Run("waffles with all options", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Waffles = order.Waffles{
			Selected: true,
			Options:  &order.Toppings{Berries: true, Bacon: true, WhippedCream: true},
		}

		assert.Contains(t, descriptions(rec), "Waffles with berries, bacon, whipped cream")
	})

	t.Run("selected with no toppings chosen", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Pancakes = order.Pancakes{
			Selected: true,
			Toppings: &order.Toppings{},
		}

		assert.Contains(t, descriptions(rec), "Pancakes")
	})

	t.Run("absent breadType falls back to regular", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Sides.Toast = order.Toast{Selected: true}

		assert.Contains(t, descriptions(rec), "Toast (regular)")
	})

	t.Run("juice with type", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Drinks.Juice = order.Juice{Selected: true, JuiceType: strPtr("orange")}

		assert.Contains(t, descriptions(rec), "Juice (orange)")
	})

	t.Run("scrambled eggs without overStyle", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Eggs = order.Eggs{Style: "scrambled"}

		assert.Contains(t, descriptions(rec), "Eggs (scrambled)")
	})

	t.Run("no eggs style yields no eggs line", func(t *testing.T) {
		rec := janeRecord()
		rec.Payload.Eggs = order.Eggs{}

		assert.NotContains(t, descriptions(rec), "Eggs ()")
		for _, d := range descriptions(rec) {
			assert.NotContains(t, d, "Eggs")
		}
	})
}

func TestSummarize(t *testing.T) {
	early := janeRecord()

	late := janeRecord()
	late.RoomNameKey = "7-Tom"
	late.Payload.Customer = order.Customer{FirstName: "Tom", RoomNumber: "7"}
	late.Payload.Eggs = order.Eggs{Style: "scrambled"}
	late.Payload.Scheduling.Time = "09:15"
	late.Payload.Drinks.Juice = order.Juice{Selected: true, JuiceType: strPtr("orange")}

	s := Summarize([]order.Record{early, late})

	assert.Equal(t, 2, s.TotalOrders)
	assert.Equal(t, "08:30", s.EarliestTime)
	assert.Equal(t, "09:15", s.LatestTime)
	assert.Equal(t, "08:30 - 09:15", s.TimeRange)

	assert.Equal(t, 1, s.ItemCounts["Eggs (over sunny)"])
	assert.Equal(t, 1, s.ItemCounts["Eggs (scrambled)"])
	assert.Equal(t, 2, s.ItemCounts["Coffee"])
	assert.Equal(t, 2, s.ItemCounts["Toast (rye)"])
	assert.Equal(t, 1, s.ItemCounts["Juice (orange)"])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalOrders)
	assert.Empty(t, s.EarliestTime)
	assert.Empty(t, s.TimeRange)
	assert.Empty(t, s.ItemCounts)
}

func TestSummarizeIgnoresBlankTimes(t *testing.T) {
	rec := janeRecord()
	rec.Payload.Scheduling.Time = ""

	s := Summarize([]order.Record{rec})
	require.Equal(t, 1, s.TotalOrders)
	assert.Empty(t, s.TimeRange)
}
