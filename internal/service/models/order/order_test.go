package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, "bk_2025-08-05", PartitionKey("2025-08-05"))
	// The date is not validated here; whatever string arrives becomes part
	// of the key.
	assert.Equal(t, "bk_garbage", PartitionKey("garbage"))
}

func TestRoomNameKey(t *testing.T) {
	assert.Equal(t, "12-Jane", RoomNameKey("12", "Jane"))
	// The separator is unescaped, so these two pairs collide.
	assert.Equal(t, RoomNameKey("1-2", "Jane"), RoomNameKey("1", "2-Jane"))
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2025, 8, 4, 20, 15, 0, 0, time.UTC)

	p := Payload{
		Customer:   Customer{FirstName: "Jane", RoomNumber: "12"},
		Scheduling: Scheduling{Date: "2025-08-05", Time: "08:30"},
	}

	rec := NewRecord(p, now)

	assert.Equal(t, "bk_2025-08-05", rec.DatePartition)
	assert.Equal(t, "12-Jane", rec.RoomNameKey)
	assert.Equal(t, "1754338500_12", rec.OrderID)
	assert.InDelta(t, 1754338500.0, rec.CreatedAt, 0.001)
}

func TestPayloadConditionalPresence(t *testing.T) {
	rye := "rye"
	p := Payload{
		Customer: Customer{FirstName: "Jane", RoomNumber: "12"},
		Eggs:     Eggs{Style: "scrambled"},
		Pancakes: Pancakes{Selected: false},
		Waffles:  Waffles{Selected: false},
		Sides: Sides{
			Bacon: true,
			Toast: Toast{Selected: true, BreadType: &rye},
		},
		Drinks:     Drinks{Water: true, Juice: Juice{Selected: false}},
		Scheduling: Scheduling{Date: "2025-08-05", Time: "08:30"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	eggs := doc["eggs"].(map[string]any)
	assert.NotContains(t, eggs, "overStyle")

	pancakes := doc["pancakes"].(map[string]any)
	assert.NotContains(t, pancakes, "toppings")

	waffles := doc["waffles"].(map[string]any)
	assert.NotContains(t, waffles, "options")

	toast := doc["sides"].(map[string]any)["toast"].(map[string]any)
	assert.Equal(t, "rye", toast["breadType"])

	juice := doc["drinks"].(map[string]any)["juice"].(map[string]any)
	assert.NotContains(t, juice, "juiceType")
	assert.Equal(t, false, juice["selected"])
}

func TestPayloadRoundTrip(t *testing.T) {
	sunny := "sunny"
	p := Payload{
		Customer: Customer{FirstName: "Jane", RoomNumber: "12"},
		Eggs:     Eggs{Style: "over", OverStyle: &sunny},
		Pancakes: Pancakes{
			Selected: true,
			Toppings: &Toppings{Berries: true, WhippedCream: true},
		},
		Waffles:        Waffles{Selected: false},
		Sides:          Sides{Bacon: true, Toast: Toast{Selected: false}},
		Drinks:         Drinks{Coffee: true, Juice: Juice{Selected: false}},
		Scheduling:     Scheduling{Date: "2025-08-05", Time: "08:30"},
		SpecialOptions: "none",
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, p, decoded)
}
