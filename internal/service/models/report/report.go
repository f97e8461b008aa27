package report

// Item is a single menu line derived from a stored order's canonical
// payload. Lines exist only for selections that are actually present.
type Item struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FormattedOrder is the read-side shape served to the staff app.
type FormattedOrder struct {
	OrderID        string  `json:"orderId"`
	CustomerName   string  `json:"customerName"`
	RoomNumber     string  `json:"roomNumber"`
	ScheduledDate  string  `json:"scheduledDate"`
	ScheduledTime  string  `json:"scheduledTime"`
	CreatedAt      float64 `json:"createdAt"`
	SpecialOptions string  `json:"specialOptions"`
	Items          []Item  `json:"items"`
}

// Summary aggregates one day's orders for the report header.
type Summary struct {
	ItemCounts   map[string]int `json:"itemCounts"`
	EarliestTime string         `json:"earliestTime,omitempty"`
	LatestTime   string         `json:"latestTime,omitempty"`
	TotalOrders  int            `json:"totalOrders"`
	TimeRange    string         `json:"timeRange,omitempty"`
}

// DateInfo describes one partition for the dates listing.
type DateInfo struct {
	Date        string `json:"date"`
	DisplayName string `json:"displayName"`
	OrderCount  int    `json:"orderCount"`
	DayOfWeek   string `json:"dayOfWeek"`
	IsToday     bool   `json:"isToday"`
}
