package order

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRequest is returned when a submission is missing a required
// section or a field that its selection flags make mandatory. Nothing is
// ever persisted for a malformed submission.
var ErrMalformedRequest = errors.New("malformed order request")

// ErrStorageWrite is returned when the final order write fails. The caller
// must not report success to the guest.
var ErrStorageWrite = errors.New("failed to save order")

// Payload is the canonical order document stored per record and consumed by
// reporting. Optional sub-blocks (egg over style, toppings, bread type,
// juice type) are pointers marked omitempty: reporting treats an absent
// block as "not selected", never as a null-valued field, so the distinction
// has to survive marshaling.
type Payload struct {
	Customer       Customer   `json:"customer"`
	Eggs           Eggs       `json:"eggs"`
	Pancakes       Pancakes   `json:"pancakes"`
	Waffles        Waffles    `json:"waffles"`
	Sides          Sides      `json:"sides"`
	Drinks         Drinks     `json:"drinks"`
	Scheduling     Scheduling `json:"scheduling"`
	SpecialOptions string     `json:"specialOptions"`
}

type Customer struct {
	FirstName  string `json:"firstName"`
	RoomNumber string `json:"roomNumber"`
}

type Eggs struct {
	Style     string  `json:"style"`
	OverStyle *string `json:"overStyle,omitempty"`
}

// Toppings is shared by pancakes and waffles.
type Toppings struct {
	Berries      bool `json:"berries"`
	Bacon        bool `json:"bacon"`
	WhippedCream bool `json:"whippedCream"`
}

type Pancakes struct {
	Selected bool      `json:"selected"`
	Toppings *Toppings `json:"toppings,omitempty"`
}

type Waffles struct {
	Selected bool      `json:"selected"`
	Options  *Toppings `json:"options,omitempty"`
}

type Toast struct {
	Selected  bool    `json:"selected"`
	BreadType *string `json:"breadType,omitempty"`
}

type Sides struct {
	Bacon     bool  `json:"bacon"`
	HomeFries bool  `json:"homeFries"`
	Beans     bool  `json:"beans"`
	Toast     Toast `json:"toast"`
}

type Juice struct {
	Selected  bool    `json:"selected"`
	JuiceType *string `json:"juiceType,omitempty"`
}

type Drinks struct {
	Water  bool  `json:"water"`
	Milk   bool  `json:"milk"`
	Juice  Juice `json:"juice"`
	Coffee bool  `json:"coffee"`
	Tea    bool  `json:"tea"`
}

type Scheduling struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Record is the persisted unit. Identity is (DatePartition, RoomNameKey);
// at most one record exists per pair and a later submission with the same
// pair replaces the prior one in full.
type Record struct {
	DatePartition string  `json:"datePartition"`
	RoomNameKey   string  `json:"roomNameKey"`
	OrderID       string  `json:"orderId"`
	Payload       Payload `json:"order"`
	CreatedAt     float64 `json:"createdAt"`
}

// PartitionKey derives the storage partition from a delivery date. The date
// string goes in verbatim; calendar validity is not checked at this layer.
func PartitionKey(date string) string {
	return "bk_" + date
}

// RoomNameKey composes the secondary identity from room number and first
// name. The separator is not escaped: a room number or name containing a
// literal "-" can collide with a different pair. Stored keys are part of
// the reporting contract, so this is preserved rather than fixed.
func RoomNameKey(roomNumber, firstName string) string {
	return roomNumber + "-" + firstName
}

// NewRecord builds a Record for a canonical payload at the given time.
// The order id is derived from submission time and room number; it is
// practically unique, not guaranteed globally unique.
func NewRecord(p Payload, now time.Time) Record {
	return Record{
		DatePartition: PartitionKey(p.Scheduling.Date),
		RoomNameKey:   RoomNameKey(p.Customer.RoomNumber, p.Customer.FirstName),
		OrderID:       fmt.Sprintf("%d_%s", now.Unix(), p.Customer.RoomNumber),
		Payload:       p,
		CreatedAt:     float64(now.UnixNano()) / float64(time.Second),
	}
}
