package order

import (
	"fmt"
	"strings"
)

// Submission is the raw request document as the form posts it. Every
// section and field is a pointer so a missing key can be told apart from a
// zero value; Normalize decides which of them are actually required.
type Submission struct {
	URLParameters  *URLParameters     `json:"urlParameters"`
	Customer       *CustomerSection   `json:"customer"`
	Eggs           *EggsSection       `json:"eggs"`
	Pancakes       *PancakesSection   `json:"pancakes"`
	Waffles        *WafflesSection    `json:"waffles"`
	Sides          *SidesSection      `json:"sides"`
	Drinks         *DrinksSection     `json:"drinks"`
	Scheduling     *SchedulingSection `json:"scheduling"`
	SpecialOptions *string            `json:"specialOptions"`
}

type URLParameters struct {
	T *string `json:"t"`
}

type CustomerSection struct {
	FirstName  *string `json:"firstName"`
	RoomNumber *string `json:"roomNumber"`
}

type EggsSection struct {
	Style     *string `json:"style"`
	OverStyle *string `json:"overStyle"`
}

type ToppingsSection struct {
	Berries      *bool `json:"berries"`
	Bacon        *bool `json:"bacon"`
	WhippedCream *bool `json:"whippedCream"`
}

type PancakesSection struct {
	Selected *bool            `json:"selected"`
	Toppings *ToppingsSection `json:"toppings"`
}

type WafflesSection struct {
	Selected *bool            `json:"selected"`
	Options  *ToppingsSection `json:"options"`
}

type ToastSection struct {
	Selected  *bool   `json:"selected"`
	BreadType *string `json:"breadType"`
}

type SidesSection struct {
	Bacon     *bool         `json:"bacon"`
	HomeFries *bool         `json:"homeFries"`
	Beans     *bool         `json:"beans"`
	Toast     *ToastSection `json:"toast"`
}

type JuiceSection struct {
	Selected  *bool   `json:"selected"`
	JuiceType *string `json:"juiceType"`
}

type DrinksSection struct {
	Water  *bool         `json:"water"`
	Milk   *bool         `json:"milk"`
	Juice  *JuiceSection `json:"juice"`
	Coffee *bool         `json:"coffee"`
	Tea    *bool         `json:"tea"`
}

type SchedulingSection struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

// Token extracts the presented access token from urlParameters.t. A missing
// path is a malformed request, not an authorization failure.
func (s *Submission) Token() (string, error) {
	if s.URLParameters == nil || s.URLParameters.T == nil {
		return "", fmt.Errorf("%w: missing urlParameters.t", ErrMalformedRequest)
	}

	return *s.URLParameters.T, nil
}

// Normalize validates the submission and builds the canonical payload.
// Selection flags gate which nested fields are required; a flag that is off
// leaves its sub-block absent in the result. Any missing required field
// aborts the whole operation with ErrMalformedRequest.
func (s *Submission) Normalize() (Payload, error) {
	var p Payload

	customer, err := s.normalizeCustomer()
	if err != nil {
		return Payload{}, err
	}
	p.Customer = customer

	eggs, err := s.normalizeEggs()
	if err != nil {
		return Payload{}, err
	}
	p.Eggs = eggs

	pancakes, err := s.normalizePancakes()
	if err != nil {
		return Payload{}, err
	}
	p.Pancakes = pancakes

	waffles, err := s.normalizeWaffles()
	if err != nil {
		return Payload{}, err
	}
	p.Waffles = waffles

	sides, err := s.normalizeSides()
	if err != nil {
		return Payload{}, err
	}
	p.Sides = sides

	drinks, err := s.normalizeDrinks()
	if err != nil {
		return Payload{}, err
	}
	p.Drinks = drinks

	scheduling, err := s.normalizeScheduling()
	if err != nil {
		return Payload{}, err
	}
	p.Scheduling = scheduling

	if s.SpecialOptions != nil {
		p.SpecialOptions = strings.TrimSpace(*s.SpecialOptions)
	}

	return p, nil
}

func (s *Submission) normalizeCustomer() (Customer, error) {
	c := s.Customer
	if c == nil {
		return Customer{}, missing("customer")
	}
	if c.FirstName == nil {
		return Customer{}, missing("customer.firstName")
	}
	if c.RoomNumber == nil {
		return Customer{}, missing("customer.roomNumber")
	}

	return Customer{FirstName: *c.FirstName, RoomNumber: *c.RoomNumber}, nil
}

func (s *Submission) normalizeEggs() (Eggs, error) {
	e := s.Eggs
	if e == nil {
		return Eggs{}, missing("eggs")
	}
	if e.Style == nil {
		return Eggs{}, missing("eggs.style")
	}

	eggs := Eggs{Style: *e.Style}
	if *e.Style == "over" {
		if e.OverStyle == nil {
			return Eggs{}, missing("eggs.overStyle")
		}
		eggs.OverStyle = e.OverStyle
	}

	return eggs, nil
}

func (s *Submission) normalizePancakes() (Pancakes, error) {
	p := s.Pancakes
	if p == nil {
		return Pancakes{}, missing("pancakes")
	}

	selected := p.Selected != nil && *p.Selected
	pancakes := Pancakes{Selected: selected}
	if selected {
		toppings, err := normalizeToppings(p.Toppings, "pancakes.toppings")
		if err != nil {
			return Pancakes{}, err
		}
		pancakes.Toppings = toppings
	}

	return pancakes, nil
}

func (s *Submission) normalizeWaffles() (Waffles, error) {
	w := s.Waffles
	if w == nil {
		return Waffles{}, missing("waffles")
	}

	selected := w.Selected != nil && *w.Selected
	waffles := Waffles{Selected: selected}
	if selected {
		options, err := normalizeToppings(w.Options, "waffles.options")
		if err != nil {
			return Waffles{}, err
		}
		waffles.Options = options
	}

	return waffles, nil
}

func normalizeToppings(t *ToppingsSection, path string) (*Toppings, error) {
	if t == nil {
		return nil, missing(path)
	}
	if t.Berries == nil {
		return nil, missing(path + ".berries")
	}
	if t.Bacon == nil {
		return nil, missing(path + ".bacon")
	}
	if t.WhippedCream == nil {
		return nil, missing(path + ".whippedCream")
	}

	return &Toppings{
		Berries:      *t.Berries,
		Bacon:        *t.Bacon,
		WhippedCream: *t.WhippedCream,
	}, nil
}

func (s *Submission) normalizeSides() (Sides, error) {
	sd := s.Sides
	if sd == nil {
		return Sides{}, missing("sides")
	}
	if sd.Bacon == nil {
		return Sides{}, missing("sides.bacon")
	}
	if sd.HomeFries == nil {
		return Sides{}, missing("sides.homeFries")
	}
	if sd.Beans == nil {
		return Sides{}, missing("sides.beans")
	}
	if sd.Toast == nil || sd.Toast.Selected == nil {
		return Sides{}, missing("sides.toast.selected")
	}

	toast := Toast{Selected: *sd.Toast.Selected}
	if toast.Selected {
		if sd.Toast.BreadType == nil {
			return Sides{}, missing("sides.toast.breadType")
		}
		toast.BreadType = sd.Toast.BreadType
	}

	return Sides{
		Bacon:     *sd.Bacon,
		HomeFries: *sd.HomeFries,
		Beans:     *sd.Beans,
		Toast:     toast,
	}, nil
}

func (s *Submission) normalizeDrinks() (Drinks, error) {
	d := s.Drinks
	if d == nil {
		return Drinks{}, missing("drinks")
	}
	if d.Water == nil {
		return Drinks{}, missing("drinks.water")
	}
	if d.Milk == nil {
		return Drinks{}, missing("drinks.milk")
	}
	if d.Coffee == nil {
		return Drinks{}, missing("drinks.coffee")
	}
	if d.Tea == nil {
		return Drinks{}, missing("drinks.tea")
	}
	if d.Juice == nil || d.Juice.Selected == nil {
		return Drinks{}, missing("drinks.juice.selected")
	}

	juice := Juice{Selected: *d.Juice.Selected}
	if juice.Selected {
		if d.Juice.JuiceType == nil {
			return Drinks{}, missing("drinks.juice.juiceType")
		}
		juice.JuiceType = d.Juice.JuiceType
	}

	return Drinks{
		Water:  *d.Water,
		Milk:   *d.Milk,
		Juice:  juice,
		Coffee: *d.Coffee,
		Tea:    *d.Tea,
	}, nil
}

func (s *Submission) normalizeScheduling() (Scheduling, error) {
	sc := s.Scheduling
	if sc == nil {
		return Scheduling{}, missing("scheduling")
	}
	if sc.Date == nil {
		return Scheduling{}, missing("scheduling.date")
	}
	if sc.Time == nil {
		return Scheduling{}, missing("scheduling.time")
	}

	return Scheduling{Date: *sc.Date, Time: *sc.Time}, nil
}

func missing(path string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedRequest, path)
}
