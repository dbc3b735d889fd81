// Package grid holds the state of a 24-slot daily allocation grid and the
// pure transitions that paint activity labels onto it.
package grid

import (
	"fmt"
	"sort"

	"github.com/pbaille/dayplan/internal/domain"
)

// SlotCount is the number of hourly slots in a day.
const SlotCount = 24

// Unallocated names the share of slots that carry no label.
const Unallocated = "Unallocated"

// Slot is one hour of the day, optionally labeled with an activity
type Slot struct {
	Index int    `json:"slot"`
	Hour  int    `json:"hour"`
	Label string `json:"label,omitempty"`
}

// State is the whole grid plus the label currently picked in the palette
type State struct {
	Slots    []Slot `json:"slots"`
	Selected string `json:"selected"`
}

// EventKind distinguishes the pointer events that can paint a slot
type EventKind int

const (
	// Press is a pointer button going down on a slot.
	Press EventKind = iota
	// Hover is the pointer entering a slot, possibly mid-drag.
	Hover
	// Click is a full click on a slot.
	Click
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "mousedown"
	case Hover:
		return "mouseenter"
	case Click:
		return "click"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// ParseEvent maps a DOM event name to its kind.
func ParseEvent(name string) (EventKind, error) {
	switch name {
	case "mousedown", "pointerdown":
		return Press, nil
	case "mouseenter", "pointerenter":
		return Hover, nil
	case "click":
		return Click, nil
	}
	verr := &domain.ValidationError{}
	verr.Add("event", fmt.Sprintf("unknown event %q", name))
	return 0, verr
}

// HourFor returns the 12-hour clock label of a slot index.
func HourFor(index int) int {
	if h := index % 12; h != 0 {
		return h
	}
	return 12
}

// Action is a user input that moves the grid to a new state
type Action interface {
	apply(State) State
}

// Reset regenerates every slot with empty labels.
type Reset struct{}

// Paint sets the selected label on one slot.
type Paint struct {
	Slot    int       `json:"slot"`
	Event   EventKind `json:"-"`
	Buttons int       `json:"buttons"`
}

// Select toggles the palette selection.
type Select struct {
	Label string `json:"label"`
}

// Apply returns the state that follows s after a. s is left untouched.
func Apply(s State, a Action) State {
	return a.apply(s)
}

func (Reset) apply(s State) State {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot{Index: i, Hour: HourFor(i)}
	}
	return State{Slots: slots, Selected: s.Selected}
}

func (p Paint) apply(s State) State {
	// hovering without a pressed button must not paint, only dragging does
	if p.Event == Hover && p.Buttons == 0 {
		return s.clone()
	}
	next := s.clone()
	for i := range next.Slots {
		if next.Slots[i].Index == p.Slot {
			next.Slots[i].Label = s.Selected
		}
	}
	return next
}

func (sel Select) apply(s State) State {
	next := s.clone()
	if s.Selected == sel.Label {
		next.Selected = ""
	} else {
		next.Selected = sel.Label
	}
	return next
}

func (s State) clone() State {
	var slots []Slot
	if s.Slots != nil {
		slots = make([]Slot, len(s.Slots))
		copy(slots, s.Slots)
	}
	return State{Slots: slots, Selected: s.Selected}
}

// Allocated counts slots carrying a label.
func Allocated(s State) int {
	n := 0
	for _, slot := range s.Slots {
		if slot.Label != "" {
			n++
		}
	}
	return n
}

// UnallocatedCount counts slots without a label.
func UnallocatedCount(s State) int {
	return len(s.Slots) - Allocated(s)
}

// CountLabel counts slots painted with label.
func CountLabel(s State, label string) int {
	n := 0
	for _, slot := range s.Slots {
		if slot.Label == label {
			n++
		}
	}
	return n
}

// Share is the number of slots attributed to one label
type Share struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Breakdown returns one share per label, sorted by name, followed by the
// unallocated share.
func Breakdown(s State) []Share {
	counts := make(map[string]int)
	for _, slot := range s.Slots {
		if slot.Label != "" {
			counts[slot.Label]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	shares := make([]Share, 0, len(names)+1)
	for _, name := range names {
		shares = append(shares, Share{Name: name, Value: counts[name]})
	}
	return append(shares, Share{Name: Unallocated, Value: UnallocatedCount(s)})
}
