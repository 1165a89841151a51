package sim

import (
	"fmt"

	"github.com/markphelps/optional"
)

// Slot is a device's single-capacity active position: Empty or Occupied(id).
// The zero value is Empty.
type Slot struct {
	occupant optional.Int
}

// Occupied reports whether a process holds the slot.
func (s Slot) Occupied() bool {
	return s.occupant.Present()
}

// Occupant returns the id holding the slot; ok is false when the slot is empty.
func (s Slot) Occupant() (id int, ok bool) {
	id, err := s.occupant.Get()
	if err != nil {
		return 0, false
	}
	return id, true
}

// ReportID returns the occupant id, or 0 for an empty slot. Only for display.
func (s Slot) ReportID() int {
	id, _ := s.Occupant()
	return id
}

// Fill places id in the slot. Filling an occupied slot is a bookkeeping fault.
func (s *Slot) Fill(id int) {
	if cur, ok := s.Occupant(); ok {
		panic(fmt.Sprintf("Slot.Fill(%d): slot already holds process %d", id, cur))
	}
	s.occupant = optional.NewInt(id)
}

// Vacate empties the slot and returns the previous occupant.
// Vacating an empty slot is a bookkeeping fault.
func (s *Slot) Vacate() int {
	id, ok := s.Occupant()
	if !ok {
		panic("Slot.Vacate: slot is already empty")
	}
	s.occupant = optional.Int{}
	return id
}
