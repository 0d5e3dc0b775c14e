package model

// Slot is one of the five daily prayer times used as the unit of duty
// scheduling.
type Slot int

const (
	SlotSubuh Slot = iota
	SlotZohor
	SlotAsar
	SlotMaghrib
	SlotIsyak
)

// AllSlots lists every slot in canonical order. The order is load-bearing:
// list replies sort by it and the "all slots" sentinel expands to it.
var AllSlots = []Slot{SlotSubuh, SlotZohor, SlotAsar, SlotMaghrib, SlotIsyak}

func (s Slot) String() string {
	switch s {
	case SlotSubuh:
		return "Subuh"
	case SlotZohor:
		return "Zohor"
	case SlotAsar:
		return "Asar"
	case SlotMaghrib:
		return "Maghrib"
	case SlotIsyak:
		return "Isyak"
	}
	return "Unknown"
}

// SlotFromName maps a stored slot name back to its enum value.
func SlotFromName(name string) (Slot, bool) {
	for _, s := range AllSlots {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
