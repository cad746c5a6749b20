package schedule

import (
	"log"
	"time"
)

// Slot granularity is fixed at 60 minutes regardless of service duration,
// matching the mobile client.
const SlotMinutes = 60

// GenerateSlots walks from openTime (inclusive) to closeTime (exclusive) on
// the fixed grid. Unparseable or inverted bounds produce an empty set, not
// an error; the booking flow renders that as a closed shop.
func GenerateSlots(openTime, closeTime string) []string {
	start, err := time.Parse(ClockLayout, openTime)
	if err != nil {
		log.Printf("schedule: invalid open time %q: %v", openTime, err)
		return nil
	}
	end, err := time.Parse(ClockLayout, closeTime)
	if err != nil {
		log.Printf("schedule: invalid close time %q: %v", closeTime, err)
		return nil
	}

	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(SlotMinutes * time.Minute) {
		slots = append(slots, cur.Format(ClockLayout))
	}
	return slots
}

// AvailableSlots removes the literal occupied time values from the
// generated grid, preserving chronological order.
func AvailableSlots(openTime, closeTime string, occupied []string) []string {
	taken := make(map[string]struct{}, len(occupied))
	for _, t := range occupied {
		taken[t] = struct{}{}
	}

	all := GenerateSlots(openTime, closeTime)
	free := make([]string, 0, len(all))
	for _, s := range all {
		if _, ok := taken[s]; ok {
			continue
		}
		free = append(free, s)
	}
	return free
}
