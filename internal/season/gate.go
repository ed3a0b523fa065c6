package season

import (
	"fmt"
	"strings"
)

// HostEvent is a load notification from the simulator host.
type HostEvent int

const (
	EventOther HostEvent = iota
	EventAirportLoaded
	EventSceneryLoaded
)

// ParseHostEvent maps the bridge event names onto HostEvent.
func ParseHostEvent(s string) (HostEvent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "airport_loaded":
		return EventAirportLoaded, nil
	case "scenery_loaded":
		return EventSceneryLoaded, nil
	case "other", "":
		return EventOther, nil
	}
	return EventOther, fmt.Errorf("unknown host event %q", s)
}

func (e HostEvent) String() string {
	switch e {
	case EventAirportLoaded:
		return "airport_loaded"
	case EventSceneryLoaded:
		return "scenery_loaded"
	}
	return "other"
}

// LoadGate latches once the host has confirmed that its day and position
// samples are real. Samples before the first airport load are bogus.
type LoadGate struct {
	open bool
}

// Open latches the gate.
func (g *LoadGate) Open() {
	g.open = true
}

// IsOpen reports whether samples are trusted.
func (g *LoadGate) IsOpen() bool {
	return g.open
}

// Admit reports whether a sample taken on event should be applied. An airport
// load opens the gate; a scenery load is only honored after that.
func (g *LoadGate) Admit(event HostEvent) bool {
	switch event {
	case EventAirportLoaded:
		g.open = true
		return true
	case EventSceneryLoaded:
		return g.open
	}
	return false
}
