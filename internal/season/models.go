package season

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownDay marks a state whose day-of-year has not been confirmed yet.
// It is outside the valid range so the first live sample always recomputes.
const UnknownDay = 999

// MaxDay is the last valid day-of-year (Dec 31st of a leap year).
const MaxDay = 365

var (
	ErrInvalidDayOfYear = errors.New("invalid day of year")
	ErrSnapshotNotFound = errors.New("season snapshot not found")
	ErrSnapshotParse    = errors.New("malformed season snapshot")
	ErrPersistenceWrite = errors.New("season snapshot write failed")
	ErrUntrustedInput   = errors.New("environment sample not trusted yet")
)

// Hemisphere selects the northern or southern season mapping.
type Hemisphere int

const (
	North Hemisphere = iota
	South
)

// HemisphereFromLatitude treats the equator as northern.
func HemisphereFromLatitude(lat float64) Hemisphere {
	if lat >= 0 {
		return North
	}
	return South
}

// ParseHemisphere accepts "north"/"south" and their one-letter forms.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "nh":
		return North, nil
	case "south", "s", "sh":
		return South, nil
	}
	return North, fmt.Errorf("unknown hemisphere %q", s)
}

func (h Hemisphere) String() string {
	if h == South {
		return "south"
	}
	return "north"
}

func (h Hemisphere) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Season identifies one of the four texture sets.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

// Seasons lists all seasons in accessor order.
var Seasons = [...]Season{Winter, Spring, Summer, Fall}

var (
	seasonNames = [...]string{"winter", "spring", "summer", "fall"}
	seasonCodes = [...]string{"win", "spr", "sum", "fal"}
)

func (s Season) String() string {
	if s < Winter || s > Fall {
		return fmt.Sprintf("season(%d)", int(s))
	}
	return seasonNames[s]
}

// Code returns the three-letter accessor name (win, spr, sum, fal).
func (s Season) Code() string {
	if s < Winter || s > Fall {
		return ""
	}
	return seasonCodes[s]
}

// ParseSeason accepts both the long name and the three-letter code.
func ParseSeason(name string) (Season, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "autumn" {
		return Fall, nil
	}
	for _, s := range Seasons {
		if name == seasonNames[s] || name == seasonCodes[s] {
			return s, nil
		}
	}
	return Winter, fmt.Errorf("unknown season %q", name)
}

// Indicators holds the four season flags. More than one may be set at a time;
// overlapping flags are how neighbouring texture sets get blended.
type Indicators struct {
	Winter bool `json:"winter"`
	Spring bool `json:"spring"`
	Summer bool `json:"summer"`
	Fall   bool `json:"fall"`
}

// Get reports the flag for s.
func (in Indicators) Get(s Season) bool {
	switch s {
	case Winter:
		return in.Winter
	case Spring:
		return in.Spring
	case Summer:
		return in.Summer
	case Fall:
		return in.Fall
	}
	return false
}

// Set sets the flag for s.
func (in *Indicators) Set(s Season, v bool) {
	switch s {
	case Winter:
		in.Winter = v
	case Spring:
		in.Spring = v
	case Summer:
		in.Summer = v
	case Fall:
		in.Fall = v
	}
}

// Weight returns the flag for s as 0 or 1.
func (in Indicators) Weight(s Season) int {
	if in.Get(s) {
		return 1
	}
	return 0
}

// Mirror maps a northern result onto the southern hemisphere.
func (in Indicators) Mirror() Indicators {
	return Indicators{
		Winter: in.Summer,
		Spring: in.Fall,
		Summer: in.Winter,
		Fall:   in.Spring,
	}
}

// Zero reports whether no season is active.
func (in Indicators) Zero() bool {
	return in == Indicators{}
}

// Weights returns the four flags in accessor order.
func (in Indicators) Weights() [4]int {
	return [4]int{in.Weight(Winter), in.Weight(Spring), in.Weight(Summer), in.Weight(Fall)}
}

func (in Indicators) String() string {
	w := in.Weights()
	return fmt.Sprintf("%d,%d,%d,%d", w[0], w[1], w[2], w[3])
}

// Phase tracks how much the service trusts its current day.
type Phase int

const (
	Uninitialized Phase = iota
	Seeded
	Live
)

func (p Phase) String() string {
	switch p {
	case Seeded:
		return "seeded"
	case Live:
		return "live"
	}
	return "uninitialized"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is the owned, mutable season state. Indicators are the cached
// classifier output; use Effective for what consumers should see.
type State struct {
	Day        int        `json:"day"`
	Hemisphere Hemisphere `json:"hemisphere"`
	Enabled    bool       `json:"enabled"`
	Indicators Indicators `json:"indicators"`
	Phase      Phase      `json:"phase"`
}

// Effective returns the indicators with the enabled flag applied.
func (s State) Effective() Indicators {
	if !s.Enabled {
		return Indicators{}
	}
	return s.Indicators
}

// DayKnown reports whether Day holds a real day-of-year.
func (s State) DayKnown() bool {
	return ValidDay(s.Day)
}

// Snapshot is the persisted form of State.
type Snapshot struct {
	Enabled    bool
	Day        int // UnknownDay when no day was cached
	Hemisphere Hemisphere

	// Indicators is meaningful only when HasIndicators is set; the compact
	// file shape does not carry them.
	Indicators    Indicators
	HasIndicators bool
}

// ValidDay reports whether day is a usable day-of-year.
func ValidDay(day int) bool {
	return day >= 0 && day <= MaxDay
}

func checkDay(day int) error {
	if !ValidDay(day) {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidDayOfYear, day, MaxDay)
	}
	return nil
}
