package season

import "fmt"

// Policy maps a validated day-of-year to season indicators.
type Policy interface {
	Name() string
	Classify(day int, h Hemisphere) Indicators
}

// Policy names accepted by NewPolicy.
const (
	PolicyMargin   = "margin"
	PolicyQuarters = "quarters"
	PolicyTable    = "table"
)

// Default margins of the margin policy.
const (
	DefaultPreMargin  = 65
	DefaultPostMargin = 15
)

const yearLength = 365

// Canonical northern season start days.
var seasonStart = [...]int{
	Winter: 350,
	Spring: 80,
	Summer: 170,
	Fall:   260,
}

// NewPolicy builds a policy by name. pre and post only apply to the margin policy.
func NewPolicy(name string, pre, post int) (Policy, error) {
	switch name {
	case PolicyMargin, "":
		return NewMarginPolicy(pre, post)
	case PolicyQuarters:
		return QuarterPolicy{}, nil
	case PolicyTable:
		return TablePolicy{}, nil
	}
	return nil, fmt.Errorf("unknown season policy %q", name)
}

// MarginPolicy opens each season window pre days before its start and keeps it
// open until post days after the next season has started. Seasons arrive early
// and linger, so transitions show two overlapping indicators.
type MarginPolicy struct {
	Pre  int
	Post int
}

// NewMarginPolicy validates the margins. Negative margins could leave days
// without any active season.
func NewMarginPolicy(pre, post int) (MarginPolicy, error) {
	if pre < 0 || post < 0 {
		return MarginPolicy{}, fmt.Errorf("margins must not be negative (pre=%d, post=%d)", pre, post)
	}
	if pre+post >= yearLength-90 {
		return MarginPolicy{}, fmt.Errorf("margins too wide (pre=%d, post=%d)", pre, post)
	}
	return MarginPolicy{Pre: pre, Post: post}, nil
}

func (p MarginPolicy) Name() string { return PolicyMargin }

// Window returns the circular [lo, hi] window of s in the northern hemisphere.
func (p MarginPolicy) Window(s Season) (lo, hi int) {
	next := Seasons[(int(s)+1)%len(Seasons)]
	lo = mod(seasonStart[s]-p.Pre, yearLength)
	hi = mod(seasonStart[next]+p.Post, yearLength)
	return lo, hi
}

func (p MarginPolicy) Classify(day int, h Hemisphere) Indicators {
	d := mod(day, yearLength)

	var in Indicators
	for _, s := range Seasons {
		lo, hi := p.Window(s)
		if mod(d-lo, yearLength) <= mod(hi-lo, yearLength) {
			in.Set(s, true)
		}
	}

	if h == South {
		return in.Mirror()
	}
	return in
}

// QuarterPolicy splits the year into four 90-day quarters starting with
// winter on January 1st. No overlap.
type QuarterPolicy struct{}

func (QuarterPolicy) Name() string { return PolicyQuarters }

func (QuarterPolicy) Classify(day int, h Hemisphere) Indicators {
	var in Indicators
	switch {
	case day < 90:
		in.Winter = true
	case day < 180:
		in.Spring = true
	case day < 270:
		in.Summer = true
	default:
		in.Fall = true
	}

	if h == South {
		return in.Mirror()
	}
	return in
}

// TablePolicy is the hand-tuned bucket table matched against the orthophoto
// textures. The southern table is tuned separately and is not a mirror.
type TablePolicy struct{}

func (TablePolicy) Name() string { return PolicyTable }

type bucket struct {
	last    int // inclusive upper bound
	seasons []Season
}

// 1 Jan = 0, 1 Mar = 59, 1 Jun = 151, 1 Sep = 243, 1 Dec = 334.
var northTable = []bucket{
	{103, []Season{Winter}}, // Jan and Feb textures already look like spring
	{118, []Season{Winter, Spring}},
	{150, []Season{Spring}},
	{165, []Season{Spring, Summer}},
	{211, []Season{Summer}},
	{262, []Season{Spring}}, // August is already fall, late spring reads as summer
	{277, []Season{Spring, Fall}},
	{MaxDay, []Season{Fall}}, // winter textures do not look like winter before Jan 1
}

var southTable = []bucket{
	{52, []Season{Spring}},
	{59, []Season{Spring, Summer}},
	{66, []Season{Summer}},
	{73, []Season{Summer, Winter}},
	{134, []Season{Summer}},
	{158, []Season{Summer, Fall}},
	{181, []Season{Winter, Fall}},
	{212, []Season{Winter}},
	{250, []Season{Fall}},
	{264, []Season{Fall, Spring}},
	{318, []Season{Summer, Spring}},
	{MaxDay, []Season{Winter}},
}

func (TablePolicy) Classify(day int, h Hemisphere) Indicators {
	table := northTable
	if h == South {
		table = southTable
	}

	var in Indicators
	for _, b := range table {
		if day <= b.last {
			for _, s := range b.seasons {
				in.Set(s, true)
			}
			break
		}
	}
	return in
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
