package season

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ind(w, s, su, f int) Indicators {
	return Indicators{Winter: w == 1, Spring: s == 1, Summer: su == 1, Fall: f == 1}
}

func defaultMargin(t *testing.T) MarginPolicy {
	t.Helper()
	p, err := NewMarginPolicy(DefaultPreMargin, DefaultPostMargin)
	require.NoError(t, err)
	return p
}

func TestMarginPolicyWindows(t *testing.T) {
	p := defaultMargin(t)

	want := map[Season][2]int{
		Winter: {285, 95},
		Spring: {15, 185},
		Summer: {105, 275},
		Fall:   {195, 0},
	}
	for s, w := range want {
		lo, hi := p.Window(s)
		assert.Equal(t, w[0], lo, "%s lo", s)
		assert.Equal(t, w[1], hi, "%s hi", s)
	}
}

func TestMarginPolicyScenarios(t *testing.T) {
	p := defaultMargin(t)

	tests := []struct {
		day  int
		h    Hemisphere
		want Indicators
	}{
		{0, North, ind(1, 0, 0, 1)},
		{75, North, ind(1, 1, 0, 0)},
		{95, North, ind(1, 1, 0, 0)},
		{96, North, ind(0, 1, 0, 0)},
		{100, North, ind(0, 1, 0, 0)},
		{105, North, ind(0, 1, 1, 0)},
		{180, North, ind(0, 1, 1, 0)},
		{200, North, ind(0, 0, 1, 1)},
		{280, North, ind(0, 0, 0, 1)},
		{300, North, ind(1, 0, 0, 1)},
		{365, North, ind(1, 0, 0, 1)},
		{0, South, ind(1, 0, 0, 1).Mirror()},
		{75, South, ind(0, 0, 1, 1)},
		{180, South, ind(1, 0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.h, tt.day), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.day, tt.h))
		})
	}
}

func TestMarginPolicyHasNoDeadZone(t *testing.T) {
	p := defaultMargin(t)

	for _, h := range []Hemisphere{North, South} {
		for day := 0; day <= MaxDay; day++ {
			in := p.Classify(day, h)
			active := 0
			for _, s := range Seasons {
				active += in.Weight(s)
			}
			assert.GreaterOrEqual(t, active, 1, "day %d %s has no season", day, h)
			assert.LessOrEqual(t, active, 2, "day %d %s has %d seasons", day, h, active)
		}
	}
}

func TestMirroredPoliciesSwapSeasons(t *testing.T) {
	policies := []Policy{defaultMargin(t), QuarterPolicy{}}

	for _, p := range policies {
		for day := 0; day <= MaxDay; day++ {
			n := p.Classify(day, North)
			s := p.Classify(day, South)
			assert.Equal(t, n.Winter, s.Summer, "%s day %d", p.Name(), day)
			assert.Equal(t, n.Summer, s.Winter, "%s day %d", p.Name(), day)
			assert.Equal(t, n.Spring, s.Fall, "%s day %d", p.Name(), day)
			assert.Equal(t, n.Fall, s.Spring, "%s day %d", p.Name(), day)
		}
	}
}

func TestNewMarginPolicyRejectsBadMargins(t *testing.T) {
	_, err := NewMarginPolicy(-1, 15)
	assert.Error(t, err)

	_, err = NewMarginPolicy(65, -3)
	assert.Error(t, err)

	_, err = NewMarginPolicy(200, 80)
	assert.Error(t, err)

	p, err := NewMarginPolicy(0, 0)
	require.NoError(t, err)
	// Zero margins still cover every day: adjacent windows share their boundary day.
	for day := 0; day <= MaxDay; day++ {
		assert.False(t, p.Classify(day, North).Zero(), "day %d", day)
	}
}

func TestQuarterPolicy(t *testing.T) {
	p := QuarterPolicy{}

	assert.Equal(t, ind(1, 0, 0, 0), p.Classify(0, North))
	assert.Equal(t, ind(1, 0, 0, 0), p.Classify(89, North))
	assert.Equal(t, ind(0, 1, 0, 0), p.Classify(90, North))
	assert.Equal(t, ind(0, 0, 1, 0), p.Classify(180, North))
	assert.Equal(t, ind(0, 0, 0, 1), p.Classify(270, North))
	assert.Equal(t, ind(0, 0, 0, 1), p.Classify(365, North))
	assert.Equal(t, ind(0, 0, 1, 0), p.Classify(0, South))
}

func TestTablePolicy(t *testing.T) {
	p := TablePolicy{}

	tests := []struct {
		day  int
		h    Hemisphere
		want Indicators
	}{
		{0, North, ind(1, 0, 0, 0)},
		{103, North, ind(1, 0, 0, 0)},
		{104, North, ind(1, 1, 0, 0)},
		{160, North, ind(0, 1, 1, 0)},
		{200, North, ind(0, 0, 1, 0)},
		{230, North, ind(0, 1, 0, 0)},
		{270, North, ind(0, 1, 0, 1)},
		{365, North, ind(0, 0, 0, 1)},
		{0, South, ind(0, 1, 0, 0)},
		{55, South, ind(0, 1, 1, 0)},
		{70, South, ind(1, 0, 1, 0)},
		{150, South, ind(0, 0, 1, 1)},
		{170, South, ind(1, 0, 0, 1)},
		{200, South, ind(1, 0, 0, 0)},
		{255, South, ind(0, 1, 0, 1)},
		{300, South, ind(0, 1, 1, 0)},
		{365, South, ind(1, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.h, tt.day), func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.day, tt.h))
		})
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("", DefaultPreMargin, DefaultPostMargin)
	require.NoError(t, err)
	assert.Equal(t, PolicyMargin, p.Name())

	p, err = NewPolicy(PolicyQuarters, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PolicyQuarters, p.Name())

	p, err = NewPolicy(PolicyTable, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PolicyTable, p.Name())

	_, err = NewPolicy("solstice", 0, 0)
	assert.Error(t, err)
}
