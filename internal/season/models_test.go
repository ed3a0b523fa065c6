package season

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeason(t *testing.T) {
	for name, want := range map[string]Season{
		"winter": Winter, "win": Winter,
		"Spring": Spring, "spr": Spring,
		"summer": Summer, "sum": Summer,
		"fall": Fall, "fal": Fall, "autumn": Fall,
	} {
		got, err := ParseSeason(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseSeason("monsoon")
	assert.Error(t, err)
	assert.Equal(t, "fal", Fall.Code())
}

func TestHemisphere(t *testing.T) {
	assert.Equal(t, North, HemisphereFromLatitude(0))
	assert.Equal(t, North, HemisphereFromLatitude(47.3))
	assert.Equal(t, South, HemisphereFromLatitude(-33.9))

	h, err := ParseHemisphere("South")
	require.NoError(t, err)
	assert.Equal(t, South, h)

	_, err = ParseHemisphere("east")
	assert.Error(t, err)
}

func TestIndicatorsMirrorIsInvolution(t *testing.T) {
	in := ind(1, 1, 0, 0)
	assert.Equal(t, ind(0, 0, 1, 1), in.Mirror())
	assert.Equal(t, in, in.Mirror().Mirror())
	assert.Equal(t, [4]int{1, 1, 0, 0}, in.Weights())
}

func TestStateEffectiveHidesDisabled(t *testing.T) {
	st := State{Day: 10, Enabled: false, Indicators: ind(1, 0, 0, 0)}
	assert.True(t, st.Effective().Zero())

	st.Enabled = true
	assert.Equal(t, ind(1, 0, 0, 0), st.Effective())
}

func TestStateJSON(t *testing.T) {
	st := State{Day: 75, Hemisphere: South, Enabled: true, Indicators: ind(0, 0, 1, 1), Phase: Live}

	data, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"day": 75,
		"hemisphere": "south",
		"enabled": true,
		"indicators": {"winter": false, "spring": false, "summer": true, "fall": true},
		"phase": "live"
	}`, string(data))
}
