package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentListScanShapes(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want InstrumentList
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"postgres array", "{Piano,Guitar}", InstrumentList{"Piano", "Guitar"}},
		{"json array", `["Piano"," Guitar "]`, InstrumentList{"Piano", "Guitar"}},
		{"json array bytes", []byte(`["Violin"]`), InstrumentList{"Violin"}},
		{"malformed json collapses to empty", `["Piano",`, nil},
		{"csv string", "Piano, Guitar , Drums", InstrumentList{"Piano", "Guitar", "Drums"}},
		{"single value", "Piano", InstrumentList{"Piano"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var list InstrumentList
			require.NoError(t, list.Scan(tc.src))
			assert.Equal(t, tc.want, list)
		})
	}
}

func TestInstrumentListScanRejectsUnknownType(t *testing.T) {
	var list InstrumentList
	assert.Error(t, list.Scan(42))
}

func TestInstrumentListNormalizeIdempotent(t *testing.T) {
	raw := InstrumentList{" Piano ", "", "Guitar", "  "}
	once := raw.Normalize()
	assert.Equal(t, InstrumentList{"Piano", "Guitar"}, once)
	assert.Equal(t, once, once.Normalize())
}

func TestInstrumentListDisplay(t *testing.T) {
	assert.Equal(t, "Not specified", InstrumentList(nil).Display())
	assert.Equal(t, "Not specified", InstrumentList{}.Display())
	assert.Equal(t, "Piano, Guitar", InstrumentList{"Piano", "Guitar"}.Display())
}

func TestInstrumentListContainsIsCaseSensitive(t *testing.T) {
	list := InstrumentList{"Piano"}
	assert.True(t, list.Contains("Piano"))
	assert.False(t, list.Contains("piano"))
}

func TestInstrumentListIntersects(t *testing.T) {
	assert.True(t, InstrumentList{"Piano", "Drums"}.Intersects(InstrumentList{"Drums"}))
	assert.False(t, InstrumentList{"Piano"}.Intersects(InstrumentList{"Guitar"}))
	assert.False(t, InstrumentList{}.Intersects(InstrumentList{"Guitar"}))
}

func TestParseInstruments(t *testing.T) {
	assert.Nil(t, ParseInstruments("  "))
	assert.Equal(t, InstrumentList{"Piano", "Guitar"}, ParseInstruments("Piano,Guitar"))
	assert.Equal(t, InstrumentList{"Piano"}, ParseInstruments(" Piano ,"))
}
