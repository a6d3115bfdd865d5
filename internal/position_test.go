package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	tests := map[string]Position{
		"A1":   {Row: 0, Col: 0},
		"a1":   {Row: 0, Col: 0},
		"AB32": {Row: 31, Col: 27},
		"Z25":  {Row: 24, Col: 25},
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParsePosition(in)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParsePosition_malformed(t *testing.T) {
	tests := []string{"", "1A", "A", "A0", "A-1", "1", "AB"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePosition(in)
			assert.Error(t, err)
			var invalid *InvalidPositionError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestPosition_Label(t *testing.T) {
	tests := map[Position]string{
		{Row: 0, Col: 0}:   "A1",
		{Row: 31, Col: 27}: "AB32",
		{Row: 24, Col: 25}: "Z25",
	}
	for pos, want := range tests {
		assert.Equal(t, want, pos.Label())
	}
}

func TestPosition_roundTrip(t *testing.T) {
	for _, label := range []string{"A1", "Z1", "AA1", "ZZ100", "FS6"} {
		pos, err := ParsePosition(label)
		assert.NoError(t, err)
		assert.Equal(t, label, pos.Label())
	}
}

func TestPosition_IsValid(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, Position{Row: -1, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: -1}.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: MaxCols}.IsValid())
}

func TestParsePosition_outOfRange(t *testing.T) {
	_, err := ParsePosition("A100000")
	assert.Error(t, err)
}
