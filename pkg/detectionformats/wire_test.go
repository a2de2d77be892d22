package detectionformats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatLiteral(t *testing.T) {
	tests := []struct {
		lit  string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"-0.001", -0.001, true},
		{"1e3", 1000, true},
		{"2E-2", 0.02, true},
		{"360.0", 360, true},
		{"18446744073709551616", 18446744073709551616, true},
		{"-9223372036854775809", -9223372036854775809, true},
		{"360", 0, false},
		{"-7", 0, false},
		{"18446744073709551615", 0, false},
		{`"1.5"`, 0, false},
		{"true", 0, false},
		{"null", 0, false},
		{"{}", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, ok := floatLiteral([]byte(tt.lit))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWireFloat_AlwaysCarriesFraction(t *testing.T) {
	tests := map[float64]string{
		0:      "0.0",
		360:    "360.0",
		-10000: "-10000.0",
		2.65:   "2.65",
		1e-7:   "1e-07",
		1e21:   "1e+21",
	}

	for in, want := range tests {
		b, err := json.Marshal(wireFloat(in))
		require.NoError(t, err)
		assert.Equal(t, want, string(b))

		back, ok := floatLiteral(b)
		assert.True(t, ok, "%s must read back as a float", b)
		assert.Equal(t, in, back)
	}
}

func TestOutFloat_DropsNonFinite(t *testing.T) {
	assert.Nil(t, outFloat(nil))
	assert.Nil(t, outFloat(Ptr(math.NaN())))
	assert.Nil(t, outFloat(Ptr(math.Inf(1))))
	assert.Nil(t, outFloat(Ptr(math.Inf(-1))))
	require.NotNil(t, outFloat(Ptr(0.0)))
	assert.Equal(t, wireFloat(0), *outFloat(Ptr(0.0)))
}

func TestObject_MemberKinds(t *testing.T) {
	o, err := decodeObject([]byte(`{"s":"x","n":1.5,"i":2,"o":{"a":"b"},"a":[1],"t":"2015-12-28T21:32:24.017Z","bt":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, "x", o.str("s"))
	assert.Empty(t, o.str("n"))
	assert.Empty(t, o.str("missing"))

	require.NotNil(t, o.float("n"))
	assert.Equal(t, 1.5, *o.float("n"))
	assert.Nil(t, o.float("i"))
	assert.Nil(t, o.float("s"))

	child, ok := o.child("o")
	require.True(t, ok)
	assert.Equal(t, "b", child.str("a"))
	_, ok = o.child("a")
	assert.False(t, ok)

	items, ok := o.array("a")
	require.True(t, ok)
	assert.Len(t, items, 1)
	_, ok = o.array("o")
	assert.False(t, ok)

	tm, err := o.time("t")
	require.NoError(t, err)
	require.NotNil(t, tm)
	assert.Equal(t, "2015-12-28T21:32:24.017Z", FormatTime(*tm))

	tm, err = o.time("n")
	assert.NoError(t, err)
	assert.Nil(t, tm)

	_, err = o.time("bt")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestCheckedFormatTime_YearRange(t *testing.T) {
	_, err := checkedFormatTime(TimeFromEpoch(-62167219200 - 1))
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	s, err := checkedFormatTime(TimeFromEpoch(0))
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", s)
}
