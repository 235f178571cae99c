package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSatangRoundTrip(t *testing.T) {
	cases := []struct {
		baht   float64
		satang int64
	}{
		{45900.00, 4590000},
		{42900.00, 4290000},
		{1.00, 100},
		{0.01, 1},
		{19999.99, 1999999},
		{0, 0},
	}

	for _, c := range cases {
		got := ToSatang(c.baht)
		assert.Equal(t, c.satang, got, "ToSatang(%v)", c.baht)
		assert.Equal(t, c.baht, ToBaht(got), "ToBaht(%d)", got)
	}
}

func TestFormatBaht(t *testing.T) {
	assert.Equal(t, "45900.00", FormatBaht(4590000))
	assert.Equal(t, "0.05", FormatBaht(5))
	assert.Equal(t, "1.50", FormatBaht(150))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(45900.00, 4590000))
	assert.True(t, Equal(45900.00, 4590001)) // within one satang
	assert.False(t, Equal(1.00, 4590000))
	assert.False(t, Equal(45899.00, 4590000))
}
