package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFromDiscount(t *testing.T) {
	tests := []struct {
		name     string
		regular  int64
		discount string
		want     int64
	}{
		{"twenty percent off 10000", 10000, "20", 8000},
		{"rounds down to multiple of 50", 9990, "15", 8450},
		{"zero discount keeps price on the grid", 10000, "0", 10000},
		{"full discount", 10000, "100", 0},
		{"fractional discount", 12345, "12.5", 10800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.discount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, PriceFromDiscount(tt.regular, d))
		})
	}
}

func TestPriceFromDiscount_Properties(t *testing.T) {
	regulars := []int64{50, 199, 1000, 9990, 10000, 123456}
	discounts := []string{"0", "5", "12.5", "33.33", "50", "99", "100"}

	for _, regular := range regulars {
		for _, ds := range discounts {
			d, err := decimal.NewFromString(ds)
			require.NoError(t, err)
			got := PriceFromDiscount(regular, d)

			assert.GreaterOrEqual(t, got, int64(0), "regular=%d discount=%s", regular, ds)
			assert.LessOrEqual(t, got, regular, "regular=%d discount=%s", regular, ds)
			assert.Zero(t, got%50, "regular=%d discount=%s: not a multiple of 50", regular, ds)
		}
	}
}

func TestDiscountFromPrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(20).Equal(DiscountFromPrice(10000, 8000)))
	assert.True(t, decimal.Zero.Equal(DiscountFromPrice(10000, 10000)))
	assert.True(t, decimal.NewFromInt(100).Equal(DiscountFromPrice(10000, 0)))

	// Guarded: a broken regular price never divides by zero
	assert.True(t, decimal.Zero.Equal(DiscountFromPrice(0, 500)))
	assert.True(t, decimal.Zero.Equal(DiscountFromPrice(-100, 500)))
}

func TestDiscountPriceRoundTrip(t *testing.T) {
	// Discounts that land exactly on a multiple of 50 survive the round trip.
	regular := int64(10000)
	for _, ds := range []string{"0", "10", "20", "25", "50", "75"} {
		d, err := decimal.NewFromString(ds)
		require.NoError(t, err)

		final := PriceFromDiscount(regular, d)
		back := DiscountFromPrice(regular, final)
		assert.True(t, d.Equal(back), "discount %s came back as %s", ds, back)
	}
}

func TestQuoteRecompute(t *testing.T) {
	dec := func(s string) *decimal.Decimal {
		d, err := decimal.NewFromString(s)
		require.NoError(t, err)
		return &d
	}

	t.Run("discount edit derives final price", func(t *testing.T) {
		q := Quote{RegularPrice: 10000, DiscountPercent: dec("20")}
		q.Recompute(FieldDiscountPercent)
		assert.Equal(t, int64(8000), q.FinalPrice)
	})

	t.Run("final price edit derives discount", func(t *testing.T) {
		q := Quote{RegularPrice: 10000, FinalPrice: 7500}
		q.Recompute(FieldFinalPrice)
		require.NotNil(t, q.DiscountPercent)
		assert.True(t, decimal.NewFromInt(25).Equal(*q.DiscountPercent))
	})

	t.Run("regular price edit keeps discount sticky", func(t *testing.T) {
		q := Quote{RegularPrice: 10000, DiscountPercent: dec("20"), FinalPrice: 8000}
		q.RegularPrice = 20000
		q.Recompute(FieldRegularPrice)
		assert.True(t, decimal.NewFromInt(20).Equal(*q.DiscountPercent))
		assert.Equal(t, int64(16000), q.FinalPrice)
	})

	t.Run("regular price edit without discount keeps final price", func(t *testing.T) {
		q := Quote{RegularPrice: 10000, FinalPrice: 8000}
		q.RegularPrice = 20000
		q.Recompute(FieldRegularPrice)
		assert.Nil(t, q.DiscountPercent)
		assert.Equal(t, int64(8000), q.FinalPrice)
	})
}
